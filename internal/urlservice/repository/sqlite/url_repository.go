package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"shortlog/internal/urlservice/domain"
	"shortlog/internal/urlservice/usecase"
)

const (
	insertURL = `INSERT INTO urls (short_code, original_url, created_at) VALUES (?, ?, ?)`

	selectByShortCode = `SELECT id, short_code, original_url, created_at FROM urls WHERE short_code = ?`

	selectByOriginalURL = `SELECT id, short_code, original_url, created_at FROM urls
WHERE original_url = ? ORDER BY id LIMIT 1`
)

// URLRepository implements the usecase.URLRepository interface on SQLite
type URLRepository struct {
	db *sql.DB
}

// NewURLRepository creates a new SQLite-backed URL repository
func NewURLRepository(db *sql.DB) *URLRepository {
	return &URLRepository{db: db}
}

// Ensure URLRepository implements usecase.URLRepository at compile time
var _ usecase.URLRepository = (*URLRepository)(nil)

// Save creates a new URL record in the database
func (r *URLRepository) Save(ctx context.Context, shortCode, originalURL string) (*domain.URL, error) {
	createdAt := time.Now().UTC()

	res, err := r.db.ExecContext(ctx, insertURL, shortCode, originalURL, createdAt)
	if err != nil {
		// SQLite reports "UNIQUE constraint failed: urls.short_code"
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, domain.ErrShortCodeTaken
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &domain.URL{
		ID:          id,
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		CreatedAt:   createdAt,
	}, nil
}

// FindByShortCode retrieves a URL by its short code
func (r *URLRepository) FindByShortCode(ctx context.Context, code string) (*domain.URL, error) {
	return r.findOne(ctx, selectByShortCode, code)
}

// FindByOriginalURL retrieves a URL by its original URL (for deduplication)
func (r *URLRepository) FindByOriginalURL(ctx context.Context, originalURL string) (*domain.URL, error) {
	return r.findOne(ctx, selectByOriginalURL, originalURL)
}

func (r *URLRepository) findOne(ctx context.Context, query string, arg string) (*domain.URL, error) {
	var u domain.URL
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.ShortCode, &u.OriginalURL, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrURLNotFound
		}
		return nil, err
	}
	return &u, nil
}
