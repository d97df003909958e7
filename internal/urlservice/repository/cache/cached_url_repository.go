package cache

import (
	"context"
	"fmt"

	"shortlog/internal/eventlog"
	"shortlog/internal/urlservice/domain"
	"shortlog/internal/urlservice/usecase"

	"go.uber.org/zap"
)

// Compile-time interface check
var _ usecase.URLRepository = (*CachedURLRepository)(nil)

// CachedURLRepository wraps a URLRepository with a read-through cache for
// short code lookups. Cache failures are logged and never fail the call.
type CachedURLRepository struct {
	repo   usecase.URLRepository
	cache  URLCache
	events usecase.EventLogger
	logger *zap.Logger
}

// NewCachedURLRepository creates a new cached repository wrapper.
func NewCachedURLRepository(repo usecase.URLRepository, cache URLCache, events usecase.EventLogger, logger *zap.Logger) *CachedURLRepository {
	return &CachedURLRepository{
		repo:   repo,
		cache:  cache,
		events: events,
		logger: logger,
	}
}

// Save persists a URL and caches it.
func (r *CachedURLRepository) Save(ctx context.Context, shortCode, originalURL string) (*domain.URL, error) {
	u, err := r.repo.Save(ctx, shortCode, originalURL)
	if err != nil {
		return nil, err
	}
	r.set(ctx, u)
	return u, nil
}

// FindByShortCode checks the cache first and fills it on a miss.
func (r *CachedURLRepository) FindByShortCode(ctx context.Context, code string) (*domain.URL, error) {
	cached, err := r.cache.Get(ctx, code)
	if err != nil {
		r.cacheFailure("get", code, err)
	}
	if cached != nil {
		return cached, nil
	}

	u, err := r.repo.FindByShortCode(ctx, code)
	if err != nil {
		return nil, err
	}
	r.set(ctx, u)
	return u, nil
}

// FindByOriginalURL is not cached.
func (r *CachedURLRepository) FindByOriginalURL(ctx context.Context, originalURL string) (*domain.URL, error) {
	return r.repo.FindByOriginalURL(ctx, originalURL)
}

func (r *CachedURLRepository) set(ctx context.Context, u *domain.URL) {
	if err := r.cache.Set(ctx, u); err != nil {
		r.cacheFailure("set", u.ShortCode, err)
	}
}

func (r *CachedURLRepository) cacheFailure(op, code string, err error) {
	r.logger.Warn("url cache operation failed",
		zap.String("op", op),
		zap.String("short_code", code),
		zap.Error(err),
	)
	r.events.Log(string(eventlog.StackBackend), string(eventlog.LevelWarn), string(eventlog.PackageCache),
		fmt.Sprintf("Cache %s failed for %s: %v", op, code, err))
}
