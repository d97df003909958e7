package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"shortlog/internal/eventlog"
	"shortlog/internal/urlservice/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const (
	// NanoID alphabet: alphanumeric (a-z, A-Z, 0-9) - 62 characters, case-sensitive
	nanoIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	nanoIDLength   = 8
	maxRetries     = 5
	maxURLLength   = 2048
)

// URLService implements the core business logic for URL shortening
type URLService struct {
	repo    URLRepository
	events  EventLogger
	logger  *zap.Logger
	baseURL string
}

// NewURLService creates a new URL service
func NewURLService(repo URLRepository, events EventLogger, logger *zap.Logger, baseURL string) *URLService {
	return &URLService{
		repo:    repo,
		events:  events,
		logger:  logger,
		baseURL: baseURL,
	}
}

// CreateShortURL validates, deduplicates, and creates a short URL
func (s *URLService) CreateShortURL(ctx context.Context, originalURL string) (*domain.URL, error) {
	if err := validateURL(originalURL); err != nil {
		s.logEvent(eventlog.LevelWarn, "Rejected invalid URL: "+err.Error())
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}

	existing, err := s.repo.FindByOriginalURL(ctx, originalURL)
	if err == nil {
		s.logEvent(eventlog.LevelInfo, "Existing short URL returned for "+originalURL)
		return existing, nil
	}
	if !errors.Is(err, domain.ErrURLNotFound) {
		s.logEvent(eventlog.LevelError, "Lookup by original URL failed: "+err.Error())
		return nil, err
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		shortCode, err := gonanoid.Generate(nanoIDAlphabet, nanoIDLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate short code: %w", err)
		}

		u, err := s.repo.Save(ctx, shortCode, originalURL)
		if errors.Is(err, domain.ErrShortCodeTaken) {
			s.logger.Debug("short code collision, retrying",
				zap.String("short_code", shortCode),
				zap.Int("attempt", attempt+1),
			)
			continue
		}
		if err != nil {
			s.logEvent(eventlog.LevelError, "Failed to save short URL: "+err.Error())
			return nil, err
		}

		s.logEvent(eventlog.LevelInfo, fmt.Sprintf("New short URL created: %s -> %s", u.ShortURL(s.baseURL), originalURL))
		return u, nil
	}

	s.logEvent(eventlog.LevelError, "Short code generation exhausted retries for "+originalURL)
	return nil, domain.ErrShortCodeConflict
}

// GetByShortCode retrieves a URL by its short code
func (s *URLService) GetByShortCode(ctx context.Context, code string) (*domain.URL, error) {
	u, err := s.repo.FindByShortCode(ctx, code)
	if err != nil && !errors.Is(err, domain.ErrURLNotFound) {
		s.logEvent(eventlog.LevelError, fmt.Sprintf("Lookup of %s failed: %v", code, err))
	}
	return u, err
}

// ShortURL returns the public link for code.
func (s *URLService) ShortURL(u *domain.URL) string {
	return u.ShortURL(s.baseURL)
}

func (s *URLService) logEvent(level eventlog.Level, message string) {
	s.events.Log(string(eventlog.StackBackend), string(level), string(eventlog.PackageService), message)
}

// validateURL validates the URL format and constraints
func validateURL(rawURL string) error {
	if len(rawURL) > maxURLLength {
		return fmt.Errorf("url exceeds maximum length of %d characters", maxURLLength)
	}

	if err := validation.Validate(rawURL, validation.Required, is.RequestURL); err != nil {
		return fmt.Errorf("invalid url format: %w", err)
	}

	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url format: %w", err)
	}

	scheme := strings.ToLower(parsedURL.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got: %s", parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("url must have a host")
	}

	return nil
}
