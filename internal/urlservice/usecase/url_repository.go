package usecase

import (
	"context"

	"shortlog/internal/urlservice/domain"
)

type URLRepository interface {
	// Save returns domain.ErrShortCodeTaken when shortCode is already used.
	Save(ctx context.Context, shortCode, originalURL string) (*domain.URL, error)
	FindByShortCode(ctx context.Context, code string) (*domain.URL, error)
	FindByOriginalURL(ctx context.Context, originalURL string) (*domain.URL, error)
}
