package mocks

import (
	"context"

	"shortlog/internal/urlservice/domain"
	"shortlog/internal/urlservice/usecase"

	"github.com/stretchr/testify/mock"
)

var _ usecase.URLRepository = (*MockURLRepository)(nil)

// MockURLRepository is a testify mock for usecase.URLRepository.
type MockURLRepository struct {
	mock.Mock
}

// NewMockURLRepository creates a mock that asserts its expectations when the
// test ends.
func NewMockURLRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockURLRepository {
	m := &MockURLRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockURLRepository) Save(ctx context.Context, shortCode, originalURL string) (*domain.URL, error) {
	args := m.Called(ctx, shortCode, originalURL)
	return urlOrNil(args.Get(0)), args.Error(1)
}

func (m *MockURLRepository) FindByShortCode(ctx context.Context, code string) (*domain.URL, error) {
	args := m.Called(ctx, code)
	return urlOrNil(args.Get(0)), args.Error(1)
}

func (m *MockURLRepository) FindByOriginalURL(ctx context.Context, originalURL string) (*domain.URL, error) {
	args := m.Called(ctx, originalURL)
	return urlOrNil(args.Get(0)), args.Error(1)
}

func urlOrNil(v any) *domain.URL {
	if v == nil {
		return nil
	}
	return v.(*domain.URL)
}
