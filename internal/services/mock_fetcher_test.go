package services

import (
	"context"

	"github.com/alimgiray/gstats/internal/models"
	"github.com/stretchr/testify/mock"
)

// mockFetcher is a mock implementation of GitHubFetcher.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) GetUser(ctx context.Context, username string) (*models.UserProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *mockFetcher) ListUserRepositories(ctx context.Context, username string) ([]*models.RepositoryRecord, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RepositoryRecord), args.Error(1)
}
