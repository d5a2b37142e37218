package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alimgiray/gstats/internal/models"
	"github.com/sirupsen/logrus"
)

type ProfileService struct {
	github GitHubFetcher
	logger *logrus.Logger
}

func NewProfileService(github GitHubFetcher, logger *logrus.Logger) *ProfileService {
	return &ProfileService{
		github: github,
		logger: logger,
	}
}

// FetchProfile retrieves the profile of username. Any non-success answer
// from GitHub yields an error matching ErrNotFound.
func (s *ProfileService) FetchProfile(ctx context.Context, username string) (*models.UserProfile, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		if errors.Is(err, ErrInvalidUsername) {
			s.logger.WithField("username", username).Warn("Username invalid. Check spelling")
		}
		return nil, err
	}

	profile, err := s.github.GetUser(ctx, username)
	if err != nil {
		s.logger.WithError(err).WithField("username", username).Warn("Username invalid. Check spelling")
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", username, err)
	}

	return profile, nil
}
