package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/alimgiray/gstats/internal/models"
	"github.com/alimgiray/gstats/pkg/config"
	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// tokenType makes the oauth2 transport send "Authorization: Token <value>"
const tokenType = "Token"

// GitHubFetcher reads users and repositories from GitHub
type GitHubFetcher interface {
	GetUser(ctx context.Context, username string) (*models.UserProfile, error)
	ListUserRepositories(ctx context.Context, username string) ([]*models.RepositoryRecord, error)
}

// GitHubService talks to the GitHub REST API
type GitHubService struct {
	client  *github.Client
	perPage int
	logger  *logrus.Logger
}

// NewGitHubService creates a GitHub REST client authenticated with the configured token
func NewGitHubService(cfg config.GitHubConfig, logger *logrus.Logger) (*GitHubService, error) {
	if cfg.Token == "" {
		return nil, config.ErrMissingToken
	}

	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(cfg.MaxRateSleep, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: tokenType})
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}

	client := github.NewClient(httpClient)
	if cfg.APIBaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(cfg.APIBaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.APIBaseURL, err)
		}
		client.BaseURL = baseURL
	}

	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = 100
	}

	return &GitHubService{
		client:  client,
		perPage: perPage,
		logger:  logger,
	}, nil
}

// GetUser retrieves the public profile of a user
func (s *GitHubService) GetUser(ctx context.Context, username string) (*models.UserProfile, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	endpoint := "/users/" + username
	user, resp, err := s.client.Users.Get(ctx, username)
	if err != nil {
		return nil, statusOrTransportError(endpoint, resp, err)
	}
	if user.GetLogin() == "" {
		return nil, fmt.Errorf("%w: GitHub %s returned no login", ErrNotFound, endpoint)
	}

	return &models.UserProfile{
		Login:    user.GetLogin(),
		Name:     user.Name,
		Bio:      user.Bio,
		Company:  user.Company,
		Location: user.Location,
	}, nil
}

// ListUserRepositories fetches every public repository of a user, following pagination
func (s *GitHubService) ListUserRepositories(ctx context.Context, username string) ([]*models.RepositoryRecord, error) {
	// An empty user lists the authenticated user's repositories instead
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	endpoint := "/users/" + username + "/repos"
	opt := &github.RepositoryListOptions{
		ListOptions: github.ListOptions{PerPage: s.perPage},
	}

	var records []*models.RepositoryRecord
	for {
		repos, resp, err := s.client.Repositories.List(ctx, username, opt)
		if err != nil {
			return nil, statusOrTransportError(endpoint, resp, err)
		}
		for _, repo := range repos {
			records = append(records, recordFromAPI(repo))
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
		s.logger.WithFields(logrus.Fields{
			"username": username,
			"page":     opt.Page,
		}).Debug("Fetching next page of repositories")
	}

	return records, nil
}

// recordFromAPI keeps the repository fields the statistics need
func recordFromAPI(repo *github.Repository) *models.RepositoryRecord {
	record := &models.RepositoryRecord{
		Name:            repo.GetName(),
		Fork:            repo.GetFork(),
		StargazersCount: repo.StargazersCount,
		ForksCount:      repo.ForksCount,
		Size:            repo.GetSize(),
	}
	if repo.GetLanguage() != "" {
		record.Language = repo.Language
	}
	return record
}

// statusOrTransportError turns a non-success response into a StatusError and
// leaves network failures as plain wrapped errors
func statusOrTransportError(endpoint string, resp *github.Response, err error) error {
	if resp != nil && resp.Response != nil && resp.StatusCode != http.StatusOK {
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return &StatusError{Endpoint: endpoint, StatusCode: errResp.Response.StatusCode}
	}
	return fmt.Errorf("failed to call GitHub %s: %w", endpoint, err)
}
