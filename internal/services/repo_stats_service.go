package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alimgiray/gstats/internal/models"
	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
)

type RepoStatsService struct {
	github GitHubFetcher
	logger *logrus.Logger
}

func NewRepoStatsService(github GitHubFetcher, logger *logrus.Logger) *RepoStatsService {
	return &RepoStatsService{
		github: github,
		logger: logger,
	}
}

// Aggregate fetches all repositories of username and reduces them to RepoStats
func (s *RepoStatsService) Aggregate(ctx context.Context, username string, opts models.StatsOptions) (*models.RepoStats, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	records, err := s.github.ListUserRepositories(ctx, username)
	if err != nil {
		entry := s.logger.WithError(err).WithField("username", username)
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			entry = entry.WithField("status", statusErr.StatusCode)
		}
		entry.Warn("Data not found or failed to retrieve")
		return nil, fmt.Errorf("failed to list repositories for %s: %w", username, err)
	}

	result := ComputeRepoStats(records, opts)
	s.logger.WithFields(logrus.Fields{
		"username":   username,
		"repo_count": result.RepoCount,
	}).Debug("Repository statistics computed")

	return result, nil
}

// ComputeRepoStats reduces repository records to RepoStats. Forks are left
// out only when opts.ExcludeForks is set. Languages are ordered by descending
// count, ties keep the order in which the languages were first seen.
func ComputeRepoStats(records []*models.RepositoryRecord, opts models.StatsOptions) *models.RepoStats {
	result := &models.RepoStats{
		Languages:     []models.LanguageCount{},
		ForksExcluded: opts.ExcludeForks,
	}

	sizes := make(stats.Float64Data, 0, len(records))
	counts := make(map[string]int)
	var order []string

	for _, record := range records {
		if record == nil || (opts.ExcludeForks && record.Fork) {
			continue
		}

		result.RepoCount++
		result.StargazerCount += record.Stars()
		result.ForkCount += record.Forks()
		sizes = append(sizes, float64(record.Size))

		if language := record.PrimaryLanguage(); language != "" {
			if _, seen := counts[language]; !seen {
				order = append(order, language)
			}
			counts[language]++
		}
	}

	// Mean fails only on empty input, which keeps the 0 sentinel
	if mean, err := stats.Mean(sizes); err == nil {
		result.AvgRepoSize = mean
	}

	for _, language := range order {
		result.Languages = append(result.Languages, models.LanguageCount{Language: language, Count: counts[language]})
	}
	sort.SliceStable(result.Languages, func(i, j int) bool {
		return result.Languages[i].Count > result.Languages[j].Count
	})

	return result
}
