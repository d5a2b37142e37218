package models

import "fmt"

const (
	kilobyte = 1 << 10
	megabyte = 1 << 20
	gigabyte = 1 << 30
)

// StatsOptions controls which repositories are aggregated
type StatsOptions struct {
	ExcludeForks bool
}

// LanguageCount is the number of repositories using a primary language
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// RepoStats is the aggregate over a user's repositories.
// AvgRepoSize is 0 when there are no repositories.
type RepoStats struct {
	RepoCount      int             `json:"repo_count"`
	StargazerCount int             `json:"stargazer_count"`
	ForkCount      int             `json:"fork_count"`
	AvgRepoSize    float64         `json:"avg_repo_size"`
	Languages      []LanguageCount `json:"languages"`
	ForksExcluded  bool            `json:"forks_excluded"`
}

// FormattedAvgRepoSize returns the average size in a human readable unit
func (s *RepoStats) FormattedAvgRepoSize() string {
	return FormatSize(s.AvgRepoSize)
}

// FormatSize renders a byte count as GB, MB or KB with two decimals, or as whole bytes below 1 KB
func FormatSize(bytes float64) string {
	switch {
	case bytes >= gigabyte:
		return fmt.Sprintf("%.2f GB", bytes/gigabyte)
	case bytes >= megabyte:
		return fmt.Sprintf("%.2f MB", bytes/megabyte)
	case bytes >= kilobyte:
		return fmt.Sprintf("%.2f KB", bytes/kilobyte)
	default:
		return fmt.Sprintf("%.0f B", bytes)
	}
}
