package models

// RepositoryRecord holds the repository fields the statistics are built from.
// Counts and language are nil when the API omits them.
type RepositoryRecord struct {
	Name            string  `json:"name"`
	Fork            bool    `json:"fork"`
	StargazersCount *int    `json:"stargazers_count"`
	ForksCount      *int    `json:"forks_count"`
	Size            int     `json:"size"`
	Language        *string `json:"language"`
}

// Stars returns the star count, 0 when missing
func (r *RepositoryRecord) Stars() int {
	if r.StargazersCount == nil {
		return 0
	}
	return *r.StargazersCount
}

// Forks returns the fork count, 0 when missing
func (r *RepositoryRecord) Forks() int {
	if r.ForksCount == nil {
		return 0
	}
	return *r.ForksCount
}

// PrimaryLanguage returns the language, "" when missing
func (r *RepositoryRecord) PrimaryLanguage() string {
	if r.Language == nil {
		return ""
	}
	return *r.Language
}
