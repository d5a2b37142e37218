package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alimgiray/gstats/internal/models"
	"github.com/alimgiray/gstats/internal/services"
	"github.com/sirupsen/logrus"
)

// ErrUserNotFound is returned after the not-found message has been printed
var ErrUserNotFound = errors.New("user not found")

const userNotFoundMessage = "This user was not found."

type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (*models.UserProfile, error)
}

type StatsAggregator interface {
	Aggregate(ctx context.Context, username string, opts models.StatsOptions) (*models.RepoStats, error)
}

// Runner looks up one user and prints the profile and repository statistics
type Runner struct {
	Profiles ProfileFetcher
	Stats    StatsAggregator
	Exporter *services.ExportService
	Logger   *logrus.Logger
	Out      io.Writer
	Err      io.Writer
}

// Options are the per-invocation settings of a lookup
type Options struct {
	Stats    models.StatsOptions
	XLSXPath string
}

// Run prints the profile of username followed by its repository statistics.
// Statistics are skipped when they cannot be fetched.
func (r *Runner) Run(ctx context.Context, username string, opts Options) error {
	profile, err := r.Profiles.FetchProfile(ctx, username)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			fmt.Fprintln(r.Err, userNotFoundMessage)
			return ErrUserNotFound
		}
		return err
	}
	printProfile(r.Out, profile)

	stats, err := r.Stats.Aggregate(ctx, username, opts.Stats)
	if err != nil {
		r.Logger.WithError(err).WithField("username", username).Debug("Skipping repository statistics")
		stats = nil
	} else {
		printStats(r.Out, stats)
	}

	if opts.XLSXPath != "" {
		return r.writeXLSX(opts.XLSXPath, profile, stats)
	}
	return nil
}

// writeXLSX writes the workbook to path, removing the file again if writing fails
func (r *Runner) writeXLSX(path string, profile *models.UserProfile, stats *models.RepoStats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := r.Exporter.WriteXLSX(f, profile, stats); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	r.Logger.WithField("path", path).Info("Statistics exported")
	return nil
}

func printProfile(w io.Writer, profile *models.UserProfile) {
	fmt.Fprintf(w, "Username: %s\n", profile.Login)
	fmt.Fprintf(w, "Name: %s\n", models.Field(profile.Name))
	fmt.Fprintf(w, "Bio: %s\n", models.Field(profile.Bio))
	fmt.Fprintf(w, "Company: %s\n", models.Field(profile.Company))
	fmt.Fprintf(w, "Location: %s\n", models.Field(profile.Location))
}

func printStats(w io.Writer, stats *models.RepoStats) {
	fmt.Fprintf(w, "Total repos: %d\n", stats.RepoCount)
	fmt.Fprintf(w, "Total stargazers: %d\n", stats.StargazerCount)
	fmt.Fprintf(w, "Total forks: %d\n", stats.ForkCount)
	fmt.Fprintf(w, "Average repo size: %s\n", stats.FormattedAvgRepoSize())
	fmt.Fprintln(w, "Languages: ")
	for _, lc := range stats.Languages {
		fmt.Fprintf(w, "%s: %d\n", lc.Language, lc.Count)
	}
}
