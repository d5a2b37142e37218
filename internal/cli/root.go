// Package cli implements the gstats command line, built using the Cobra library.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alimgiray/gstats/internal/models"
	"github.com/alimgiray/gstats/internal/services"
	"github.com/alimgiray/gstats/pkg/config"
	"github.com/alimgiray/gstats/pkg/logger"
	"github.com/spf13/cobra"
)

// RunnerFactory builds a Runner once flags have been parsed
type RunnerFactory func(envFile string, verbose bool, out, errOut io.Writer) (*Runner, error)

// NewRootCommand creates the gstats command
func NewRootCommand(newRunner RunnerFactory) *cobra.Command {
	var (
		username     string
		excludeForks bool
		xlsxPath     string
		envFile      string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "gstats",
		Short: "Prints a GitHub user's profile and repository statistics",
		Long: `gstats fetches a GitHub user's public profile and repositories and prints
the repository count, stars, forks, average repository size and language usage.
The API token is read from TOKEN in the .env file or the environment.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				prompted, err := promptUsername(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				username = prompted
			}
			username = strings.TrimSpace(username)
			if username == "" {
				return services.ErrEmptyUsername
			}

			runner, err := newRunner(envFile, verbose, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return runner.Run(context.Background(), username, Options{
				Stats:    models.StatsOptions{ExcludeForks: excludeForks},
				XLSXPath: xlsxPath,
			})
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "GitHub username (prompted for when empty)")
	cmd.Flags().BoolVar(&excludeForks, "exclude-forks", false, "Leave forked repositories out of the statistics")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the statistics to this XLSX file")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "File holding TOKEN")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")

	return cmd
}

// NewRunner wires configuration, logging and the GitHub services
func NewRunner(envFile string, verbose bool, out, errOut io.Writer) (*Runner, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	logCfg := config.LogConfig{Level: "warn", Format: "text"}
	if verbose {
		logCfg.Level = "debug"
	}
	log := logger.New(logCfg, errOut)

	github, err := services.NewGitHubService(cfg.GitHub, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub service: %w", err)
	}

	return &Runner{
		Profiles: services.NewProfileService(github, log),
		Stats:    services.NewRepoStatsService(github, log),
		Exporter: services.NewExportService(),
		Logger:   log,
		Out:      out,
		Err:      errOut,
	}, nil
}

func promptUsername(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter a GitHub username: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCommand(NewRunner).Execute(); err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
