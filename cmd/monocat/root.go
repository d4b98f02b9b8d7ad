// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jwilges/monocat/internal/config"
	"github.com/jwilges/monocat/internal/github"
	"github.com/jwilges/monocat/internal/issue"
	"github.com/jwilges/monocat/internal/release"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// ownerFlag is the repository owner from --owner; config fills it when empty.
	ownerFlag string
	// repositoryFlag is the repository name from --repository; config fills it when empty.
	repositoryFlag string
	// verbosity is the repeat count of --verbose
	verbosity int
	// quiet restricts logging to errors
	quiet bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// interactive enables styled summaries instead of plain JSON output
	interactive bool
	// nonInteractive forces interactive off, overriding config and the TTY probe
	nonInteractive bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "monocat",
		Short: "A minimal GitHub release publisher",
		Long: TitleStyle.Render("monocat") + SubtitleStyle.Render(" - A minimal GitHub release publisher") + `

monocat inspects, creates, and updates GitHub releases and uploads
release assets, from a shell or from CI jobs.

Repository coordinates come from the --owner/--repository flags or from
the config file. The API token always comes from the GITHUB_TOKEN
environment variable; it is never read from the config file.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Export GITHUB_TOKEN with a token that can see the repository
  2. Optionally persist coordinates: monocat config set owner <name>
  3. Publish: monocat update-release --tag v1.0.0 dist/app.tar.gz

` + SubtitleStyle.Render("Examples:") + `
  monocat get-release --tag v1.2.3               Print the release as JSON
  monocat get-release --tag v1.2.3 --output-id   Print only the release id
  monocat update-release --tag v1.2.3 dist/app.tar.gz
  monocat list-releases --stable                 List semver releases, newest first
  monocat config show                            Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&ownerFlag, "owner", "o", "", "repository owner (overrides the config file)")
	rootCmd.PersistentFlags().StringVarP(&repositoryFlag, "repository", "r", "", "repository name (overrides the config file)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase output verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "only log errors")
	rootCmd.PersistentFlags().BoolVar(&interactive, "interactive", false, "force styled output (default when stdin is a TTY)")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "force plain JSON output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/monocat/config.cue)")

	// The version flag takes -V; -v belongs to --verbose.
	rootCmd.Flags().BoolP("version", "V", false, "print the version and exit")

	// Add subcommands
	rootCmd.AddCommand(getReleaseCmd)
	rootCmd.AddCommand(updateReleaseCmd)
	rootCmd.AddCommand(listReleasesCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user; the commands
		// continue on defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbosity > 0))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && verbosity == 0 && cfg.UI.Verbose {
		verbosity = 1
	}

	// Interactive resolution: flags win, then the config file, then a
	// stdin TTY probe.
	switch {
	case nonInteractive:
		interactive = false
	case interactive:
		// forced on via --interactive
	case cfg != nil && cfg.UI.Interactive:
		interactive = true
	default:
		interactive = isatty.IsTerminal(os.Stdin.Fd())
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// newLogger creates a component logger on stderr honoring --quiet and --verbose.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: prefix})
	switch {
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	case verbosity > 0:
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// resolveRepo merges the --owner/--repository flags with the config file.
// Flags win; a coordinate missing from both is a usage error.
func resolveRepo() (owner, repository string, err error) {
	owner, repository = ownerFlag, repositoryFlag
	if cfg := config.Get(); cfg != nil {
		if owner == "" {
			owner = string(cfg.Owner)
		}
		if repository == "" {
			repository = string(cfg.Repository)
		}
	}
	if owner == "" || repository == "" {
		return "", "", errors.New("an owner and repository are required; pass --owner/--repository or set them with 'monocat config set'")
	}
	return owner, repository, nil
}

// newReleaseClient builds the GitHub API client for the resolved repository.
// A missing token renders the remediation card from the issue catalog before
// the exit code is surfaced.
func newReleaseClient(cmd *cobra.Command) (*github.Client, error) {
	owner, repository, err := resolveRepo()
	if err != nil {
		return nil, err
	}

	opts := []github.ClientOption{
		github.WithUserAgent("monocat/" + Version),
		github.WithLogger(newLogger("github")),
	}
	if cfg := config.Get(); cfg != nil && cfg.APIBaseURL != "" {
		opts = append(opts, github.WithBaseURL(string(cfg.APIBaseURL)))
	}

	client, err := github.NewClient(owner, repository, opts...)
	if err != nil {
		if errors.Is(err, github.ErrMissingToken) {
			styled := ErrorStyle.Render("Error: ") + err.Error() + "\n"
			renderServiceError(cmd.ErrOrStderr(), newServiceError(err, issue.MissingTokenId, styled))
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return nil, &ExitError{Code: 1}
		}
		return nil, err
	}
	return client, nil
}

// newReleaseManager wraps the client in the release workflow manager.
func newReleaseManager(client *github.Client) *release.Manager {
	return release.NewManager(client, release.WithLogger(newLogger("release")))
}

// colorScheme returns the configured terminal color scheme for rendering.
func colorScheme() string {
	if cfg := config.Get(); cfg != nil {
		return string(cfg.UI.ColorScheme)
	}
	return string(config.ColorSchemeAuto)
}
