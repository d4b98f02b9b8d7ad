// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jwilges/monocat/internal/config"
	"github.com/jwilges/monocat/internal/issue"

	"github.com/spf13/cobra"
)

// configCmd is the `monocat config` command tree. Subcommands that read
// configuration load it uncached through a Provider so `config set` followed
// by `config show` in one process never sees stale values.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage monocat configuration",
	Long: `Manage monocat configuration.

Configuration is stored in:
  - Linux: ~/.config/monocat/config.cue
  - macOS: ~/Library/Application Support/monocat/config.cue
  - Windows: %APPDATA%\monocat\config.cue

The GitHub API token is never stored here; export GITHUB_TOKEN instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd, args[0], args[1])
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})
}

func showConfig(cmd *cobra.Command) error {
	cfg, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render(issueStylePath())
		fmt.Fprint(cmd.ErrOrStderr(), rendered)
		return err
	}

	stdout := cmd.OutOrStdout()

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := CmdStyle

	fmt.Fprintln(stdout, headerStyle.Render("Current Configuration"))
	fmt.Fprintln(stdout)

	// The provider does not record where it read from, so the displayed path
	// is re-derived: the --config override when given, the standard config
	// directory otherwise.
	cfgPath := cfgFile
	if cfgPath == "" {
		if cfgDir, dirErr := config.ConfigDir(); dirErr == nil {
			cfgPath = filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
		}
	}
	if cfgPath != "" && fileExistsCheck(cfgPath) {
		fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(stdout)

	// Show values
	fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("owner"), renderOptional(string(cfg.Owner)))
	fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("repository"), renderOptional(string(cfg.Repository)))
	fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("api_base_url"), renderOptional(string(cfg.APIBaseURL)))

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(stdout, "  color_scheme: %s\n", SuccessStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(stdout, "  interactive: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", cfg.UI.Interactive)))
	fmt.Fprintf(stdout, "  verbose: %s\n", SuccessStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

// renderOptional renders a config value, marking unset values instead of
// printing an empty string.
func renderOptional(value string) string {
	if value == "" {
		return SubtitleStyle.Render("(not set)")
	}
	return SuccessStyle.Render(value)
}

func initConfig(cmd *cobra.Command) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Created default configuration at %s/config.cue\n", SuccessStyle.Render("✓"), cfgDir)
	return nil
}

func showConfigPath(cmd *cobra.Command) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	fmt.Fprintf(stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(stdout, "Config file: %s/config.cue\n", cfgDir)
	return nil
}

func setConfigValue(cmd *cobra.Command, key, value string) error {
	cfg, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}

	switch key {
	case "owner":
		owner := config.OwnerName(value)
		if valid, errs := owner.IsValid(); !valid {
			return fmt.Errorf("invalid owner: %w", errors.Join(errs...))
		}
		cfg.Owner = owner

	case "repository":
		repository := config.RepositoryName(value)
		if valid, errs := repository.IsValid(); !valid {
			return fmt.Errorf("invalid repository: %w", errors.Join(errs...))
		}
		cfg.Repository = repository

	case "api_base_url":
		baseURL := config.APIBaseURL(value)
		if valid, errs := baseURL.IsValid(); !valid {
			return fmt.Errorf("invalid api_base_url: %w", errors.Join(errs...))
		}
		cfg.APIBaseURL = baseURL

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	case "ui.interactive":
		cfg.UI.Interactive = value == "true" || value == "1"

	case "ui.color_scheme":
		scheme := config.ColorScheme(value)
		if valid, errs := scheme.IsValid(); !valid {
			return fmt.Errorf("invalid ui.color_scheme: %w", errors.Join(errs...))
		}
		cfg.UI.ColorScheme = scheme

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: owner, repository, api_base_url, ui.verbose, ui.interactive, ui.color_scheme", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
