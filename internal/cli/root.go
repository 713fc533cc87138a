// Package cli implements the releasekit command-line interface using cobra.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/raveheart1/releasekit/internal/config"
	"github.com/raveheart1/releasekit/internal/errors"
	"github.com/raveheart1/releasekit/internal/git"
)

var rootCmd = &cobra.Command{
	Use:   "releasekit",
	Short: "Deterministic release automation for plugin marketplaces",
	Long: `releasekit automates releases for a marketplace of independently
versioned plugins. It reads each plugin's Keep a Changelog file, decides
the semantic version bump from the pending change categories, writes the
new version to every location that records it, rolls the changelog, and
aggregates release notes for the release branch.

Runs are deterministic: the same marketplace state always produces the
same versions, the same file contents, and byte-identical release notes.`,
	Example: `  # Preview what a release would do, without touching any file
  releasekit release --dry-run

  # Perform the release and write notes to a file
  releasekit release --notes-file RELEASE_NOTES.md

  # Validate every changelog without releasing
  releasekit check

  # Show pending plugins, re-rendering on file changes
  releasekit status --watch`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			color.NoColor = true
		}
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			git.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
			})
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to project config file (default .releasekit/config.yml)")
	rootCmd.PersistentFlags().String("plugins-dir", "", "directory containing one subdirectory per plugin (overrides config)")
	rootCmd.PersistentFlags().String("registry", "", "path to the marketplace registry document (overrides config)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}

// Execute runs the root command. Structured errors are printed with
// remediation guidance; the caller maps the returned error to an exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
	} else {
		errors.PrintSimpleError(err, errors.Runtime)
	}
	return err
}

// loadConfig loads the layered configuration and applies persistent flag
// overrides. Flags beat every other source.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration",
			"Check .releasekit/config.yml for syntax errors",
			"Run with --config to point at a different file")
	}

	if dir, _ := cmd.Flags().GetString("plugins-dir"); dir != "" {
		cfg.PluginsDir = dir
	}
	if registry, _ := cmd.Flags().GetString("registry"); registry != "" {
		cfg.RegistryPath = registry
	}
	return cfg, nil
}
