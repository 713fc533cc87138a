package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raveheart1/releasekit/internal/config"
	"github.com/raveheart1/releasekit/internal/errors"
	"github.com/raveheart1/releasekit/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage releasekit configuration",
	Long:  `Commands for initializing and inspecting releasekit configuration.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented project config file",
	Long: `Write a commented config template to .releasekit/config.yml.

Fails if the file already exists unless --force is given.

Example:
  releasekit config init`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return runConfigInit(cmd, force)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "project: %s\n", config.ProjectConfigPath())
		userPath, err := config.UserConfigPath()
		if err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "resolving user config dir")
		}
		fmt.Fprintf(out, "user:    %s\n", userPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	path := config.ProjectConfigPath()

	if _, err := os.Stat(path); err == nil && !force {
		return errors.NewConfigError(
			fmt.Sprintf("config file already exists: %s", path),
			"Use --force to overwrite it",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "creating config directory")
	}
	if err := os.WriteFile(path, []byte(config.DefaultConfigTemplate()), 0o644); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "writing config file")
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("wrote %s", path))
	return nil
}
