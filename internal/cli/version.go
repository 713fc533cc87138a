package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/releasekit/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print releasekit version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "releasekit %s (commit %s, built %s)\n",
			version.Version, version.Commit, version.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
