package cli

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raveheart1/releasekit/internal/bump"
	"github.com/raveheart1/releasekit/internal/changelog"
	"github.com/raveheart1/releasekit/internal/config"
	"github.com/raveheart1/releasekit/internal/errors"
	"github.com/raveheart1/releasekit/internal/marketplace"
	"github.com/raveheart1/releasekit/internal/output"
	"github.com/raveheart1/releasekit/internal/semver"
	"github.com/raveheart1/releasekit/internal/watch"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show plugins with pending changes",
	Long: `Show each plugin's pending changes and the version bump a release
run would apply. Nothing is written.

With --watch the command keeps running and re-renders whenever a
changelog, manifest, or skill descriptor changes. Stop with Ctrl-C.

Example:
  releasekit status
  releasekit status --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func init() {
	statusCmd.Flags().Bool("watch", false, "re-render on file changes until interrupted")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := checkMarketplaceLayout(cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := printStatus(out, cfg); err != nil {
		return err
	}

	watchMode, _ := cmd.Flags().GetBool("watch")
	if !watchMode {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := watch.New(cfg.PluginsDir, func(plugins []string) {
		output.PrintRule(out)
		fmt.Fprintf(out, "changed: %v\n", plugins)
		if err := printStatus(out, cfg); err != nil {
			output.PrintWarning(out, err.Error())
		}
	}, watch.WithErrorWriter(cmd.ErrOrStderr()))

	fmt.Fprintln(out, "watching for changes (Ctrl-C to stop)")
	return watcher.Run(ctx)
}

// printStatus renders one status snapshot: every plugin, its current
// version, and the bump a release run would apply right now.
func printStatus(out io.Writer, cfg *config.Configuration) error {
	plugins, err := marketplace.Discover(marketplace.OSFileSystem{}, cfg.PluginsDir)
	if err != nil {
		return errors.Wrap(err, errors.Evaluate)
	}

	pending := 0
	for _, plugin := range plugins {
		if !plugin.HasChangelog() {
			output.PrintSkipped(out, plugin.Name, "no changelog file")
			continue
		}

		doc, err := changelog.Load(plugin.ChangelogPath)
		if err != nil {
			output.PrintWarning(out, fmt.Sprintf("%s: %v", plugin.Name, err))
			continue
		}

		severity := bump.ForDocument(doc)
		if severity == semver.SeverityNone {
			output.PrintSkipped(out, plugin.Name, "no pending changes")
			continue
		}

		pending++
		next := semver.Apply(plugin.CurrentVersion, severity)
		output.PrintBump(out, plugin.Name, plugin.CurrentVersion.String(), next.String(), severity.String())
		if err := changelog.FormatUnreleased(doc.Unreleased(), out, changelog.FormatOptions{}); err != nil {
			return errors.Wrap(err, errors.Runtime)
		}
	}

	if pending == 0 {
		fmt.Fprintln(out, "Nothing to release: no plugin has pending changes.")
	}
	return nil
}
