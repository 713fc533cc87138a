package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raveheart1/releasekit/internal/bump"
	"github.com/raveheart1/releasekit/internal/changelog"
	"github.com/raveheart1/releasekit/internal/errors"
	"github.com/raveheart1/releasekit/internal/marketplace"
	"github.com/raveheart1/releasekit/internal/output"
	"github.com/raveheart1/releasekit/internal/semver"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every plugin changelog without releasing",
	Long: `Validate that every plugin changelog is structurally sound.

Each plugin's CHANGELOG.md must contain a literal '## [Unreleased]'
section header. The command reports the pending bump severity per plugin
and fails if any changelog is malformed.

With --frozen the command additionally verifies that each plugin's
version locations (manifest, skill descriptors, registry record) hold
identical version strings, catching drift introduced by hand edits.

Example:
  releasekit check
  releasekit check --frozen`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd)
	},
}

func init() {
	checkCmd.Flags().Bool("frozen", false, "also verify version locations agree for every plugin")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := checkMarketplaceLayout(cfg); err != nil {
		return err
	}

	frozen, _ := cmd.Flags().GetBool("frozen")
	out := cmd.OutOrStdout()

	fsys := marketplace.OSFileSystem{}
	plugins, err := marketplace.Discover(fsys, cfg.PluginsDir)
	if err != nil {
		return errors.Wrap(err, errors.Evaluate)
	}

	sync := marketplace.NewSynchronizer(cfg.RegistryPath, marketplace.WithFileSystem(fsys))

	var failures []string
	for _, plugin := range plugins {
		if !plugin.HasChangelog() {
			output.PrintSkipped(out, plugin.Name, "no changelog file")
			continue
		}

		doc, err := changelog.Load(plugin.ChangelogPath)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", plugin.Name, err))
			output.PrintWarning(out, fmt.Sprintf("%s: malformed changelog", plugin.Name))
			continue
		}

		severity := bump.ForDocument(doc)
		if severity == semver.SeverityNone {
			output.PrintSkipped(out, plugin.Name, "no pending changes")
		} else {
			next := semver.Apply(plugin.CurrentVersion, severity)
			output.PrintBump(out, plugin.Name, plugin.CurrentVersion.String(), next.String(), severity.String())
		}

		if frozen {
			if msg := checkFrozen(sync, plugin, out); msg != "" {
				failures = append(failures, msg)
				output.PrintWarning(out, msg)
			}
		}
	}

	if len(failures) > 0 {
		return errors.NewEvaluateError(
			fmt.Sprintf("check failed for %d plugin(s):\n  %s", len(failures), strings.Join(failures, "\n  ")),
			"Fix the listed changelogs or version locations and re-run",
		)
	}

	output.PrintSuccess(out, fmt.Sprintf("%d plugin(s) checked", len(plugins)))
	return nil
}

// checkFrozen verifies that every persisted version location for the
// plugin holds the same string. Returns a failure description, or empty.
// Unpublished plugins are compared without the registry location.
func checkFrozen(sync *marketplace.Synchronizer, plugin *marketplace.Plugin, out io.Writer) string {
	observed, err := sync.ReadAll(plugin, false)
	if err != nil {
		var notFound *marketplace.RegistryEntryNotFoundError
		if stderrors.As(err, &notFound) {
			output.PrintWarning(out, fmt.Sprintf("%s: no registry entry (unpublished plugin)", plugin.Name))
			observed, err = sync.ReadAll(plugin, true)
		}
		if err != nil {
			return fmt.Sprintf("%s: reading version locations: %v", plugin.Name, err)
		}
	}

	for i := 1; i < len(observed); i++ {
		if observed[i].Value != observed[0].Value {
			var sb strings.Builder
			fmt.Fprintf(&sb, "%s: version locations disagree:", plugin.Name)
			for _, lv := range observed {
				fmt.Fprintf(&sb, " %s(%s)=%q", lv.Location, lv.Path, lv.Value)
			}
			return sb.String()
		}
	}
	return ""
}
