package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raveheart1/releasekit/internal/config"
	"github.com/raveheart1/releasekit/internal/errors"
	"github.com/raveheart1/releasekit/internal/git"
	"github.com/raveheart1/releasekit/internal/output"
	"github.com/raveheart1/releasekit/internal/release"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Release every plugin with pending changes",
	Long: `Release every plugin whose changelog has pending changes.

For each eligible plugin the command computes the bump severity from the
Unreleased change categories, writes the new version to the plugin
manifest, every skill descriptor, and the marketplace registry, verifies
all locations agree, rolls the changelog, and aggregates release notes.

With --dry-run the identical pipeline runs against an in-memory overlay:
the output shows exactly what a real run would do, and no file changes.

Example:
  releasekit release --dry-run
  releasekit release --branch release/2026-08-23 --notes-file NOTES.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd)
	},
}

func init() {
	releaseCmd.Flags().Bool("dry-run", false, "project all writes in memory, leave the tree untouched")
	releaseCmd.Flags().String("branch", "", "target branch name for the handoff (default from config)")
	releaseCmd.Flags().String("notes-file", "", "also write aggregated release notes to this file")
	rootCmd.AddCommand(releaseCmd)
}

func runRelease(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if err := checkMarketplaceLayout(cfg); err != nil {
		return err
	}

	branch, _ := cmd.Flags().GetString("branch")
	if branch == "" {
		branch = expandBranchTemplate(cfg.DefaultBranch, time.Now())
	}
	if err := git.ValidateBranchName(branch); err != nil {
		return errors.InvalidBranchName(branch)
	}

	if cfg.RequireCleanTree && !dryRun && git.IsGitRepository(".") {
		clean, err := git.IsWorktreeClean(".")
		if err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "checking worktree status")
		}
		if !clean {
			return errors.DirtyWorktree()
		}
	}

	out := cmd.OutOrStdout()
	if dryRun {
		output.PrintWarning(out, "dry run: no file will be modified")
	}

	orchestrator := release.New(release.Options{
		PluginsDir:   cfg.PluginsDir,
		RegistryPath: cfg.RegistryPath,
		Branch:       branch,
		DryRun:       dryRun,
		Reporter:     newConsoleReporter(out),
	})

	result, err := orchestrator.Run()
	if err != nil {
		return releaseError(err)
	}

	if result.NothingToRelease {
		return nil
	}

	output.PrintRule(out)
	fmt.Fprintln(out, result.Handoff.Notes)
	fmt.Fprintf(out, "Target branch: %s\n", result.Handoff.Branch)

	notesFile, _ := cmd.Flags().GetString("notes-file")
	if notesFile == "" {
		notesFile = cfg.NotesFile
	}
	if notesFile != "" {
		if dryRun {
			fmt.Fprintf(out, "Dry run: skipped writing notes to %s\n", notesFile)
		} else {
			if err := os.WriteFile(notesFile, []byte(result.Handoff.Notes), 0o644); err != nil {
				return errors.WrapWithMessage(err, errors.Runtime, "writing release notes")
			}
			output.PrintSuccess(out, fmt.Sprintf("release notes written to %s", notesFile))
		}
	}
	return nil
}

// checkMarketplaceLayout verifies the two filesystem prerequisites every
// marketplace command shares.
func checkMarketplaceLayout(cfg *config.Configuration) error {
	if _, err := os.Stat(cfg.PluginsDir); err != nil {
		return errors.MissingPluginsDir(cfg.PluginsDir)
	}
	if _, err := os.Stat(cfg.RegistryPath); err != nil {
		return errors.MissingRegistryFile(cfg.RegistryPath)
	}
	return nil
}

// expandBranchTemplate substitutes the {{DATE}} placeholder in a branch
// template with the run date.
func expandBranchTemplate(template string, now time.Time) string {
	return strings.ReplaceAll(template, "{{DATE}}", now.Format("2006-01-02"))
}

// releaseError converts orchestrator failures into structured CLI errors
// with remediation guidance.
func releaseError(err error) error {
	var evalErr *release.EvaluateError
	if stderrors.As(err, &evalErr) {
		return errors.MalformedChangelog(evalErr.Plugin, evalErr.Err)
	}

	var syncErr *release.SyncAbortedError
	if stderrors.As(err, &syncErr) {
		return errors.ConsistencyViolation(syncErr, syncErr.Synchronized)
	}

	return errors.Wrap(err, errors.Runtime)
}
