package errors

import "fmt"

// Common error messages for the releasekit CLI.
// These templates ensure consistent, actionable error messages.

// MissingPluginsDir creates an error for a missing plugins directory.
func MissingPluginsDir(dir string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("plugins directory not found: %s", dir),
		"Check the plugins_dir setting in .releasekit/config.yml",
		"Or pass --plugins-dir explicitly",
	)
}

// MissingRegistryFile creates an error for a missing marketplace registry document.
func MissingRegistryFile(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("marketplace registry not found: %s", path),
		"Check the registry_path setting in .releasekit/config.yml",
		"Expected location: .claude-plugin/marketplace.json",
	)
}

// MalformedChangelog creates an error for a changelog the run cannot process.
func MalformedChangelog(plugin string, cause error) *CLIError {
	return NewEvaluateError(
		fmt.Sprintf("plugin %s: %v", plugin, cause),
		"Every changelog needs a literal '## [Unreleased]' section header",
		"Fix the changelog and re-run; nothing was modified",
	)
}

// ConsistencyViolation creates an error for a post-write location mismatch.
// The run stops here; already-synchronized plugins keep their new versions.
func ConsistencyViolation(cause error, synchronized []string) *CLIError {
	remediation := []string{
		"Inspect the listed locations and align them by hand, or revert via version control",
	}
	if len(synchronized) > 0 {
		remediation = append(remediation,
			fmt.Sprintf("Plugins already fully synchronized in this run: %v", synchronized))
	}
	return NewSyncError(cause.Error(), remediation...)
}

// DirtyWorktree creates an error for a release attempted on a dirty tree.
func DirtyWorktree() *CLIError {
	return NewConfigError(
		"working tree has uncommitted changes",
		"Commit or stash your changes before releasing",
		"Release runs need a clean tree so the release commit contains only version changes",
	)
}

// InvalidBranchName creates an error for an unusable target branch name.
func InvalidBranchName(branch string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid target branch name: %q", branch),
		"releasekit release --branch <branch-name>",
		"Branch names cannot contain spaces, '..', or end with '/'",
	)
}
