// Package git provides the repository preflight checks releasekit runs at
// the handoff boundary: repository detection, current-branch lookup,
// clean-worktree verification, and branch-name validation. It uses the
// go-git library throughout; the release core itself never talks to a VCS,
// it only hands off plain data.
package git

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default, it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the git repository containing path (or the current
// working directory when path is empty), traversing up to find the root.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// IsGitRepository checks if dir is within a git repository.
func IsGitRepository(dir string) bool {
	_, err := openRepo(dir)
	result := err == nil
	logDebug("[git] IsGitRepository(%s): %v", dir, result)
	return result
}

// CurrentBranch returns the name of the current branch for the repository
// containing dir. Returns empty string in detached HEAD state.
func CurrentBranch(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	if !head.Name().IsBranch() {
		logDebug("[git] CurrentBranch: detached HEAD state")
		return "", nil
	}

	branch := head.Name().Short()
	logDebug("[git] CurrentBranch: %s", branch)
	return branch, nil
}

// IsWorktreeClean reports whether the repository containing dir has no
// uncommitted changes. Release runs require a clean tree so the release
// commit holds only version changes.
func IsWorktreeClean(dir string) (bool, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return false, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("getting worktree status: %w", err)
	}

	clean := status.IsClean()
	logDebug("[git] IsWorktreeClean: %v", clean)
	return clean, nil
}

// ValidateBranchName rejects branch names git itself would refuse.
// This is a conservative subset of git's check-ref-format rules.
func ValidateBranchName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("branch name is empty")
	case strings.ContainsAny(name, " \t~^:?*[\\"):
		return fmt.Errorf("branch name %q contains forbidden characters", name)
	case strings.Contains(name, ".."):
		return fmt.Errorf("branch name %q contains '..'", name)
	case strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/"):
		return fmt.Errorf("branch name %q starts or ends with '/'", name)
	case strings.HasSuffix(name, ".lock"):
		return fmt.Errorf("branch name %q ends with '.lock'", name)
	}
	return nil
}
