package cli

import (
	stderrors "errors"

	"github.com/raveheart1/releasekit/internal/errors"
	"github.com/raveheart1/releasekit/internal/release"
)

// Exit codes for the releasekit CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitEvaluateFailed indicates a run aborted before any file was
	// mutated (malformed changelog, check failure). Safe to re-run.
	ExitEvaluateFailed = 1

	// ExitSyncAborted indicates a run stopped mid-synchronization; some
	// plugins may already hold their new versions.
	ExitSyncAborted = 2

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 3

	// ExitMissingPrerequisites indicates missing configuration, files, or
	// repository preconditions.
	ExitMissingPrerequisites = 4
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var syncErr *release.SyncAbortedError
	if stderrors.As(err, &syncErr) {
		return ExitSyncAborted
	}
	var evalErr *release.EvaluateError
	if stderrors.As(err, &evalErr) {
		return ExitEvaluateFailed
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case errors.Argument:
			return ExitInvalidArguments
		case errors.Configuration:
			return ExitMissingPrerequisites
		case errors.Sync:
			return ExitSyncAborted
		case errors.Evaluate:
			return ExitEvaluateFailed
		}
	}
	return ExitEvaluateFailed
}
