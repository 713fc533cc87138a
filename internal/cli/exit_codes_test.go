package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raveheart1/releasekit/internal/errors"
	"github.com/raveheart1/releasekit/internal/release"
)

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"nil error": {
			err:  nil,
			want: ExitSuccess,
		},
		"argument error": {
			err:  errors.NewArgumentError("bad flag"),
			want: ExitInvalidArguments,
		},
		"configuration error": {
			err:  errors.MissingPluginsDir("plugins"),
			want: ExitMissingPrerequisites,
		},
		"evaluate error": {
			err:  errors.NewEvaluateError("malformed changelog"),
			want: ExitEvaluateFailed,
		},
		"sync error": {
			err:  errors.NewSyncError("locations disagree"),
			want: ExitSyncAborted,
		},
		"orchestrator evaluate error": {
			err:  &release.EvaluateError{Plugin: "p", Err: fmt.Errorf("boom")},
			want: ExitEvaluateFailed,
		},
		"orchestrator sync error": {
			err:  &release.SyncAbortedError{Plugin: "p", Err: fmt.Errorf("boom")},
			want: ExitSyncAborted,
		},
		"plain error": {
			err:  fmt.Errorf("anything else"),
			want: ExitEvaluateFailed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
