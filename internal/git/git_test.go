package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBranchName(t *testing.T) {
	t.Parallel()

	valid := []string{
		"main",
		"release/2026-08-23",
		"feature/add-thing",
		"v1.2.3-prep",
	}
	for _, name := range valid {
		assert.NoError(t, ValidateBranchName(name), "branch %q should be valid", name)
	}

	invalid := []string{
		"",
		"has space",
		"double..dot",
		"/leading",
		"trailing/",
		"bad~name",
		"bad^name",
		"bad:name",
		"glob*name",
		"locked.lock",
	}
	for _, name := range invalid {
		assert.Error(t, ValidateBranchName(name), "branch %q should be invalid", name)
	}
}

func TestIsGitRepository_NonRepo(t *testing.T) {
	t.Parallel()

	assert.False(t, IsGitRepository(t.TempDir()))
}
