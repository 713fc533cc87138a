// Package cli tests root command wiring and global flags for releasekit.
//
// Note: these tests cannot run in parallel because they share the global
// rootCmd and its flag state.
package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// executeCommand runs the root command with args and captures its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// absentConfig returns a config path that does not exist so tests run on
// defaults plus flags only.
func absentConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.yml")
}

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "releasekit", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	tests := map[string]struct {
		flagName string
	}{
		"config flag exists":      {flagName: "config"},
		"plugins-dir flag exists": {flagName: "plugins-dir"},
		"registry flag exists":    {flagName: "registry"},
		"debug flag exists":       {flagName: "debug"},
		"no-color flag exists":    {flagName: "no-color"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			assert.NotNil(t, flag, "flag %s should exist", tt.flagName)
		})
	}
}

func TestRootCmd_CommandRegistration(t *testing.T) {
	want := map[string]bool{
		"release": false,
		"check":   false,
		"status":  false,
		"version": false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		assert.True(t, found, "command %s should be registered", name)
	}
}

func TestVersionCmd_Output(t *testing.T) {
	out, err := executeCommand(t, "version")
	assert.NoError(t, err)
	assert.Contains(t, out, "releasekit dev")
}
