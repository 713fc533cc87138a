package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/releasekit/internal/testutil"
)

func TestStatusCmd_ListsPendingPlugins(t *testing.T) {
	m := testutil.NewMarketplace(t)
	m.AddPlugin(testutil.PluginSpec{
		Name:      "greeter",
		Version:   "1.0.0",
		Changelog: pendingChangelog,
	})
	m.AddPlugin(testutil.PluginSpec{
		Name:    "bare",
		Version: "0.3.0",
	})

	out, err := executeCommand(t,
		"status",
		"--config", absentConfig(t),
		"--plugins-dir", m.PluginsDir,
		"--registry", m.RegistryPath,
		"--watch=false",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "greeter")
	assert.Contains(t, out, "1.1.0")
	assert.Contains(t, out, "New greeting command")
	assert.Contains(t, out, "bare")
	assert.Contains(t, out, "no changelog file")
}

func TestStatusCmd_NothingPending(t *testing.T) {
	m := testutil.NewMarketplace(t)
	m.AddPlugin(testutil.PluginSpec{
		Name:      "quiet",
		Version:   "2.0.0",
		Changelog: "# Changelog\n\n## [Unreleased]\n",
	})

	out, err := executeCommand(t,
		"status",
		"--config", absentConfig(t),
		"--plugins-dir", m.PluginsDir,
		"--registry", m.RegistryPath,
		"--watch=false",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to release")
}
