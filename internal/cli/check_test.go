package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/releasekit/internal/testutil"
)

func TestCheckCmd_ValidChangelogs(t *testing.T) {
	m := testutil.NewMarketplace(t)
	m.AddPlugin(testutil.PluginSpec{
		Name:      "greeter",
		Version:   "1.0.0",
		Changelog: pendingChangelog,
		Skills:    []string{"hello"},
	})
	m.AddPlugin(testutil.PluginSpec{
		Name:      "quiet",
		Version:   "2.0.0",
		Changelog: "# Changelog\n\n## [Unreleased]\n",
	})

	out, err := executeCommand(t,
		"check",
		"--config", absentConfig(t),
		"--plugins-dir", m.PluginsDir,
		"--registry", m.RegistryPath,
		"--frozen=false",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "greeter")
	assert.Contains(t, out, "1.1.0")
	assert.Contains(t, out, "quiet")
	assert.Contains(t, out, "no pending changes")
	assert.Contains(t, out, "2 plugin(s) checked")
}

func TestCheckCmd_MalformedChangelog(t *testing.T) {
	m := testutil.NewMarketplace(t)
	m.AddPlugin(testutil.PluginSpec{
		Name:      "broken",
		Version:   "1.0.0",
		Changelog: "# Changelog\n\nNo unreleased header.\n",
	})

	_, err := executeCommand(t,
		"check",
		"--config", absentConfig(t),
		"--plugins-dir", m.PluginsDir,
		"--registry", m.RegistryPath,
		"--frozen=false",
	)
	require.Error(t, err)
	assert.Equal(t, ExitEvaluateFailed, ExitCode(err))
	assert.Contains(t, err.Error(), "broken")
}

func TestCheckCmd_FrozenDetectsDrift(t *testing.T) {
	m := testutil.NewMarketplace(t)
	m.AddPlugin(testutil.PluginSpec{
		Name:              "drifted",
		Version:           "1.2.0",
		Changelog:         pendingChangelog,
		Skills:            []string{"hello"},
		DescriptorVersion: "1.1.0",
	})

	_, err := executeCommand(t,
		"check",
		"--config", absentConfig(t),
		"--plugins-dir", m.PluginsDir,
		"--registry", m.RegistryPath,
		"--frozen",
	)
	require.Error(t, err)
	assert.Equal(t, ExitEvaluateFailed, ExitCode(err))
	assert.Contains(t, err.Error(), "drifted")
	assert.Contains(t, err.Error(), "disagree")
}

func TestCheckCmd_FrozenPassesWhenAligned(t *testing.T) {
	m := testutil.NewMarketplace(t)
	m.AddPlugin(testutil.PluginSpec{
		Name:      "aligned",
		Version:   "1.2.0",
		Changelog: pendingChangelog,
		Skills:    []string{"hello", "bye"},
	})

	_, err := executeCommand(t,
		"check",
		"--config", absentConfig(t),
		"--plugins-dir", m.PluginsDir,
		"--registry", m.RegistryPath,
		"--frozen",
	)
	assert.NoError(t, err)
}

func TestCheckCmd_FrozenUnpublishedWarnsOnly(t *testing.T) {
	m := testutil.NewMarketplace(t)
	m.AddPlugin(testutil.PluginSpec{
		Name:        "newcomer",
		Version:     "0.1.0",
		Changelog:   pendingChangelog,
		Skills:      []string{"hello"},
		Unpublished: true,
	})

	out, err := executeCommand(t,
		"check",
		"--config", absentConfig(t),
		"--plugins-dir", m.PluginsDir,
		"--registry", m.RegistryPath,
		"--frozen",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "unpublished")
}
