package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "plugins", cfg.PluginsDir)
	assert.Equal(t, ".claude-plugin/marketplace.json", cfg.RegistryPath)
	assert.Equal(t, "release/{{DATE}}", cfg.DefaultBranch)
	assert.True(t, cfg.RequireCleanTree)
}

func TestLoad_ProjectConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := "plugins_dir: custom/plugins\nrequire_clean_tree: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "custom/plugins", cfg.PluginsDir)
	assert.False(t, cfg.RequireCleanTree)
	// Untouched keys keep defaults.
	assert.Equal(t, ".claude-plugin/marketplace.json", cfg.RegistryPath)
}

func TestLoad_JSONProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"plugins_dir": "json/plugins", "notes_file": "NOTES.md"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json/plugins", cfg.PluginsDir)
	assert.Equal(t, "NOTES.md", cfg.NotesFile)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("plugins_dir: from-file\n"), 0o644))

	t.Setenv("RELEASEKIT_PLUGINS_DIR", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.PluginsDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("plugins_dir: [unclosed\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &Configuration{PluginsDir: "plugins", RegistryPath: "reg.json"}
	assert.NoError(t, cfg.Validate())

	assert.Error(t, (&Configuration{RegistryPath: "reg.json"}).Validate())
	assert.Error(t, (&Configuration{PluginsDir: "plugins"}).Validate())
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plugins_dir", envTransform("RELEASEKIT_PLUGINS_DIR"))
	assert.Equal(t, "notes_file", envTransform("RELEASEKIT_NOTES_FILE"))
}
