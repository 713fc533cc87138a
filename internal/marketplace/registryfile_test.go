package marketplace

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/releasekit/internal/semver"
	"github.com/raveheart1/releasekit/internal/testutil"
)

func TestWriteRegistryVersion_RecordLevelUpdate(t *testing.T) {
	t.Parallel()

	m := testutil.NewMarketplace(t)
	m.AddPlugin(testutil.PluginSpec{Name: "alpha", Version: "1.0.0"})
	m.AddPlugin(testutil.PluginSpec{Name: "beta", Version: "2.3.4"})

	fsys := OSFileSystem{}
	require.NoError(t, writeRegistryVersion(fsys, m.RegistryPath, "alpha", semver.Version{Major: 1, Minor: 1}))

	// Only alpha's record moved; beta and the surrounding document survive.
	alphaValue, err := readRegistryVersion(fsys, m.RegistryPath, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", alphaValue)

	betaValue, err := readRegistryVersion(fsys, m.RegistryPath, "beta")
	require.NoError(t, err)
	assert.Equal(t, "2.3.4", betaValue)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(m.ReadFile(m.RegistryPath)), &doc))
	assert.Equal(t, "test-marketplace", doc["name"])
	owner, ok := doc["owner"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Fixture Owner", owner["name"])
}

func TestReadRegistryVersion_EntryNotFound(t *testing.T) {
	t.Parallel()

	m := testutil.NewMarketplace(t)
	m.AddPlugin(testutil.PluginSpec{Name: "alpha", Version: "1.0.0"})

	_, err := readRegistryVersion(OSFileSystem{}, m.RegistryPath, "ghost")
	require.Error(t, err)

	var notFound *RegistryEntryNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Plugin)
}

func TestRegistryOwnVersion_RoundTrip(t *testing.T) {
	t.Parallel()

	m := testutil.NewMarketplace(t)
	fsys := OSFileSystem{}

	v, err := ReadRegistryOwnVersion(fsys, m.RegistryPath)
	require.NoError(t, err)
	assert.Equal(t, semver.Version{Major: 1}, v)

	require.NoError(t, WriteRegistryOwnVersion(fsys, m.RegistryPath, semver.Version{Major: 1, Minor: 2}))

	v, err = ReadRegistryOwnVersion(fsys, m.RegistryPath)
	require.NoError(t, err)
	assert.Equal(t, semver.Version{Major: 1, Minor: 2}, v)
}
