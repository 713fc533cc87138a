package marketplace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/raveheart1/releasekit/internal/semver"
)

// ChangelogFileName is the per-plugin changelog file.
const ChangelogFileName = "CHANGELOG.md"

// descriptorGlob matches skill descriptors anywhere under a plugin's
// skills directory.
const descriptorGlob = "skills/**/" + DescriptorFileName

// Plugin is one independently versioned unit in the marketplace. Instances
// are built fresh from the filesystem at the start of a release run and
// discarded after; the filesystem is the source of truth.
type Plugin struct {
	Name string
	Dir  string

	ManifestPath    string
	ChangelogPath   string
	DescriptorPaths []string

	CurrentVersion semver.Version
}

// Discover enumerates the plugin directories under pluginsDir. A directory
// is a plugin iff it contains a plugin.json manifest; anything else is
// ignored. Results are name-sorted so every release run processes plugins
// in the same order regardless of directory enumeration order.
func Discover(fsys FileSystem, pluginsDir string) ([]*Plugin, error) {
	entries, err := os.ReadDir(pluginsDir)
	if err != nil {
		return nil, fmt.Errorf("reading plugins directory %s: %w", pluginsDir, err)
	}

	var plugins []*Plugin
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(pluginsDir, entry.Name())
		manifestPath := filepath.Join(dir, ManifestFileName)
		if _, err := os.Stat(manifestPath); err != nil {
			continue
		}

		plugin, err := loadPlugin(fsys, dir, manifestPath)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, plugin)
	}

	sort.Slice(plugins, func(i, j int) bool { return plugins[i].Name < plugins[j].Name })
	return plugins, nil
}

// loadPlugin builds a Plugin from its directory: name and current version
// come from the manifest (the canonical read path), and skill descriptors
// are located by glob.
func loadPlugin(fsys FileSystem, dir, manifestPath string) (*Plugin, error) {
	name, err := readManifestName(fsys, manifestPath)
	if err != nil {
		return nil, err
	}

	versionText, err := readManifestVersion(fsys, manifestPath)
	if err != nil {
		return nil, err
	}
	version, err := semver.Parse(versionText)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: manifest version: %w", name, err)
	}

	descriptors, err := findDescriptors(dir)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", name, err)
	}

	return &Plugin{
		Name:            name,
		Dir:             dir,
		ManifestPath:    manifestPath,
		ChangelogPath:   filepath.Join(dir, ChangelogFileName),
		DescriptorPaths: descriptors,
		CurrentVersion:  version,
	}, nil
}

// findDescriptors globs for SKILL.md files under the plugin's skills tree.
// A plugin without skills has no descriptor location at all.
func findDescriptors(dir string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(dir, descriptorGlob))
	if err != nil {
		return nil, fmt.Errorf("globbing skill descriptors: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// HasChangelog reports whether the plugin's changelog file exists.
func (p *Plugin) HasChangelog() bool {
	_, err := os.Stat(p.ChangelogPath)
	return err == nil
}
