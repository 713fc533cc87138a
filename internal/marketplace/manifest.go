package marketplace

import (
	"encoding/json"
	"fmt"

	"github.com/raveheart1/releasekit/internal/semver"
)

// ManifestFileName is the per-plugin manifest file.
const ManifestFileName = "plugin.json"

// readManifestVersion reads the version string from a plugin.json file.
// This is the canonical read path for a plugin's current version.
func readManifestVersion(fsys FileSystem, path string) (string, error) {
	doc, err := readManifest(fsys, path)
	if err != nil {
		return "", err
	}

	version, ok := doc["version"].(string)
	if !ok {
		return "", fmt.Errorf("manifest %s: missing or non-string version field", path)
	}
	return version, nil
}

// readManifestName reads the name field from a plugin.json file.
func readManifestName(fsys FileSystem, path string) (string, error) {
	doc, err := readManifest(fsys, path)
	if err != nil {
		return "", err
	}

	name, ok := doc["name"].(string)
	if !ok || name == "" {
		return "", fmt.Errorf("manifest %s: missing or non-string name field", path)
	}
	return name, nil
}

// writeManifestVersion rewrites only the version field of a plugin.json
// file. All other fields are carried through the decode/encode cycle.
func writeManifestVersion(fsys FileSystem, path string, version semver.Version) error {
	doc, err := readManifest(fsys, path)
	if err != nil {
		return err
	}

	doc["version"] = version.String()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest %s: %w", path, err)
	}
	data = append(data, '\n')

	if err := fsys.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

func readManifest(fsys FileSystem, path string) (map[string]any, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return doc, nil
}
