package marketplace

import (
	"encoding/json"
	"fmt"

	"github.com/raveheart1/releasekit/internal/semver"
)

// RegistryFileName is the shared registry document, relative to the
// marketplace root.
const RegistryFileName = ".claude-plugin/marketplace.json"

// RegistryEntryNotFoundError reports a plugin with no record in the shared
// registry. Unpublished plugins legitimately have no registry-facing
// identity yet, so callers treat this as a skip-with-warning, not a
// failure.
type RegistryEntryNotFoundError struct {
	Plugin string
	Path   string
}

func (e *RegistryEntryNotFoundError) Error() string {
	return fmt.Sprintf("registry %s: no entry for plugin %q", e.Path, e.Plugin)
}

// registryDoc is the decoded marketplace.json. The document is held as
// generic maps so unknown fields survive the rewrite; only the targeted
// version values change.
type registryDoc struct {
	path string
	root map[string]any
}

func loadRegistry(fsys FileSystem, path string) (*registryDoc, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}

	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}
	return &registryDoc{path: path, root: root}, nil
}

func (r *registryDoc) save(fsys FileSystem) error {
	data, err := json.MarshalIndent(r.root, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding registry %s: %w", r.path, err)
	}
	data = append(data, '\n')

	if err := fsys.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("writing registry %s: %w", r.path, err)
	}
	return nil
}

// pluginRecord locates the record in the plugins array whose name matches.
func (r *registryDoc) pluginRecord(name string) (map[string]any, bool) {
	plugins, ok := r.root["plugins"].([]any)
	if !ok {
		return nil, false
	}
	for _, entry := range plugins {
		record, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if record["name"] == name {
			return record, true
		}
	}
	return nil, false
}

// readRegistryVersion returns the version recorded for the named plugin.
func readRegistryVersion(fsys FileSystem, path, plugin string) (string, error) {
	doc, err := loadRegistry(fsys, path)
	if err != nil {
		return "", err
	}

	record, found := doc.pluginRecord(plugin)
	if !found {
		return "", &RegistryEntryNotFoundError{Plugin: plugin, Path: path}
	}

	version, ok := record["version"].(string)
	if !ok {
		return "", fmt.Errorf("registry %s: entry %q has missing or non-string version", path, plugin)
	}
	return version, nil
}

// writeRegistryVersion rewrites only the matching record's version field.
// The rest of the document is carried through untouched, so each plugin
// update is an independent record-level write.
func writeRegistryVersion(fsys FileSystem, path, plugin string, version semver.Version) error {
	doc, err := loadRegistry(fsys, path)
	if err != nil {
		return err
	}

	record, found := doc.pluginRecord(plugin)
	if !found {
		return &RegistryEntryNotFoundError{Plugin: plugin, Path: path}
	}

	record["version"] = version.String()
	return doc.save(fsys)
}

// ReadRegistryOwnVersion returns the marketplace-wide version stored under
// the registry document's metadata.version field.
func ReadRegistryOwnVersion(fsys FileSystem, path string) (semver.Version, error) {
	doc, err := loadRegistry(fsys, path)
	if err != nil {
		return semver.Version{}, err
	}

	metadata, ok := doc.root["metadata"].(map[string]any)
	if !ok {
		return semver.Version{}, fmt.Errorf("registry %s: missing metadata block", path)
	}
	text, ok := metadata["version"].(string)
	if !ok {
		return semver.Version{}, fmt.Errorf("registry %s: missing metadata.version field", path)
	}
	return semver.Parse(text)
}

// WriteRegistryOwnVersion rewrites the marketplace-wide metadata.version.
func WriteRegistryOwnVersion(fsys FileSystem, path string, version semver.Version) error {
	doc, err := loadRegistry(fsys, path)
	if err != nil {
		return err
	}

	metadata, ok := doc.root["metadata"].(map[string]any)
	if !ok {
		metadata = map[string]any{}
		doc.root["metadata"] = metadata
	}
	metadata["version"] = version.String()
	return doc.save(fsys)
}
