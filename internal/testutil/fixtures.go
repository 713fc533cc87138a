// Package testutil provides test fixtures for releasekit tests: throwaway
// marketplace trees with plugins, manifests, skill descriptors, changelogs,
// and a shared registry document.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// PluginSpec describes one plugin to materialize in a fixture tree.
type PluginSpec struct {
	Name    string
	Version string

	// Changelog is the full CHANGELOG.md content. Empty means the plugin
	// has no changelog file at all.
	Changelog string

	// Skills lists skill names; each gets skills/<name>/SKILL.md with a
	// metadata.version front matter field.
	Skills []string

	// DescriptorVersion overrides the version written into SKILL.md front
	// matter. Defaults to Version.
	DescriptorVersion string

	// RegistryVersion overrides the version recorded in marketplace.json.
	// Defaults to Version. Set Unpublished to omit the record entirely.
	RegistryVersion string
	Unpublished     bool
}

// Marketplace is a temporary on-disk marketplace tree.
type Marketplace struct {
	t *testing.T

	Root         string
	PluginsDir   string
	RegistryPath string

	registryEntries []map[string]any
}

// NewMarketplace creates an empty marketplace tree under t.TempDir with a
// registry document carrying metadata.version 1.0.0.
func NewMarketplace(t *testing.T) *Marketplace {
	t.Helper()

	root := t.TempDir()
	m := &Marketplace{
		t:            t,
		Root:         root,
		PluginsDir:   filepath.Join(root, "plugins"),
		RegistryPath: filepath.Join(root, ".claude-plugin", "marketplace.json"),
	}

	if err := os.MkdirAll(m.PluginsDir, 0o755); err != nil {
		t.Fatalf("creating plugins dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.RegistryPath), 0o755); err != nil {
		t.Fatalf("creating registry dir: %v", err)
	}

	m.writeRegistry()
	return m
}

// AddPlugin materializes the plugin's manifest, changelog, and skill
// descriptors, and (unless Unpublished) appends its registry record.
func (m *Marketplace) AddPlugin(spec PluginSpec) string {
	m.t.Helper()

	dir := filepath.Join(m.PluginsDir, spec.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.t.Fatalf("creating plugin dir: %v", err)
	}

	manifest := map[string]any{
		"name":        spec.Name,
		"version":     spec.Version,
		"description": fmt.Sprintf("Test plugin %s", spec.Name),
	}
	m.writeJSON(filepath.Join(dir, "plugin.json"), manifest)

	if spec.Changelog != "" {
		m.writeFile(filepath.Join(dir, "CHANGELOG.md"), spec.Changelog)
	}

	descriptorVersion := spec.DescriptorVersion
	if descriptorVersion == "" {
		descriptorVersion = spec.Version
	}
	for _, skill := range spec.Skills {
		skillDir := filepath.Join(dir, "skills", skill)
		if err := os.MkdirAll(skillDir, 0o755); err != nil {
			m.t.Fatalf("creating skill dir: %v", err)
		}
		m.writeFile(filepath.Join(skillDir, "SKILL.md"), skillDescriptor(skill, descriptorVersion))
	}

	if !spec.Unpublished {
		registryVersion := spec.RegistryVersion
		if registryVersion == "" {
			registryVersion = spec.Version
		}
		m.registryEntries = append(m.registryEntries, map[string]any{
			"name":    spec.Name,
			"source":  "./plugins/" + spec.Name,
			"version": registryVersion,
		})
		m.writeRegistry()
	}

	return dir
}

// ReadFile returns the content of a file under the fixture root.
func (m *Marketplace) ReadFile(path string) string {
	m.t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		m.t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func (m *Marketplace) writeRegistry() {
	m.t.Helper()

	entries := m.registryEntries
	if entries == nil {
		entries = []map[string]any{}
	}
	doc := map[string]any{
		"name":     "test-marketplace",
		"owner":    map[string]any{"name": "Fixture Owner"},
		"metadata": map[string]any{"version": "1.0.0"},
		"plugins":  entries,
	}
	m.writeJSON(m.RegistryPath, doc)
}

func (m *Marketplace) writeJSON(path string, doc any) {
	m.t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		m.t.Fatalf("encoding %s: %v", path, err)
	}
	m.writeFile(path, string(data)+"\n")
}

func (m *Marketplace) writeFile(path, content string) {
	m.t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		m.t.Fatalf("writing %s: %v", path, err)
	}
}

// skillDescriptor renders a SKILL.md with front matter in the shape the
// synchronizer expects: a version field nested under metadata.
func skillDescriptor(name, version string) string {
	return fmt.Sprintf(`---
name: %s
description: Test skill for %s
metadata:
  version: %s
  category: testing
---

# %s

Instructions for the %s skill.
`, name, name, version, name, name)
}
