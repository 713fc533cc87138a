package config

// Defaults returns the default configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"plugins_dir":        "plugins",
		"registry_path":      ".claude-plugin/marketplace.json",
		"default_branch":     "release/{{DATE}}",
		"notes_file":         "",
		"require_clean_tree": true,
	}
}

// DefaultConfigTemplate returns a commented config template written by
// 'releasekit config init'.
func DefaultConfigTemplate() string {
	return `# releasekit configuration
# Priority: environment (RELEASEKIT_*) > this file > user config > defaults

# Marketplace layout
plugins_dir: plugins                             # One subdirectory per plugin
registry_path: .claude-plugin/marketplace.json   # Shared registry document

# Release settings
default_branch: release/{{DATE}}                 # {{DATE}} expands to YYYY-MM-DD
notes_file: ""                                   # Optional: also write notes to this file
require_clean_tree: true                         # Refuse to release on a dirty tree
`
}
