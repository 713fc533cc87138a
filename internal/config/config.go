// Package config provides hierarchical configuration management for
// releasekit using koanf. Configuration is loaded with priority:
// environment variables > project config (.releasekit/config.yml) > user
// config (XDG config dir) > defaults. Project configs may also be written
// in JSON.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. RELEASEKIT_PLUGINS_DIR.
const EnvPrefix = "RELEASEKIT_"

// Configuration holds the releasekit settings.
type Configuration struct {
	// PluginsDir is the directory containing one subdirectory per plugin.
	PluginsDir string `koanf:"plugins_dir"`

	// RegistryPath is the shared marketplace registry document.
	RegistryPath string `koanf:"registry_path"`

	// DefaultBranch is the branch name handed to the VCS collaborator when
	// --branch is not given. A {{DATE}} placeholder expands to YYYY-MM-DD.
	DefaultBranch string `koanf:"default_branch"`

	// NotesFile, when set, is where the release command writes the
	// aggregated release notes in addition to printing them.
	NotesFile string `koanf:"notes_file"`

	// RequireCleanTree gates release runs on a clean git working tree.
	RequireCleanTree bool `koanf:"require_clean_tree"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path
	// (default: .releasekit/config.yml).
	ProjectConfigPath string
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	userPath, err := UserConfigPath()
	if err == nil {
		if err := loadConfigFile(k, userPath, "user"); err != nil {
			return nil, err
		}
	}

	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = ProjectConfigPath()
	}
	if err := loadConfigFile(k, projectPath, "project"); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFile loads one config file if it exists. YAML is the native
// format; a .json extension selects the JSON parser instead.
func loadConfigFile(k *koanf.Koanf, path, configType string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	parser := pickParser(path)
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("loading %s config %s: %w", configType, path, err)
	}
	return nil
}

func pickParser(path string) koanf.Parser {
	if strings.HasSuffix(path, ".json") {
		return json.Parser()
	}
	return yaml.Parser()
}

// envTransform maps RELEASEKIT_PLUGINS_DIR to plugins_dir and so on.
func envTransform(key string) string {
	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
}

// Validate checks that required settings are present and well-formed.
func (c *Configuration) Validate() error {
	if c.PluginsDir == "" {
		return fmt.Errorf("config: plugins_dir must not be empty")
	}
	if c.RegistryPath == "" {
		return fmt.Errorf("config: registry_path must not be empty")
	}
	return nil
}
