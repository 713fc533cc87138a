package marketplace

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/raveheart1/releasekit/internal/semver"
)

// Location identifies one of the places a plugin's version is persisted.
type Location int

const (
	LocationManifest Location = iota
	LocationDescriptor
	LocationRegistry
)

func (l Location) String() string {
	switch l {
	case LocationManifest:
		return "manifest"
	case LocationDescriptor:
		return "descriptor"
	case LocationRegistry:
		return "registry"
	default:
		return "unknown"
	}
}

// LocationValue is one observed version string at one persisted location.
type LocationValue struct {
	Location Location
	Path     string
	Value    string
}

// ConsistencyError reports a post-write verification failure: the persisted
// version locations for a plugin do not hold byte-identical version
// strings. No rollback is attempted; there is no transaction log spanning
// the three file formats, so the failure is surfaced loudly with every
// observed value instead of a partial automatic recovery that could itself
// corrupt state.
type ConsistencyError struct {
	Plugin   string
	Observed []LocationValue
}

func (e *ConsistencyError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "version locations for plugin %q disagree after write:", e.Plugin)
	for _, lv := range e.Observed {
		fmt.Fprintf(&sb, " %s(%s)=%q", lv.Location, lv.Path, lv.Value)
	}
	return sb.String()
}

// Synchronizer writes a plugin's new version to every persisted location
// and verifies afterwards that they agree. Verification always re-reads
// post-write state; it never trusts pre-write assumptions.
type Synchronizer struct {
	fsys         FileSystem
	registryPath string
	warnWriter   io.Writer
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithFileSystem substitutes the filesystem used for reads and writes.
// Dry runs pass an OverlayFileSystem so the same code path runs without
// touching disk.
func WithFileSystem(fsys FileSystem) Option {
	return func(s *Synchronizer) { s.fsys = fsys }
}

// WithWarnWriter directs warnings (e.g. unpublished plugins missing a
// registry entry) to w instead of discarding them.
func WithWarnWriter(w io.Writer) Option {
	return func(s *Synchronizer) { s.warnWriter = w }
}

// NewSynchronizer creates a Synchronizer against the shared registry
// document at registryPath.
func NewSynchronizer(registryPath string, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		fsys:         OSFileSystem{},
		registryPath: registryPath,
		warnWriter:   io.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FileSystem exposes the synchronizer's filesystem so callers sharing a
// dry-run overlay can route their own reads and writes through it.
func (s *Synchronizer) FileSystem() FileSystem {
	return s.fsys
}

// CurrentVersion reads the plugin's version from the manifest location
// only. The manifest is the canonical read path; the other locations are
// write targets kept in agreement by Update.
func (s *Synchronizer) CurrentVersion(plugin *Plugin) (semver.Version, error) {
	text, err := readManifestVersion(s.fsys, plugin.ManifestPath)
	if err != nil {
		return semver.Version{}, err
	}
	return semver.Parse(text)
}

// Update writes newVersion to the plugin's manifest, every skill
// descriptor, and its registry record, then re-reads all of them and
// compares the observed strings pairwise. Any disagreement returns a
// *ConsistencyError naming the divergent locations and values.
//
// A plugin with no registry record is skipped at that location with a
// warning: unpublished plugins may have no registry-facing identity yet.
func (s *Synchronizer) Update(plugin *Plugin, newVersion semver.Version) error {
	if err := writeManifestVersion(s.fsys, plugin.ManifestPath, newVersion); err != nil {
		return fmt.Errorf("plugin %s: %w", plugin.Name, err)
	}

	for _, path := range plugin.DescriptorPaths {
		if err := writeDescriptorVersion(s.fsys, path, newVersion); err != nil {
			return fmt.Errorf("plugin %s: %w", plugin.Name, err)
		}
	}

	registrySkipped := false
	if err := writeRegistryVersion(s.fsys, s.registryPath, plugin.Name, newVersion); err != nil {
		var notFound *RegistryEntryNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("plugin %s: %w", plugin.Name, err)
		}
		registrySkipped = true
		fmt.Fprintf(s.warnWriter, "warning: plugin %s has no registry entry; skipping registry update (unpublished plugin)\n", plugin.Name)
	}

	return s.verify(plugin, registrySkipped)
}

// verify re-reads every location written by Update and requires
// byte-identical version strings across all of them.
func (s *Synchronizer) verify(plugin *Plugin, registrySkipped bool) error {
	observed, err := s.ReadAll(plugin, registrySkipped)
	if err != nil {
		return fmt.Errorf("plugin %s: verifying locations: %w", plugin.Name, err)
	}

	for i := 1; i < len(observed); i++ {
		if observed[i].Value != observed[0].Value {
			return &ConsistencyError{Plugin: plugin.Name, Observed: observed}
		}
	}
	return nil
}

// ReadAll returns the version string currently persisted at each of the
// plugin's locations. When skipRegistry is set (or the plugin has no
// registry record and skipRegistry reflects that), the registry location
// is omitted.
func (s *Synchronizer) ReadAll(plugin *Plugin, skipRegistry bool) ([]LocationValue, error) {
	manifestValue, err := readManifestVersion(s.fsys, plugin.ManifestPath)
	if err != nil {
		return nil, err
	}

	observed := []LocationValue{
		{Location: LocationManifest, Path: plugin.ManifestPath, Value: manifestValue},
	}

	for _, path := range plugin.DescriptorPaths {
		value, err := readDescriptorVersion(s.fsys, path)
		if err != nil {
			return nil, err
		}
		observed = append(observed, LocationValue{Location: LocationDescriptor, Path: path, Value: value})
	}

	if !skipRegistry {
		value, err := readRegistryVersion(s.fsys, s.registryPath, plugin.Name)
		if err != nil {
			return nil, err
		}
		observed = append(observed, LocationValue{Location: LocationRegistry, Path: s.registryPath, Value: value})
	}

	return observed, nil
}
