// Package release drives one release run over a plugin marketplace:
// discover pending plugins, decide version bumps from their changelogs,
// synchronize every persisted version location, roll changelog sections,
// aggregate release notes, and hand the result off to the VCS collaborator
// as plain data.
//
// The pipeline is sequential and deterministic: plugins are processed in
// name order so repeated runs over identical input produce byte-identical
// output. A dry run executes the identical code path with all writes routed
// through an in-memory overlay, so dry-run and real-run can never disagree.
package release

import (
	"fmt"
	"time"

	"github.com/raveheart1/releasekit/internal/bump"
	"github.com/raveheart1/releasekit/internal/changelog"
	"github.com/raveheart1/releasekit/internal/marketplace"
	"github.com/raveheart1/releasekit/internal/semver"
)

// PluginRelease is one plugin's outcome in a release run: the tuple handed
// to the VCS collaborator plus the rolled changelog content for the notes.
type PluginRelease struct {
	Name       string
	OldVersion semver.Version
	NewVersion semver.Version
	Severity   semver.Severity

	// Notes holds the verbatim lines of the just-rolled changelog section.
	Notes []string
}

// Handoff is the plain-data result passed to the external VCS/PR
// collaborator. The core does not call into any VCS API itself.
type Handoff struct {
	Plugins         []PluginRelease
	Notes           string
	RegistryVersion semver.Version
	Branch          string
}

// Result is the outcome of a release run.
type Result struct {
	// NothingToRelease is set when zero plugins were eligible. This is a
	// successful no-op, not an error.
	NothingToRelease bool

	// Skipped lists plugins left out of the run: no changelog file, or no
	// pending recognized changes.
	Skipped []string

	// Handoff is populated when at least one plugin released.
	Handoff *Handoff

	// DryRun records whether writes were projected rather than persisted.
	DryRun bool
}

// EvaluateError aborts a run before any mutation occurs: a structurally
// malformed changelog makes the whole run unprocessable. Re-running after
// the fix is always safe.
type EvaluateError struct {
	Plugin string
	Err    error
}

func (e *EvaluateError) Error() string {
	return fmt.Sprintf("evaluating plugin %s: %v", e.Plugin, e.Err)
}

func (e *EvaluateError) Unwrap() error { return e.Err }

// SyncAbortedError aborts a run during SYNCHRONIZE. Plugins listed in
// Synchronized were fully updated before the failure and keep their new
// values; there is no global rollback. The caller decides whether to finish
// manually or revert via version control.
type SyncAbortedError struct {
	Plugin       string
	Synchronized []string
	Err          error
}

func (e *SyncAbortedError) Error() string {
	if len(e.Synchronized) == 0 {
		return fmt.Sprintf("synchronizing plugin %s: %v (no plugins were updated)", e.Plugin, e.Err)
	}
	return fmt.Sprintf("synchronizing plugin %s: %v (already synchronized: %v)", e.Plugin, e.Err, e.Synchronized)
}

func (e *SyncAbortedError) Unwrap() error { return e.Err }

// Options configures an Orchestrator.
type Options struct {
	PluginsDir   string
	RegistryPath string

	// Branch is carried through to the Handoff for the VCS collaborator.
	Branch string

	// DryRun routes every write through an in-memory overlay.
	DryRun bool

	// Reporter receives progress events. Nil means silent.
	Reporter Reporter

	// Now supplies the release date. Nil means time.Now.
	Now func() time.Time
}

// Orchestrator runs the release state machine.
type Orchestrator struct {
	opts Options
	fsys marketplace.FileSystem
	sync *marketplace.Synchronizer
	rep  Reporter
	now  func() time.Time
}

// New builds an Orchestrator. In dry-run mode the synchronizer, changelog
// rolls, and registry bump all share one overlay filesystem.
func New(opts Options) *Orchestrator {
	var fsys marketplace.FileSystem = marketplace.OSFileSystem{}
	if opts.DryRun {
		fsys = marketplace.NewOverlay(fsys)
	}

	rep := opts.Reporter
	if rep == nil {
		rep = NopReporter{}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Orchestrator{
		opts: opts,
		fsys: fsys,
		sync: marketplace.NewSynchronizer(opts.RegistryPath,
			marketplace.WithFileSystem(fsys),
			marketplace.WithWarnWriter(reporterWarnWriter{rep})),
		rep: rep,
		now: now,
	}
}

// candidate is a plugin that survived DISCOVER with a loaded changelog.
type candidate struct {
	plugin   *marketplace.Plugin
	doc      *changelog.Document
	severity semver.Severity
}

// Run executes one full release cycle.
func (o *Orchestrator) Run() (*Result, error) {
	result := &Result{DryRun: o.opts.DryRun}

	candidates, err := o.discover(result)
	if err != nil {
		return nil, err
	}

	eligible, err := o.evaluate(candidates, result)
	if err != nil {
		return nil, err
	}

	if len(eligible) == 0 {
		result.NothingToRelease = true
		o.rep.NothingToRelease()
		return result, nil
	}

	releases, err := o.synchronize(eligible)
	if err != nil {
		return nil, err
	}

	if err := o.rollChangelogs(eligible, releases); err != nil {
		return nil, err
	}

	o.rep.PhaseStart(PhaseAggregateNotes)
	date := o.now().Format("2006-01-02")
	notes := AggregateNotes(releases, date)

	o.rep.PhaseStart(PhaseHandoff)
	registryVersion, err := o.bumpRegistryVersion(eligible)
	if err != nil {
		return nil, err
	}

	result.Handoff = &Handoff{
		Plugins:         releases,
		Notes:           notes,
		RegistryVersion: registryVersion,
		Branch:          o.opts.Branch,
	}
	o.rep.HandoffReady(result.Handoff)

	return result, nil
}

// discover enumerates plugins and loads changelogs. Plugins with no
// changelog file at all are skipped with a log line, never an error.
func (o *Orchestrator) discover(result *Result) ([]*candidate, error) {
	o.rep.PhaseStart(PhaseDiscover)

	plugins, err := marketplace.Discover(o.fsys, o.opts.PluginsDir)
	if err != nil {
		return nil, err
	}

	var candidates []*candidate
	for _, plugin := range plugins {
		if !plugin.HasChangelog() {
			result.Skipped = append(result.Skipped, plugin.Name)
			o.rep.PluginSkipped(plugin.Name, "no changelog file")
			continue
		}
		candidates = append(candidates, &candidate{plugin: plugin})
	}
	return candidates, nil
}

// evaluate parses each candidate's changelog and computes its severity.
// A malformed changelog is a hard error that aborts the whole run before
// any mutation; plugins with severity none are excluded but fine.
func (o *Orchestrator) evaluate(candidates []*candidate, result *Result) ([]*candidate, error) {
	o.rep.PhaseStart(PhaseEvaluate)

	var eligible []*candidate
	for _, c := range candidates {
		doc, err := changelog.Load(c.plugin.ChangelogPath)
		if err != nil {
			return nil, &EvaluateError{Plugin: c.plugin.Name, Err: err}
		}
		c.doc = doc
		c.severity = bump.ForDocument(doc)

		if c.severity == semver.SeverityNone {
			result.Skipped = append(result.Skipped, c.plugin.Name)
			o.rep.PluginSkipped(c.plugin.Name, "no pending changes")
			continue
		}
		eligible = append(eligible, c)
	}
	return eligible, nil
}

// synchronize applies the computed bump to every eligible plugin in name
// order. The first failure aborts the run; earlier plugins keep their new
// versions and are reported in the error.
func (o *Orchestrator) synchronize(eligible []*candidate) ([]PluginRelease, error) {
	o.rep.PhaseStart(PhaseSynchronize)

	var releases []PluginRelease
	var synchronized []string

	for _, c := range eligible {
		current, err := o.sync.CurrentVersion(c.plugin)
		if err != nil {
			return nil, &SyncAbortedError{Plugin: c.plugin.Name, Synchronized: synchronized, Err: err}
		}

		next := semver.Apply(current, c.severity)
		if err := o.sync.Update(c.plugin, next); err != nil {
			return nil, &SyncAbortedError{Plugin: c.plugin.Name, Synchronized: synchronized, Err: err}
		}

		synchronized = append(synchronized, c.plugin.Name)
		o.rep.PluginSynchronized(c.plugin.Name, current, next, c.severity)

		releases = append(releases, PluginRelease{
			Name:       c.plugin.Name,
			OldVersion: current,
			NewVersion: next,
			Severity:   c.severity,
		})
	}
	return releases, nil
}

// rollChangelogs runs only after every synchronization succeeded. Each
// eligible plugin's Unreleased content moves into a dated section, and the
// rolled section's lines are captured for the release notes.
func (o *Orchestrator) rollChangelogs(eligible []*candidate, releases []PluginRelease) error {
	o.rep.PhaseStart(PhaseRollChangelogs)

	date := o.now().Format("2006-01-02")
	for i, c := range eligible {
		rolled, err := c.doc.Roll(releases[i].NewVersion, date)
		if err != nil {
			return fmt.Errorf("rolling changelog for plugin %s: %w", c.plugin.Name, err)
		}

		if err := o.fsys.WriteFile(c.plugin.ChangelogPath, []byte(rolled.Content()), 0o644); err != nil {
			return fmt.Errorf("writing changelog for plugin %s: %w", c.plugin.Name, err)
		}

		releases[i].Notes = rolled.Section(releases[i].NewVersion.String())
	}
	return nil
}

// bumpRegistryVersion applies the aggregate severity of the run to the
// marketplace's own version.
func (o *Orchestrator) bumpRegistryVersion(eligible []*candidate) (semver.Version, error) {
	severities := make([]semver.Severity, 0, len(eligible))
	for _, c := range eligible {
		severities = append(severities, c.severity)
	}
	aggregate := bump.Aggregate(severities)

	current, err := marketplace.ReadRegistryOwnVersion(o.fsys, o.opts.RegistryPath)
	if err != nil {
		return semver.Version{}, fmt.Errorf("reading marketplace version: %w", err)
	}

	next := semver.Apply(current, aggregate)
	if err := marketplace.WriteRegistryOwnVersion(o.fsys, o.opts.RegistryPath, next); err != nil {
		return semver.Version{}, fmt.Errorf("writing marketplace version: %w", err)
	}
	return next, nil
}
