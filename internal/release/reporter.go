package release

import (
	"github.com/raveheart1/releasekit/internal/semver"
)

// Phase names the steps of the release state machine, in execution order.
type Phase int

const (
	PhaseDiscover Phase = iota
	PhaseEvaluate
	PhaseSynchronize
	PhaseRollChangelogs
	PhaseAggregateNotes
	PhaseHandoff
)

func (p Phase) String() string {
	switch p {
	case PhaseDiscover:
		return "discover"
	case PhaseEvaluate:
		return "evaluate"
	case PhaseSynchronize:
		return "synchronize"
	case PhaseRollChangelogs:
		return "roll changelogs"
	case PhaseAggregateNotes:
		return "aggregate notes"
	case PhaseHandoff:
		return "handoff"
	default:
		return "unknown"
	}
}

// Reporter receives progress events from a release run. Implementations
// must not influence control flow; the orchestrator's behavior is the same
// under any reporter.
type Reporter interface {
	PhaseStart(phase Phase)
	PluginSkipped(name, reason string)
	PluginSynchronized(name string, from, to semver.Version, severity semver.Severity)
	Warn(message string)
	NothingToRelease()
	HandoffReady(h *Handoff)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) PhaseStart(Phase)                                                 {}
func (NopReporter) PluginSkipped(string, string)                                     {}
func (NopReporter) PluginSynchronized(string, semver.Version, semver.Version, semver.Severity) {}
func (NopReporter) Warn(string)                                                      {}
func (NopReporter) NothingToRelease()                                                {}
func (NopReporter) HandoffReady(*Handoff)                                            {}

// reporterWarnWriter adapts a Reporter to the io.Writer the synchronizer
// emits warnings on.
type reporterWarnWriter struct {
	rep Reporter
}

func (w reporterWarnWriter) Write(p []byte) (int, error) {
	w.rep.Warn(string(trimTrailingNewline(p)))
	return len(p), nil
}

func trimTrailingNewline(p []byte) []byte {
	for len(p) > 0 && (p[len(p)-1] == '\n' || p[len(p)-1] == '\r') {
		p = p[:len(p)-1]
	}
	return p
}
