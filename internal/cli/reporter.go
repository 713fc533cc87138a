package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"

	"github.com/raveheart1/releasekit/internal/output"
	"github.com/raveheart1/releasekit/internal/release"
	"github.com/raveheart1/releasekit/internal/semver"
)

// totalPhases is the number of steps shown in phase headers.
const totalPhases = 6

// consoleReporter renders release progress to the terminal. On a TTY it
// shows a spinner while the synchronize phase is writing files.
type consoleReporter struct {
	out  io.Writer
	spin *spinner.Spinner
}

func newConsoleReporter(out io.Writer) *consoleReporter {
	r := &consoleReporter{out: out}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond,
			spinner.WithWriter(os.Stderr))
	}
	return r
}

func (r *consoleReporter) PhaseStart(phase release.Phase) {
	r.pause()
	if r.spin != nil {
		r.spin.Suffix = ""
	}
	title := strings.ToUpper(phase.String()[:1]) + phase.String()[1:]
	output.PrintPhaseHeader(r.out, int(phase)+1, totalPhases, title)

	if phase == release.PhaseSynchronize && r.spin != nil {
		r.spin.Suffix = " writing version locations"
		r.spin.Start()
	}
}

func (r *consoleReporter) PluginSkipped(name, reason string) {
	r.pause()
	output.PrintSkipped(r.out, name, reason)
	r.resume()
}

func (r *consoleReporter) PluginSynchronized(name string, from, to semver.Version, severity semver.Severity) {
	r.pause()
	output.PrintBump(r.out, name, from.String(), to.String(), severity.String())
	r.resume()
}

func (r *consoleReporter) Warn(message string) {
	r.pause()
	output.PrintWarning(r.out, message)
	r.resume()
}

func (r *consoleReporter) NothingToRelease() {
	r.pause()
	fmt.Fprintln(r.out, "Nothing to release: no plugin has pending changes.")
}

func (r *consoleReporter) HandoffReady(h *release.Handoff) {
	r.pause()
	output.PrintSuccess(r.out, fmt.Sprintf("%d plugin(s) released, marketplace at %s",
		len(h.Plugins), h.RegistryVersion))
}

// pause stops the spinner so a line can be printed without tearing.
func (r *consoleReporter) pause() {
	if r.spin != nil && r.spin.Active() {
		r.spin.Stop()
	}
}

// resume restarts the spinner if a synchronize pass set a suffix.
func (r *consoleReporter) resume() {
	if r.spin != nil && r.spin.Suffix != "" && !r.spin.Active() {
		r.spin.Start()
	}
}
