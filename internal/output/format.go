// Package output provides terminal output formatting utilities for the
// releasekit CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintPhaseHeader prints a colored phase header (e.g. "[2/6] Evaluate...").
// Uses cyan for the phase indicator and white for the phase name.
func PrintPhaseHeader(out io.Writer, phaseNum, totalPhases int, phaseName string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan(fmt.Sprintf("[%d/%d]", phaseNum, totalPhases)), white(phaseName+"..."))
}

// PrintSuccess prints a colored success line.
// Uses green checkmark and cyan for the subject.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintWarning prints a colored warning line to the writer.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), message)
}

// PrintSkipped prints a dim line for a plugin left out of the run.
func PrintSkipped(out io.Writer, name, reason string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "  %s\n", dim(fmt.Sprintf("- %s skipped (%s)", name, reason)))
}

// PrintBump prints one plugin's version transition with severity styling:
// red for major, yellow for minor, green for patch.
func PrintBump(out io.Writer, name, from, to, severity string) {
	var sevColor *color.Color
	switch severity {
	case "major":
		sevColor = color.New(color.FgRed, color.Bold)
	case "minor":
		sevColor = color.New(color.FgYellow)
	default:
		sevColor = color.New(color.FgGreen)
	}
	arrow := color.New(color.Faint).Sprint("->")
	fmt.Fprintf(out, "  %s %s %s %s (%s)\n", name, from, arrow, to, sevColor.Sprint(severity))
}

// PrintRule prints a dim horizontal separator sized to the terminal.
func PrintRule(out io.Writer) {
	width := GetTerminalWidth()
	if width > 100 {
		width = 100
	}
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintln(out, dim(strings.Repeat("─", width)))
}
