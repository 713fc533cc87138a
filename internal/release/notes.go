package release

import (
	"fmt"
	"strings"
)

// AggregateNotes concatenates every released plugin's rolled changelog
// section into one release-notes document, grouped by plugin name in the
// order the releases were processed (name-sorted). The output is a pure
// function of its inputs, so two runs over identical state produce
// byte-identical notes.
func AggregateNotes(releases []PluginRelease, date string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Release Notes - %s\n", date)

	for _, r := range releases {
		fmt.Fprintf(&sb, "\n## %s %s\n", r.Name, r.NewVersion)
		if len(r.Notes) == 0 {
			continue
		}
		sb.WriteString("\n")
		for _, line := range r.Notes {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
