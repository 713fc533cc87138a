package changelog

import (
	"fmt"
	"os"
	"strings"
)

// UnreleasedHeader is the literal section header every processable
// changelog must contain.
const UnreleasedHeader = "## [Unreleased]"

// MalformedError reports a changelog that cannot be processed at all,
// independent of whether it would have produced a version bump.
type MalformedError struct {
	Path    string
	Message string
}

func (e *MalformedError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed changelog %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("malformed changelog: %s", e.Message)
}

// Document is one plugin's parsed changelog. The original text is retained
// line-for-line so released history survives a roll byte-identically.
type Document struct {
	// Path is the source file, empty for documents parsed from memory.
	Path string

	lines []string

	// Line index of the Unreleased header, and the index one past the last
	// line belonging to the Unreleased section (exclusive bound).
	unreleasedStart int
	unreleasedEnd   int

	unreleased *Unreleased
}

// Load reads and parses a changelog file from the given path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading changelog file: %w", err)
	}

	doc, err := Parse(string(data))
	if err != nil {
		if malformed, ok := err.(*MalformedError); ok {
			malformed.Path = path
		}
		return nil, err
	}

	doc.Path = path
	return doc, nil
}

// Parse scans changelog text into a Document. The scan is a small state
// machine: it locates the literal Unreleased header, then collects lines
// until the next top-level "## " header, grouping entry lines under
// whichever category sub-header most recently preceded them.
func Parse(text string) (*Document, error) {
	lines := splitLines(text)

	start := findUnreleasedHeader(lines)
	if start < 0 {
		return nil, &MalformedError{Message: fmt.Sprintf("missing %q section header", UnreleasedHeader)}
	}

	end := findSectionEnd(lines, start)

	doc := &Document{
		lines:           lines,
		unreleasedStart: start,
		unreleasedEnd:   end,
	}
	doc.unreleased = parseUnreleased(lines[start+1 : end])

	return doc, nil
}

// Unreleased returns the parsed Unreleased section.
func (d *Document) Unreleased() *Unreleased {
	return d.unreleased
}

// HasPendingChanges reports whether the Unreleased section contains at
// least one entry under a recognized category. Unrecognized content alone
// never counts as pending.
func (d *Document) HasPendingChanges() bool {
	return !d.unreleased.IsEmpty()
}

// Content renders the document back to text. For a freshly parsed document
// this is byte-identical to the input.
func (d *Document) Content() string {
	return strings.Join(d.lines, "\n")
}

// Section returns the verbatim lines of the "## [version]" section body
// (header excluded), or nil if no such released section exists.
func (d *Document) Section(version string) []string {
	prefix := fmt.Sprintf("## [%s]", version)
	for i, line := range d.lines {
		if strings.HasPrefix(strings.TrimRight(line, " \t"), prefix) {
			body := d.lines[i+1 : findSectionEnd(d.lines, i)]
			return trimBlankEdges(body)
		}
	}
	return nil
}

// splitLines splits on "\n" after normalizing CRLF endings.
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// findUnreleasedHeader returns the line index of the Unreleased header,
// or -1. Trailing whitespace on the header line is tolerated; anything
// else must match exactly.
func findUnreleasedHeader(lines []string) int {
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == UnreleasedHeader {
			return i
		}
	}
	return -1
}

// findSectionEnd returns the index of the next top-level section header
// after start, or len(lines).
func findSectionEnd(lines []string, start int) int {
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "## ") {
			return i
		}
	}
	return len(lines)
}

// parseUnreleased groups the section body lines by category sub-header.
// Duplicate sub-headers for one category merge additively.
func parseUnreleased(body []string) *Unreleased {
	u := &Unreleased{}

	groupIndex := map[Category]int{}
	current := Category("")
	recognized := false

	for _, raw := range body {
		line := strings.TrimRight(raw, " \t")
		if line == "" {
			continue
		}

		if name, ok := strings.CutPrefix(line, "### "); ok {
			name = strings.TrimSpace(name)
			recognized = IsValidCategory(name)
			if recognized {
				current = Category(name)
				if _, seen := groupIndex[current]; !seen {
					groupIndex[current] = len(u.Categories)
					u.Categories = append(u.Categories, CategoryGroup{Category: current})
				}
			}
			continue
		}

		if recognized {
			idx := groupIndex[current]
			u.Categories[idx].Entries = append(u.Categories[idx].Entries, line)
		} else {
			u.HasUnknownContent = true
		}
	}

	return u
}

// trimBlankEdges drops leading and trailing blank lines.
func trimBlankEdges(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
