// Package semver provides the semantic version value type used for plugin
// and marketplace versioning. It supports parsing, validation, comparison,
// and severity-driven increments. Versions are plain X.Y.Z triples; a leading
// "v" prefix is tolerated on input and pre-release suffixes are truncated,
// but neither survives round-tripping through String.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed semantic version triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// InvalidFormatError reports version text that does not parse as X.Y.Z.
type InvalidFormatError struct {
	Text string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid semantic version %q (expected: X.Y.Z)", e.Text)
}

// Parse converts version text into a Version. A leading "v" or "V" is
// stripped, and anything after the first "-" or "+" (pre-release or build
// metadata) is discarded before parsing. Any other deviation from three
// dot-separated non-negative integers returns an *InvalidFormatError.
func Parse(text string) (Version, error) {
	normalized := normalize(text)

	parts := strings.Split(normalized, ".")
	if len(parts) != 3 {
		return Version{}, &InvalidFormatError{Text: text}
	}

	var components [3]int
	for i, part := range parts {
		n, err := parseComponent(part)
		if err != nil {
			return Version{}, &InvalidFormatError{Text: text}
		}
		components[i] = n
	}

	return Version{Major: components[0], Minor: components[1], Patch: components[2]}, nil
}

// MustParse parses version text and panics on failure.
// Intended for constants and test fixtures only.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// IsValid reports whether text parses as a semantic version.
func IsValid(text string) bool {
	_, err := Parse(text)
	return err == nil
}

// parseComponent parses a single version component. Leading "+" signs,
// whitespace, and empty strings are rejected even though strconv would
// accept some of them.
func parseComponent(part string) (int, error) {
	if part == "" || strings.TrimFunc(part, isDigit) != "" {
		return 0, fmt.Errorf("non-numeric component %q", part)
	}
	return strconv.Atoi(part)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// normalize strips the tolerated "v" prefix and truncates pre-release or
// build-metadata suffixes.
func normalize(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "v")
	s = strings.TrimPrefix(s, "V")
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		s = s[:i]
	}
	return s
}

// String renders the canonical X.Y.Z form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 ordering a relative to b lexicographically
// over (major, minor, patch).
func Compare(a, b Version) int {
	if c := compareInt(a.Major, b.Major); c != 0 {
		return c
	}
	if c := compareInt(a.Minor, b.Minor); c != 0 {
		return c
	}
	return compareInt(a.Patch, b.Patch)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// BumpMajor returns the next major version with minor and patch reset.
func (v Version) BumpMajor() Version {
	return Version{Major: v.Major + 1}
}

// BumpMinor returns the next minor version with patch reset.
func (v Version) BumpMinor() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1}
}

// BumpPatch returns the next patch version.
func (v Version) BumpPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// Apply increments v according to the given severity.
// SeverityNone returns v unchanged.
func Apply(v Version, s Severity) Version {
	switch s {
	case SeverityMajor:
		return v.BumpMajor()
	case SeverityMinor:
		return v.BumpMinor()
	case SeverityPatch:
		return v.BumpPatch()
	default:
		return v
	}
}
