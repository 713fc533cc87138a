// Package changelog parses and rewrites per-plugin CHANGELOG.md files that
// follow the Keep a Changelog layout (https://keepachangelog.com/en/1.1.0/).
//
// A document has exactly one "## [Unreleased]" section followed by released
// sections of the form "## [X.Y.Z] - YYYY-MM-DD". Released history is
// immutable: the only mutation this package performs is rolling the
// Unreleased content into a new dated section at release time. Parsing is a
// line scanner with section boundaries detected by exact header match, so
// behavior on malformed input is fully specified: a document without the
// Unreleased header cannot be processed at all.
package changelog
