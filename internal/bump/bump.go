// Package bump maps changelog content to version-bump severities.
//
// The category-to-severity table is a fixed policy, not configuration:
// Removed and Changed entries force a major bump, Added and Deprecated a
// minor bump, Fixed and Security a patch bump. Content under unrecognized
// sub-headers never contributes to a bump.
package bump

import (
	"github.com/raveheart1/releasekit/internal/changelog"
	"github.com/raveheart1/releasekit/internal/semver"
)

// categorySeverity is the static category-to-severity lookup table.
var categorySeverity = map[changelog.Category]semver.Severity{
	changelog.CategoryRemoved:    semver.SeverityMajor,
	changelog.CategoryChanged:    semver.SeverityMajor,
	changelog.CategoryAdded:      semver.SeverityMinor,
	changelog.CategoryDeprecated: semver.SeverityMinor,
	changelog.CategoryFixed:      semver.SeverityPatch,
	changelog.CategorySecurity:   semver.SeverityPatch,
}

// ForCategory returns the severity a single category implies.
// Unknown categories imply SeverityNone.
func ForCategory(c changelog.Category) semver.Severity {
	return categorySeverity[c]
}

// ForDocument returns the severity implied by a document's pending changes:
// the maximum over all recognized categories that have at least one entry.
// A document whose Unreleased section holds only unrecognized content (or
// nothing) yields SeverityNone.
func ForDocument(doc *changelog.Document) semver.Severity {
	result := semver.SeverityNone
	for _, group := range doc.Unreleased().Categories {
		if len(group.Entries) == 0 {
			continue
		}
		result = semver.MaxSeverity(result, ForCategory(group.Category))
	}
	return result
}

// Aggregate folds per-plugin severities into the registry-wide severity for
// one release run. Delegates to semver.AggregateSeverity, so the result is
// order-independent with SeverityNone as identity.
func Aggregate(severities []semver.Severity) semver.Severity {
	return semver.AggregateSeverity(severities)
}
