package bump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/releasekit/internal/changelog"
	"github.com/raveheart1/releasekit/internal/semver"
)

func TestForCategory(t *testing.T) {
	t.Parallel()

	tests := map[changelog.Category]semver.Severity{
		changelog.CategoryRemoved:    semver.SeverityMajor,
		changelog.CategoryChanged:    semver.SeverityMajor,
		changelog.CategoryAdded:      semver.SeverityMinor,
		changelog.CategoryDeprecated: semver.SeverityMinor,
		changelog.CategoryFixed:      semver.SeverityPatch,
		changelog.CategorySecurity:   semver.SeverityPatch,
	}

	for category, expected := range tests {
		assert.Equal(t, expected, ForCategory(category), "category %s", category)
	}

	assert.Equal(t, semver.SeverityNone, ForCategory(changelog.Category("Internal")))
}

func TestForDocument(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text     string
		expected semver.Severity
	}{
		"only fixed entries": {
			text:     "## [Unreleased]\n### Fixed\n- y\n",
			expected: semver.SeverityPatch,
		},
		"only removed entries": {
			text:     "## [Unreleased]\n### Removed\n- z\n",
			expected: semver.SeverityMajor,
		},
		"only changed entries": {
			text:     "## [Unreleased]\n### Changed\n- w\n",
			expected: semver.SeverityMajor,
		},
		"added dominates fixed": {
			text:     "## [Unreleased]\n### Added\n- x\n### Fixed\n- y\n",
			expected: semver.SeverityMinor,
		},
		"empty unreleased": {
			text:     "## [Unreleased]\n",
			expected: semver.SeverityNone,
		},
		"only unrecognized content": {
			text:     "## [Unreleased]\n### Internal\n- refactor\n",
			expected: semver.SeverityNone,
		},
		"security alone is a patch": {
			text:     "## [Unreleased]\n### Security\n- CVE fix\n",
			expected: semver.SeverityPatch,
		},
		"category header with no entries is ignored": {
			text:     "## [Unreleased]\n### Removed\n### Fixed\n- y\n",
			expected: semver.SeverityPatch,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			doc, err := changelog.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ForDocument(doc))
		})
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, semver.SeverityNone, Aggregate(nil))
	assert.Equal(t, semver.SeverityMajor, Aggregate([]semver.Severity{
		semver.SeverityPatch, semver.SeverityMajor, semver.SeverityMinor,
	}))
}
