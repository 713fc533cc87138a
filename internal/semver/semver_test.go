package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text     string
		expected Version
	}{
		"plain triple":            {text: "1.2.3", expected: Version{1, 2, 3}},
		"zeros":                   {text: "0.0.0", expected: Version{0, 0, 0}},
		"v prefix stripped":       {text: "v1.2.3", expected: Version{1, 2, 3}},
		"uppercase V prefix":      {text: "V2.0.1", expected: Version{2, 0, 1}},
		"pre-release truncated":   {text: "1.2.3-beta.1", expected: Version{1, 2, 3}},
		"build metadata dropped":  {text: "1.2.3+20260801", expected: Version{1, 2, 3}},
		"prefix and suffix":       {text: "v4.5.6-rc.2", expected: Version{4, 5, 6}},
		"surrounding whitespace":  {text: "  1.0.0 ", expected: Version{1, 0, 0}},
		"multi-digit components":  {text: "10.42.117", expected: Version{10, 42, 117}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []string{
		"",
		"1",
		"1.2",
		"1.2.3.4",
		"a.b.c",
		"1.2.x",
		"1..3",
		"-1.2.3",
		"1.+2.3",
		"1. 2.3",
		"one.two.three",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(text)
			require.Error(t, err)

			var formatErr *InvalidFormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Contains(t, formatErr.Error(), "invalid semantic version")
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"0.1.0", "1.2.3", "12.0.7"} {
		v, err := Parse(text)
		require.NoError(t, err)
		assert.Equal(t, text, v.String())

		again, err := Parse(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, again)
	}
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValid("1.2.3"))
	assert.True(t, IsValid("v0.6.0"))
	assert.False(t, IsValid("1.2"))
	assert.False(t, IsValid("latest"))
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		a, b     Version
		expected int
	}{
		"equal":               {a: Version{1, 2, 3}, b: Version{1, 2, 3}, expected: 0},
		"major dominates":     {a: Version{2, 0, 0}, b: Version{1, 9, 9}, expected: 1},
		"minor breaks tie":    {a: Version{1, 3, 0}, b: Version{1, 4, 0}, expected: -1},
		"patch breaks tie":    {a: Version{1, 2, 4}, b: Version{1, 2, 3}, expected: 1},
		"lexicographic order": {a: Version{0, 10, 0}, b: Version{0, 9, 99}, expected: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Compare(tt.a, tt.b))
			assert.Equal(t, -tt.expected, Compare(tt.b, tt.a))
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	base := Version{1, 2, 3}

	tests := map[string]struct {
		severity Severity
		expected Version
	}{
		"none is identity":       {severity: SeverityNone, expected: Version{1, 2, 3}},
		"patch increments patch": {severity: SeverityPatch, expected: Version{1, 2, 4}},
		"minor resets patch":     {severity: SeverityMinor, expected: Version{1, 3, 0}},
		"major resets both":      {severity: SeverityMajor, expected: Version{2, 0, 0}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Apply(base, tt.severity))
		})
	}
}

func TestApply_ComponentRules(t *testing.T) {
	t.Parallel()

	// Major always yields X+1.0.0, minor always yields X.Y+1.0,
	// patch changes only the patch component.
	samples := []Version{{0, 0, 0}, {1, 2, 3}, {9, 0, 17}, {2, 11, 4}}

	for _, v := range samples {
		major := Apply(v, SeverityMajor)
		assert.Equal(t, Version{v.Major + 1, 0, 0}, major)

		minor := Apply(v, SeverityMinor)
		assert.Equal(t, Version{v.Major, v.Minor + 1, 0}, minor)

		patch := Apply(v, SeverityPatch)
		assert.Equal(t, Version{v.Major, v.Minor, v.Patch + 1}, patch)

		assert.Equal(t, v, Apply(v, SeverityNone))
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustParse("not-a-version") })
	assert.NotPanics(t, func() { MustParse("1.0.0") })
}
