package semver

// Severity is the magnitude of version change implied by a set of pending
// changes. The zero value is SeverityNone, which never triggers a release.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityPatch
	SeverityMinor
	SeverityMajor
)

// String returns a human-readable name for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityPatch:
		return "patch"
	case SeverityMinor:
		return "minor"
	case SeverityMajor:
		return "major"
	default:
		return "none"
	}
}

// MaxSeverity returns the greater of a and b. SeverityNone is the identity:
// MaxSeverity(s, SeverityNone) == s for all s.
func MaxSeverity(a, b Severity) Severity {
	if a > b {
		return a
	}
	return b
}

// AggregateSeverity folds a sequence of severities into the single severity
// governing a whole release run. The result is independent of input order;
// an empty sequence yields SeverityNone.
func AggregateSeverity(severities []Severity) Severity {
	result := SeverityNone
	for _, s := range severities {
		result = MaxSeverity(result, s)
	}
	return result
}
