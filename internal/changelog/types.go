package changelog

// Category is one of the six Keep a Changelog change categories.
// The set is closed: versioning decisions are driven only by these six,
// and any other sub-header under Unreleased is preserved but never
// contributes to a version bump.
type Category string

const (
	CategoryAdded      Category = "Added"
	CategoryChanged    Category = "Changed"
	CategoryDeprecated Category = "Deprecated"
	CategoryRemoved    Category = "Removed"
	CategoryFixed      Category = "Fixed"
	CategorySecurity   Category = "Security"
)

// ValidCategories returns the recognized categories in their standard
// rendering order.
func ValidCategories() []Category {
	return []Category{
		CategoryAdded,
		CategoryChanged,
		CategoryDeprecated,
		CategoryRemoved,
		CategoryFixed,
		CategorySecurity,
	}
}

// IsValidCategory reports whether name is one of the six recognized
// categories. Matching is exact, including case.
func IsValidCategory(name string) bool {
	switch Category(name) {
	case CategoryAdded, CategoryChanged, CategoryDeprecated,
		CategoryRemoved, CategoryFixed, CategorySecurity:
		return true
	}
	return false
}

// CategoryGroup holds the entry lines collected under one category
// sub-header of the Unreleased section. Entries keep their verbatim text
// (including the leading "- " bullet).
type CategoryGroup struct {
	Category Category
	Entries  []string
}

// Unreleased is the parsed view of the "## [Unreleased]" section.
// Categories appear in order of first occurrence; duplicate sub-headers for
// the same category are merged additively.
type Unreleased struct {
	Categories []CategoryGroup

	// HasUnknownContent is set when non-blank lines exist under Unreleased
	// that belong to no recognized category. Such content never triggers a
	// release but is carried along when the section is rolled.
	HasUnknownContent bool
}

// Entries returns the entry lines for the given category, or nil.
func (u *Unreleased) Entries(c Category) []string {
	for _, g := range u.Categories {
		if g.Category == c {
			return g.Entries
		}
	}
	return nil
}

// Count returns the total number of entries across recognized categories.
func (u *Unreleased) Count() int {
	total := 0
	for _, g := range u.Categories {
		total += len(g.Entries)
	}
	return total
}

// IsEmpty reports whether no recognized category has any entries.
func (u *Unreleased) IsEmpty() bool {
	return u.Count() == 0
}
