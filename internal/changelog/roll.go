package changelog

import (
	"fmt"
	"strings"

	"github.com/raveheart1/releasekit/internal/semver"
)

// Roll moves everything under the Unreleased header into a new dated
// "## [version] - date" section placed immediately below a fresh, empty
// Unreleased header. Released history above and below is untouched. When
// the Unreleased section holds no content at all, Roll is a no-op and
// returns the receiver unchanged.
//
// The returned document is re-parsed from the rewritten text, so callers
// can immediately query the new section or verify the round-trip.
func (d *Document) Roll(version semver.Version, date string) (*Document, error) {
	body := trimBlankEdges(d.lines[d.unreleasedStart+1 : d.unreleasedEnd])
	if len(body) == 0 {
		return d, nil
	}

	header := fmt.Sprintf("## [%s] - %s", version, date)

	rewritten := make([]string, 0, len(d.lines)+3)
	rewritten = append(rewritten, d.lines[:d.unreleasedStart+1]...)
	rewritten = append(rewritten, "")
	rewritten = append(rewritten, header)
	rewritten = append(rewritten, body...)
	if d.unreleasedEnd < len(d.lines) {
		rewritten = append(rewritten, "")
		rewritten = append(rewritten, d.lines[d.unreleasedEnd:]...)
	} else if last := d.lines[len(d.lines)-1]; last == "" {
		// Preserve the file's trailing newline.
		rewritten = append(rewritten, "")
	}

	rolled, err := Parse(strings.Join(rewritten, "\n"))
	if err != nil {
		// The rewrite keeps the Unreleased header in place, so a parse
		// failure here indicates a bug rather than bad input.
		return nil, fmt.Errorf("re-parsing rolled changelog: %w", err)
	}

	rolled.Path = d.Path
	return rolled, nil
}
