package marketplace

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raveheart1/releasekit/internal/semver"
)

// DescriptorFileName is the per-skill descriptor document carrying a
// version field nested under metadata in its YAML front matter.
const DescriptorFileName = "SKILL.md"

const frontMatterDelimiter = "---"

// skillFrontMatter is the subset of SKILL.md front matter this package
// reads. Everything else in the file is opaque and preserved verbatim.
type skillFrontMatter struct {
	Name     string `yaml:"name"`
	Metadata struct {
		Version string `yaml:"version"`
	} `yaml:"metadata"`
}

// readDescriptorVersion extracts metadata.version from a SKILL.md file.
func readDescriptorVersion(fsys FileSystem, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading descriptor %s: %w", path, err)
	}

	front, _, err := splitFrontMatter(string(data))
	if err != nil {
		return "", fmt.Errorf("descriptor %s: %w", path, err)
	}

	var fm skillFrontMatter
	if err := yaml.Unmarshal([]byte(front), &fm); err != nil {
		return "", fmt.Errorf("parsing descriptor front matter %s: %w", path, err)
	}
	if fm.Metadata.Version == "" {
		return "", fmt.Errorf("descriptor %s: missing metadata.version field", path)
	}
	return fm.Metadata.Version, nil
}

// writeDescriptorVersion rewrites the metadata.version line inside the
// front matter block. The rewrite is line surgery, not a YAML re-encode,
// so every other byte of the file is preserved exactly.
func writeDescriptorVersion(fsys FileSystem, path string, version semver.Version) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading descriptor %s: %w", path, err)
	}

	rewritten, err := replaceMetadataVersion(string(data), version.String())
	if err != nil {
		return fmt.Errorf("descriptor %s: %w", path, err)
	}

	if err := fsys.WriteFile(path, []byte(rewritten), 0o644); err != nil {
		return fmt.Errorf("writing descriptor %s: %w", path, err)
	}
	return nil
}

// splitFrontMatter separates the YAML front matter block from the document
// body. The document must open with a "---" line and contain a closing
// "---" line.
func splitFrontMatter(text string) (front, body string, err error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != frontMatterDelimiter {
		return "", "", fmt.Errorf("missing front matter opening delimiter")
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == frontMatterDelimiter {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), nil
		}
	}
	return "", "", fmt.Errorf("missing front matter closing delimiter")
}

// replaceMetadataVersion locates the version line nested under the
// top-level metadata key within the front matter and substitutes the new
// value, keeping indentation intact. The scan is a small state machine:
// inside the front matter, a zero-indent "metadata:" line opens the block
// and the block ends at the next zero-indent key.
func replaceMetadataVersion(text, newVersion string) (string, error) {
	lines := strings.Split(text, "\n")

	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\r") != frontMatterDelimiter {
		return "", fmt.Errorf("missing front matter opening delimiter")
	}

	inMetadata := false

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSuffix(lines[i], "\r")

		if strings.TrimRight(line, " \t") == frontMatterDelimiter {
			break
		}

		indented := line != strings.TrimLeft(line, " \t")
		switch {
		case !indented && strings.HasPrefix(line, "metadata:"):
			inMetadata = true
		case !indented && strings.TrimSpace(line) != "":
			inMetadata = false
		case inMetadata && indented:
			key, _, found := strings.Cut(strings.TrimLeft(line, " \t"), ":")
			if found && strings.TrimSpace(key) == "version" {
				indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
				cr := ""
				if strings.HasSuffix(lines[i], "\r") {
					cr = "\r"
				}
				lines[i] = indent + "version: " + newVersion + cr
				return strings.Join(lines, "\n"), nil
			}
		}
	}

	return "", fmt.Errorf("no metadata.version field in front matter")
}
