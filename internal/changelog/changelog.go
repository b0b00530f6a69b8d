// Package changelog extracts announcement body lines from a release-notes
// document.
package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Load reads the notes file at path and returns its announcement lines.
// A missing file is not an error: the release simply has no notes and the
// body comes back empty.
func Load(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read release notes: %w", err)
	}
	return Lines(string(raw)), nil
}

// Lines picks the changelog bullet lines (trimmed form starting with "- ")
// out of the document. Documents without any bullets fall back to all
// non-blank lines, so free-form notes still get announced. Lines keep their
// original indentation and markup.
func Lines(doc string) []string {
	var bullets, nonBlank []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonBlank = append(nonBlank, line)
		if strings.HasPrefix(trimmed, "- ") {
			bullets = append(bullets, line)
		}
	}
	if len(bullets) > 0 {
		return bullets
	}
	return nonBlank
}
