package debian

import (
	"fmt"
	"strings"
)

// ParseIndex parses the contents of a Packages file into
// its records, preserving the order they appear in.
func ParseIndex(s string) ([]*Package, error) {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var out []*Package
	for i, paragraph := range strings.Split(s, "\n\n") {
		pkg, err := ParseRecord(paragraph)
		if err != nil {
			return nil, fmt.Errorf("parsing paragraph %d: %w", i+1, err)
		}
		if pkg == nil {
			continue
		}
		out = append(out, pkg)
	}
	return out, nil
}
