package debian

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	FieldPackage  = "Package"
	FieldVersion  = "Version"
	FieldSource   = "Source"
	FieldHomepage = "Homepage"
	FieldDepends  = "Depends"
)

// regexpField matches a logical control line. Field names
// may contain hyphens so that fields such as "Pre-Depends"
// are never mistaken for "Depends".
var regexpField = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9-]*):[ \t]?(.*)$`)

// regexpDependency strips the architecture qualifier and
// version constraint from a single dependency.
var regexpDependency = regexp.MustCompile(`^(.*?)(:.*)?( \(.*\))?$`)

// ParseError describes a control line that could
// not be read as a field.
type ParseError struct {
	Line string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.Msg, e.Line)
}

// ParseRecord parses a single paragraph of a Packages
// file. A paragraph containing only whitespace returns
// a nil package and no error.
func ParseRecord(paragraph string) (*Package, error) {
	if strings.TrimSpace(paragraph) == "" {
		return nil, nil
	}
	lines, err := foldLines(paragraph)
	if err != nil {
		return nil, err
	}

	pkg := &Package{}
	for _, line := range lines {
		matches := regexpField.FindStringSubmatch(line)
		if matches == nil {
			return nil, &ParseError{Line: line, Msg: "malformed field"}
		}
		value := matches[2]
		switch matches[1] {
		case FieldPackage:
			pkg.Name = value
		case FieldVersion:
			pkg.Version = value
		case FieldSource:
			pkg.Source = value
		case FieldHomepage:
			pkg.Homepage = value
		case FieldDepends:
			pkg.Depends = ParseDepends(value)
		}
	}
	return pkg, nil
}

// foldLines joins continuation lines (those starting with
// a space) onto the logical line before them.
func foldLines(s string) ([]string, error) {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line == "" {
			continue
		}
		if line[0] == ' ' {
			if len(lines) == 0 {
				return nil, &ParseError{Line: line, Msg: "continuation without a field"}
			}
			lines[len(lines)-1] += " " + strings.TrimLeft(line, " \t")
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// ParseDepends parses the value of a "Depends" field into
// a list of unique package names.
//
// https://www.debian.org/doc/debian-policy/ch-relationships.html
func ParseDepends(s string) []string {
	var deps []string
	seen := map[string]struct{}{}
	for _, dep := range strings.Split(s, ", ") {
		name := strings.TrimSpace(regexpDependency.FindStringSubmatch(dep)[1])
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		deps = append(deps, name)
	}
	return deps
}
