package debian

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

var ErrMissingName = errors.New("package has no name")

// NewTable indexes packages by name. When a name appears
// more than once the first package wins and the rest are
// discarded.
func NewTable(ctx context.Context, pkgs []*Package) (*Table, error) {
	log := logr.FromContextOrDiscard(ctx)

	t := &Table{
		packages: make(map[string]*Package, len(pkgs)),
	}
	for i, p := range pkgs {
		if p.Name == "" {
			return nil, fmt.Errorf("record %d: %w", i+1, ErrMissingName)
		}
		if _, ok := t.packages[p.Name]; ok {
			log.V(2).Info("skipping duplicate package", "name", p.Name, "version", p.Version)
			continue
		}
		t.names = append(t.names, p.Name)
		t.packages[p.Name] = p
	}

	// dependencies can only be classified once
	// every name is known
	for _, name := range t.names {
		p := t.packages[name]
		p.InternalDepends = nil
		for _, dep := range p.Depends {
			if _, ok := t.packages[dep]; ok {
				p.InternalDepends = append(p.InternalDepends, dep)
			}
		}
	}
	log.V(1).Info("built package table", "count", len(t.names), "records", len(pkgs))
	return t, nil
}

func (t *Table) Len() int {
	return len(t.names)
}

// Names returns package names in the order they
// were first seen.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

func (t *Table) Get(name string) (*Package, bool) {
	p, ok := t.packages[name]
	return p, ok
}
