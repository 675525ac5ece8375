package debian

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-logr/logr"
)

var ErrDependencyCycle = errors.New("dependency cycle detected")

// CycleError lists the packages that could never be
// ordered because their internal dependencies loop.
type CycleError struct {
	Names []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDependencyCycle, strings.Join(e.Names, ", "))
}

func (e *CycleError) Is(target error) bool {
	return target == ErrDependencyCycle
}

// Order returns every package in the table such that each
// package comes after all of its internal dependencies.
//
// Packages are released in passes: a pass contains every
// package whose dependencies were all released by earlier
// passes, in the order the table first saw them.
func (t *Table) Order(ctx context.Context) ([]*Package, error) {
	log := logr.FromContextOrDiscard(ctx)

	position := make(map[string]int, len(t.names))
	pending := make(map[string]int, len(t.names))
	dependents := map[string][]string{}
	for i, name := range t.names {
		p := t.packages[name]
		position[name] = i
		pending[name] = len(p.InternalDepends)
		for _, dep := range p.InternalDepends {
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var layer []string
	for _, name := range t.names {
		if pending[name] == 0 {
			layer = append(layer, name)
		}
	}

	out := make([]*Package, 0, len(t.names))
	for pass := 1; len(layer) > 0; pass++ {
		log.V(3).Info("releasing packages", "pass", pass, "count", len(layer))
		var next []string
		for _, name := range layer {
			out = append(out, t.packages[name])
			for _, d := range dependents[name] {
				pending[d]--
				if pending[d] == 0 {
					next = append(next, d)
				}
			}
		}
		slices.SortFunc(next, func(a, b string) int {
			return position[a] - position[b]
		})
		layer = next
	}

	if len(out) < len(t.names) {
		var stuck []string
		for _, name := range t.names {
			if pending[name] > 0 {
				stuck = append(stuck, name)
			}
		}
		log.V(1).Info("unable to order packages", "stuck", len(stuck))
		return nil, &CycleError{Names: stuck}
	}
	return out, nil
}
