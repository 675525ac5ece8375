package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	v1 "github.com/djcass44/deb-order/pkg/api/v1"
	"github.com/djcass44/deb-order/pkg/debian"
	"github.com/go-logr/logr"
	"pault.ag/go/debian/control"
)

type Result struct {
	Sources  []string          `json:"sources"`
	Packages []*debian.Package `json:"packages"`
}

// paragraph is the subset of a package written
// when producing control output.
type paragraph struct {
	Package  string
	Version  string
	Source   string
	Homepage string
	Depends  []string `delim:", "`
}

// Run retrieves the index for os/distro and orders its
// packages. Nothing is returned unless every step succeeds.
func Run(ctx context.Context, r debian.Retriever, os, distro string) (*Result, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("os", os, "distro", distro)

	raw, err := r.Retrieve(ctx, os, distro)
	if err != nil {
		return nil, fmt.Errorf("retrieving index: %w", err)
	}
	pkgs, err := debian.ParseIndex(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}
	log.V(1).Info("parsed index", "records", len(pkgs))

	table, err := debian.NewTable(ctx, pkgs)
	if err != nil {
		return nil, fmt.Errorf("building package table: %w", err)
	}
	ordered, err := table.Order(ctx)
	if err != nil {
		return nil, fmt.Errorf("ordering packages: %w", err)
	}
	sources := debian.Sources(ordered)
	log.Info("ordered packages", "packages", len(ordered), "sources", len(sources))

	return &Result{
		Sources:  sources,
		Packages: ordered,
	}, nil
}

// Write prints the result in the requested format.
func Write(w io.Writer, res *Result, format v1.OutputFormat) error {
	switch format {
	case v1.OutputText, "":
		for _, s := range res.Sources {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		return nil
	case v1.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "\t")
		return enc.Encode(res)
	case v1.OutputControl:
		out := make([]paragraph, len(res.Packages))
		for i, p := range res.Packages {
			out[i] = paragraph{
				Package:  p.Name,
				Version:  p.Version,
				Source:   p.Source,
				Homepage: p.Homepage,
				Depends:  p.Depends,
			}
		}
		return control.Marshal(w, out)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
