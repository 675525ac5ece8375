package debian

import (
	"context"
	"net/http"

	"github.com/djcass44/deb-order/pkg/downloader"
)

// Package is a single binary package record from
// a Packages index.
type Package struct {
	Name     string   `json:"name"`
	Version  string   `json:"version,omitempty"`
	Source   string   `json:"source,omitempty"`
	Homepage string   `json:"homepage,omitempty"`
	Depends  []string `json:"depends,omitempty"`
	// InternalDepends is the subset of Depends that
	// names another package in the same Table.
	InternalDepends []string `json:"internalDepends,omitempty"`
}

// Table holds the packages of an index keyed by name,
// remembering the order in which names were first seen.
type Table struct {
	names    []string
	packages map[string]*Package
}

// Retriever returns the raw text of a Packages index.
type Retriever interface {
	Retrieve(ctx context.Context, os, distro string) (string, error)
}

// Repository retrieves indices from an APT repository
// laid out as <URL>/<os>/dists/<distro>/<component>/binary-<arch>.
type Repository struct {
	URL       string
	Component string
	Arch      string
	Client    *http.Client
}

// FileSource retrieves an index from anything that
// go-getter understands, ignoring the os and distro.
type FileSource struct {
	Src        string
	Downloader *downloader.Downloader
}

// RetrieverFunc adapts a function to a Retriever.
type RetrieverFunc func(ctx context.Context, os, distro string) (string, error)

func (f RetrieverFunc) Retrieve(ctx context.Context, os, distro string) (string, error) {
	return f(ctx, os, distro)
}
