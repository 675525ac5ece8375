package debian

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/carlmjohnson/requests"
	"github.com/djcass44/deb-order/pkg/requestutil"
	"github.com/go-logr/logr"
)

const (
	DefaultRepository = "https://pkg.caida.org/os"
	DefaultComponent  = "main"
	DefaultArch       = "amd64"

	PackageFile     = "Packages"
	PackageFileGzip = "Packages.gz"
	PackageFileXZ   = "Packages.xz"
)

// PackageFiles lists the index files that are
// tried, in order, until one is found.
var PackageFiles = []string{PackageFile, PackageFileGzip, PackageFileXZ}

var ErrNotFound = errors.New("package file not found")

// notFoundMarker is served with a 200 status by some
// repositories in place of a missing file.
const notFoundMarker = "could not be found"

func NewRepository(url, component, arch string, client *http.Client) *Repository {
	if url == "" {
		url = DefaultRepository
	}
	if component == "" {
		component = DefaultComponent
	}
	if arch == "" {
		arch = DefaultArch
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Repository{
		URL:       strings.TrimSuffix(url, "/"),
		Component: component,
		Arch:      arch,
		Client:    client,
	}
}

// IndexURL returns the location of an index file for
// the given operating system and distribution.
func (r *Repository) IndexURL(os, distro, filename string) string {
	return fmt.Sprintf("%s/%s/dists/%s/%s/binary-%s/%s", r.URL, os, distro, r.Component, r.Arch, filename)
}

// Retrieve downloads the Packages index for the os and
// distro, falling back to compressed variants of the
// file when the plain one does not exist.
func (r *Repository) Retrieve(ctx context.Context, os, distro string) (string, error) {
	for _, filename := range PackageFiles {
		out, err := r.download(ctx, os, distro, filename)
		if err == nil {
			return out, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return "", fmt.Errorf("retrieving %s from %s: %w", r.IndexURL(os, distro, PackageFile), r.URL, ErrNotFound)
}

func (r *Repository) download(ctx context.Context, os, distro, filename string) (string, error) {
	target := r.IndexURL(os, distro, filename)
	log := logr.FromContextOrDiscard(ctx).WithValues("url", target)
	log.V(1).Info("downloading index")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	var sb strings.Builder
	err := requests.
		URL(target).
		Client(client).
		Handle(requestutil.WithDecompression(&sb, filename)).
		Fetch(ctx)
	if err != nil {
		// return a special error on 404, so we can check for
		// other file types
		if requests.HasStatusErr(err, http.StatusNotFound) {
			log.V(1).Info("failed to locate package index")
			return "", ErrNotFound
		}
		log.V(1).Info("failed to download file")
		return "", fmt.Errorf("downloading %s: %w", target, err)
	}
	out := sb.String()
	if strings.Contains(out, notFoundMarker) {
		log.V(1).Info("repository reported that the index could not be found")
		return "", ErrNotFound
	}
	log.V(1).Info("successfully downloaded index", "bytes", len(out))
	return out, nil
}

// Retrieve downloads the source and returns its contents.
func (f *FileSource) Retrieve(ctx context.Context, os, distro string) (string, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("src", f.Src)
	log.V(1).Info("reading index from source", "os", os, "distro", distro)

	path, err := f.Downloader.Download(ctx, f.Src)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", f.Src, err)
	}
	data, err := readFile(path)
	if err != nil {
		return "", err
	}
	return data, nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
