package downloader

import (
	"context"
	"errors"
	"maps"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-getter"
)

type Downloader struct {
	cacheDir string
}

func NewDownloader(cacheDir string) (*Downloader, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	return &Downloader{cacheDir: cacheDir}, nil
}

// Download fetches src into the cache directory and returns
// the path of the local copy. Compressed sources (e.g. a
// Packages.xz) are decompressed by go-getter.
func (d *Downloader) Download(ctx context.Context, src string) (string, error) {
	log := logr.FromContextOrDiscard(ctx)
	log.Info("downloading file", "src", src)

	pwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	// the destination is derived from the source so that
	// different sources never clobber each other
	dst := filepath.Join(d.cacheDir, HashString(src))
	log.V(1).Info("preparing to download file", "dst", dst)
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Error(err, "failed to remove stale download", "dst", dst)
		return "", err
	}

	// local files must be copied rather than linked
	// so that the cache never points at user data
	getters := maps.Clone(getter.Getters)
	getters["file"] = &getter.FileGetter{Copy: true}

	client := &getter.Client{
		Ctx:             ctx,
		Src:             src,
		Dst:             dst,
		Pwd:             pwd,
		Mode:            getter.ClientModeFile,
		Getters:         getters,
		DisableSymlinks: true,
	}
	if err := client.Get(); err != nil {
		log.Error(err, "failed to download file")
		return "", err
	}
	if err := os.Chmod(dst, 0664); err != nil {
		log.Error(err, "failed to update file permissions", "file", dst)
		return "", err
	}

	return dst, nil
}
