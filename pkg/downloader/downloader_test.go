package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloader_Download(t *testing.T) {
	ctx := logr.NewContext(context.TODO(), testr.NewWithOptions(t, testr.Options{Verbosity: 10}))

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Package: base\n"))
	}))
	defer ts.Close()

	cacheDir := filepath.Join(t.TempDir(), "cache")
	dl, err := NewDownloader(cacheDir)
	require.NoError(t, err)
	assert.DirExists(t, cacheDir)

	src := ts.URL + "/os/dists/focal/main/binary-amd64/Packages"
	out, err := dl.Download(ctx, src)
	require.NoError(t, err)
	assert.EqualValues(t, filepath.Join(cacheDir, HashString(src)), out)

	data, err := os.ReadFile(out)
	assert.NoError(t, err)
	assert.EqualValues(t, "Package: base\n", string(data))

	t.Run("repeated downloads replace the file", func(t *testing.T) {
		out, err := dl.Download(ctx, src)
		require.NoError(t, err)
		data, err := os.ReadFile(out)
		assert.NoError(t, err)
		assert.EqualValues(t, "Package: base\n", string(data))
	})
}

func TestHashString(t *testing.T) {
	a := HashString("https://example.org/Packages")
	assert.Len(t, a, 12)
	assert.EqualValues(t, a, HashString("https://example.org/Packages"))
	assert.NotEqualValues(t, a, HashString("https://example.org/Packages.gz"))
}
