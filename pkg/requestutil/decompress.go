package requestutil

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/carlmjohnson/requests"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-logr/logr"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

var ContentTypesGzip = []string{
	"application/gzip",
	"application/x-gzip",
}

// WithDecompression copies the response body into out,
// decompressing it based on the name of the requested
// file or the content type of the response.
func WithDecompression(out io.Writer, name string) requests.ResponseHandler {
	return func(response *http.Response) error {
		log := logr.FromContextOrDiscard(response.Request.Context())
		log.V(8).Info("reading response", "name", name, "contentType", response.Header.Get("Content-Type"))

		stream, err := Decompress(response.Body, name, response.Header.Get("Content-Type"))
		if err != nil {
			return err
		}
		defer stream.Close()

		if _, err := io.Copy(out, stream); err != nil {
			return fmt.Errorf("writing uncompressed output: %w", err)
		}
		return nil
	}
}

// Decompress wraps r with a reader for the compression
// format implied by name. Unknown formats are passed
// through untouched.
func Decompress(r io.Reader, name, contentType string) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".xz"):
		reader, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("decompressing xz: %w", err)
		}
		return io.NopCloser(reader), nil
	case strings.HasSuffix(name, ".gz"), isGzipped(contentType):
		reader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("decompressing gzip: %w", err)
		}
		return reader, nil
	default:
		return io.NopCloser(r), nil
	}
}

func isGzipped(s string) bool {
	return mimetype.EqualsAny(s, ContentTypesGzip...)
}
