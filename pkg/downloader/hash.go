package downloader

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashString returns the first 12 characters of the
// hex-encoded SHA256 of s. It is used to name cached
// files and is not suitable for verifying content.
func HashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])[:12]
}
