package airutil

import (
	"fmt"

	"github.com/drone/envsubst"
)

// ExpandEnv substitutes ${VAR} references in s
// using the process environment.
func ExpandEnv(s string) (string, error) {
	val, err := envsubst.EvalEnv(s)
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", s, err)
	}
	return val, nil
}
