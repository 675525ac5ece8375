package debian

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	t.Run("empty paragraph", func(t *testing.T) {
		pkg, err := ParseRecord("")
		assert.NoError(t, err)
		assert.Nil(t, pkg)
	})
	t.Run("blank paragraph", func(t *testing.T) {
		pkg, err := ParseRecord("\n\n")
		assert.NoError(t, err)
		assert.Nil(t, pkg)
	})
	t.Run("known fields are read", func(t *testing.T) {
		pkg, err := ParseRecord("Package: git\nVersion: 1:2.30.2-1\nSource: git (1:2.30.2-1)\nHomepage: https://git-scm.com/\nArchitecture: amd64\nDepends: libc6 (>= 2.34), zlib1g")
		require.NoError(t, err)
		assert.EqualValues(t, &Package{
			Name:     "git",
			Version:  "1:2.30.2-1",
			Source:   "git (1:2.30.2-1)",
			Homepage: "https://git-scm.com/",
			Depends:  []string{"libc6", "zlib1g"},
		}, pkg)
	})
	t.Run("continuation lines are folded", func(t *testing.T) {
		pkg, err := ParseRecord("Package: foo\nDepends: libc6:amd64 (>= 2.7),\n bar:amd64\n")
		require.NoError(t, err)
		assert.EqualValues(t, []string{"libc6", "bar"}, pkg.Depends)
	})
	t.Run("last value wins", func(t *testing.T) {
		pkg, err := ParseRecord("Package: foo\nVersion: 1\nVersion: 2\nDepends: a, b\nDepends: c")
		require.NoError(t, err)
		assert.EqualValues(t, "2", pkg.Version)
		assert.EqualValues(t, []string{"c"}, pkg.Depends)
	})
	t.Run("hyphenated fields are not aliased", func(t *testing.T) {
		pkg, err := ParseRecord("Package: foo\nDepends: a\nPre-Depends: b\nInstalled-Size: 12")
		require.NoError(t, err)
		assert.EqualValues(t, []string{"a"}, pkg.Depends)
	})
	t.Run("empty depends", func(t *testing.T) {
		pkg, err := ParseRecord("Package: foo\nDepends: ")
		require.NoError(t, err)
		assert.Empty(t, pkg.Depends)
	})
	t.Run("missing package leaves the name empty", func(t *testing.T) {
		pkg, err := ParseRecord("Version: 1.0")
		require.NoError(t, err)
		assert.EqualValues(t, "", pkg.Name)
	})
	t.Run("malformed line fails", func(t *testing.T) {
		_, err := ParseRecord("Package: foo\nthis is not a field")
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.EqualValues(t, "this is not a field", perr.Line)
	})
	t.Run("leading continuation fails", func(t *testing.T) {
		_, err := ParseRecord(" amd64\nPackage: foo")
		assert.Error(t, err)
	})
}

func TestFoldLines(t *testing.T) {
	lines, err := foldLines("Description: a tool\n for amd64\n\nPackage: foo")
	require.NoError(t, err)
	assert.EqualValues(t, []string{"Description: a tool for amd64", "Package: foo"}, lines)
}

func TestParseDepends(t *testing.T) {
	var cases = []struct {
		in  string
		out []string
	}{
		{
			"libc6:amd64 (>= 2.7), zlib1g",
			[]string{"libc6", "zlib1g"},
		},
		{
			"libc6 (>= 2.7), libc6 (<< 3), zlib1g:any",
			[]string{"libc6", "zlib1g"},
		},
		{
			"base (>= 1.0), libfoo",
			[]string{"base", "libfoo"},
		},
		{
			"",
			nil,
		},
	}

	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			assert.EqualValues(t, tt.out, ParseDepends(tt.in))
		})
	}
}
