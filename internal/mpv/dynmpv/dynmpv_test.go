//go:build darwin || freebsd || linux || netbsd

package dynmpv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dewi-tim/mpvtui/internal/mpv"
)

func TestOpenMissingLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libmpv-missing.so")

	lib, err := Open(path, mpv.MakeVersion(2, 1))
	require.Error(t, err)
	assert.Nil(t, lib)
	assert.Contains(t, err.Error(), "libmpv-missing.so")
}

func TestDefaultNames(t *testing.T) {
	names := DefaultNames()
	require.NotEmpty(t, names)
	for _, n := range names {
		assert.Contains(t, n, "libmpv")
	}
}

func TestOpenSystemLibrary(t *testing.T) {
	lib, err := Open("", mpv.MakeVersion(2, 1))
	if err != nil {
		t.Skipf("libmpv not installed: %v", err)
	}
	defer lib.Close()

	assert.Equal(t, mpv.MakeVersion(2, 1), lib.HeaderVersion())
	assert.NotZero(t, lib.ClientAPIVersion())
}
