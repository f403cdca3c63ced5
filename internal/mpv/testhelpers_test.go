package mpv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dewi-tim/mpvtui/internal/mpv/mpvtest"
)

// newTestMpv returns an initialized context backed by a fresh fake library.
func newTestMpv(t *testing.T) (*Mpv, *mpvtest.Library) {
	t.Helper()
	lib := mpvtest.New()
	m, err := New(lib)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m, lib
}
