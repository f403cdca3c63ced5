//go:build !(darwin || freebsd || linux || netbsd)

package dynmpv

import (
	"errors"

	"github.com/dewi-tim/mpvtui/internal/mpv"
)

// ErrUnsupported is returned by Open on platforms without dlopen.
var ErrUnsupported = errors.New("dynmpv: runtime loading is not supported on this platform")

// Library is never constructed on this platform.
type Library struct {
	mpv.Library
}

func DefaultNames() []string { return nil }

func Open(path string, expected uint64) (*Library, error) {
	return nil, ErrUnsupported
}

func (l *Library) Close() error { return nil }
