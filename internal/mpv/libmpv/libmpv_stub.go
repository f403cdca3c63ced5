//go:build !cgo

// Package libmpv links libmpv at build time with cgo.
package libmpv

import (
	"errors"
	"unsafe"

	"github.com/dewi-tim/mpvtui/internal/mpv"
)

// ErrUnsupported is returned by Open in builds without cgo.
var ErrUnsupported = errors.New("libmpv: built without cgo; use the dlopen backend")

// Library is unusable without cgo; Open always fails.
type Library struct{}

var _ mpv.Library = Library{}

func Open() (Library, error) {
	return Library{}, ErrUnsupported
}

func (Library) HeaderVersion() uint64                    { return 0 }
func (Library) ClientAPIVersion() uint64                 { return 0 }
func (Library) Create() unsafe.Pointer                   { return nil }
func (Library) Initialize(unsafe.Pointer) int            { return int(mpv.ErrUnsupported) }
func (Library) TerminateDestroy(unsafe.Pointer)          {}
func (Library) LoadConfigFile(unsafe.Pointer, *byte) int { return int(mpv.ErrUnsupported) }
func (Library) CommandString(unsafe.Pointer, *byte) int  { return int(mpv.ErrUnsupported) }
func (Library) GetProperty(unsafe.Pointer, *byte, int, unsafe.Pointer) int {
	return int(mpv.ErrUnsupported)
}
func (Library) SetProperty(unsafe.Pointer, *byte, int, unsafe.Pointer) int {
	return int(mpv.ErrUnsupported)
}
func (Library) GetTimeUS(unsafe.Pointer) int64            { return 0 }
func (Library) RequestEvent(unsafe.Pointer, int, int) int { return int(mpv.ErrUnsupported) }
func (Library) Free(unsafe.Pointer)                       {}
