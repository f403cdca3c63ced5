//go:build cgo

// Package libmpv links libmpv at build time with cgo.
package libmpv

/*
#cgo pkg-config: mpv

#include <stdlib.h>
#include <mpv/client.h>
*/
import "C"
import (
	"unsafe"

	"github.com/dewi-tim/mpvtui/internal/mpv"
)

// Library calls the libmpv the binary was linked against.
type Library struct{}

var _ mpv.Library = Library{}

// Open returns the linked library. It never fails when cgo is enabled.
func Open() (Library, error) {
	return Library{}, nil
}

func (Library) HeaderVersion() uint64 {
	return uint64(C.MPV_CLIENT_API_VERSION)
}

func (Library) ClientAPIVersion() uint64 {
	return uint64(C.mpv_client_api_version())
}

func (Library) Create() unsafe.Pointer {
	return unsafe.Pointer(C.mpv_create())
}

func (Library) Initialize(ctx unsafe.Pointer) int {
	return int(C.mpv_initialize((*C.mpv_handle)(ctx)))
}

func (Library) TerminateDestroy(ctx unsafe.Pointer) {
	C.mpv_terminate_destroy((*C.mpv_handle)(ctx))
}

func (Library) LoadConfigFile(ctx unsafe.Pointer, filename *byte) int {
	return int(C.mpv_load_config_file((*C.mpv_handle)(ctx), (*C.char)(unsafe.Pointer(filename))))
}

func (Library) CommandString(ctx unsafe.Pointer, args *byte) int {
	return int(C.mpv_command_string((*C.mpv_handle)(ctx), (*C.char)(unsafe.Pointer(args))))
}

func (Library) GetProperty(ctx unsafe.Pointer, name *byte, format int, data unsafe.Pointer) int {
	return int(C.mpv_get_property((*C.mpv_handle)(ctx), (*C.char)(unsafe.Pointer(name)),
		C.mpv_format(format), data))
}

func (Library) SetProperty(ctx unsafe.Pointer, name *byte, format int, data unsafe.Pointer) int {
	return int(C.mpv_set_property((*C.mpv_handle)(ctx), (*C.char)(unsafe.Pointer(name)),
		C.mpv_format(format), data))
}

func (Library) GetTimeUS(ctx unsafe.Pointer) int64 {
	return int64(C.mpv_get_time_us((*C.mpv_handle)(ctx)))
}

func (Library) RequestEvent(ctx unsafe.Pointer, event int, enable int) int {
	return int(C.mpv_request_event((*C.mpv_handle)(ctx), C.mpv_event_id(event), C.int(enable)))
}

func (Library) Free(data unsafe.Pointer) {
	C.mpv_free(data)
}
