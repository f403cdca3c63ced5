package mpv

import (
	"strings"
	"unsafe"
)

// Library is the set of libmpv entry points the boundary calls. Each method
// maps one-to-one onto a C function; ctx is the mpv_handle returned by Create.
//
// String arguments are NUL-terminated buffers owned by the caller for the
// duration of the call. Statuses are returned unmodified.
type Library interface {
	// HeaderVersion is MPV_CLIENT_API_VERSION as seen by the bindings.
	HeaderVersion() uint64
	// ClientAPIVersion is mpv_client_api_version of the loaded library.
	ClientAPIVersion() uint64

	Create() unsafe.Pointer
	Initialize(ctx unsafe.Pointer) int
	// TerminateDestroy must be called at most once per context.
	TerminateDestroy(ctx unsafe.Pointer)

	LoadConfigFile(ctx unsafe.Pointer, filename *byte) int
	CommandString(ctx unsafe.Pointer, args *byte) int
	GetProperty(ctx unsafe.Pointer, name *byte, format int, data unsafe.Pointer) int
	SetProperty(ctx unsafe.Pointer, name *byte, format int, data unsafe.Pointer) int
	GetTimeUS(ctx unsafe.Pointer) int64
	RequestEvent(ctx unsafe.Pointer, event int, enable int) int

	// Free releases memory allocated by libmpv.
	Free(data unsafe.Pointer)
}

// cString stages s as a NUL-terminated buffer.
func cString(s string) ([]byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, ErrNull
	}
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return buf, nil
}

// cStringLen returns the length of the NUL-terminated string at p.
func cStringLen(p *byte) int {
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return n
}
