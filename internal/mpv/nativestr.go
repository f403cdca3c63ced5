package mpv

import (
	"sync/atomic"
	"unsafe"
)

// NativeString is a string that lives in memory allocated by libmpv. It must
// be released with Close. Nothing frees it otherwise: a NativeString dropped
// without Close leaks its buffer, and views returned by String and Bytes stay
// valid until Close whether or not the NativeString is still reachable.
//
// A NativeString must not be copied. Pass the pointer.
type NativeString struct {
	_   noCopy
	buf *nativeBuf
}

type nativeBuf struct {
	ptr      *byte
	n        int
	free     func(unsafe.Pointer)
	released atomic.Bool
}

func (b *nativeBuf) release() {
	if b.released.CompareAndSwap(false, true) {
		b.free(unsafe.Pointer(b.ptr))
	}
}

func newNativeString(p *byte, n int, free func(unsafe.Pointer)) *NativeString {
	return &NativeString{buf: &nativeBuf{ptr: p, n: n, free: free}}
}

// String returns the text without copying. The result is only valid until
// Close; use strings.Clone to keep it longer.
func (s *NativeString) String() string {
	if s.buf.released.Load() {
		return ""
	}
	return unsafe.String(s.buf.ptr, s.buf.n)
}

// Bytes returns the underlying bytes without the trailing NUL. Like String,
// the slice is only valid until Close.
func (s *NativeString) Bytes() []byte {
	if s.buf.released.Load() {
		return nil
	}
	return unsafe.Slice(s.buf.ptr, s.buf.n)
}

// Len returns the length of the string in bytes.
func (s *NativeString) Len() int {
	return s.buf.n
}

// Close releases the memory through libmpv's allocator. It is safe to call
// more than once; only the first call frees.
func (s *NativeString) Close() error {
	s.buf.release()
	return nil
}

// noCopy lets go vet's copylocks check flag copies of NativeString.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
