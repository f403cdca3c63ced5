package mpv

import (
	"runtime"
	"unicode/utf8"
	"unsafe"
)

// Getter reads values of type T out of a buffer filled by libmpv.
type Getter[T any] interface {
	Format() Format
	// get hands fill a pointer to storage for the native representation of
	// T. free releases memory libmpv wrote into that storage.
	get(fill func(data unsafe.Pointer) error, free func(unsafe.Pointer)) (T, error)
}

// Setter writes values of type T into a buffer read by libmpv.
type Setter[T any] interface {
	Format() Format
	// set hands call a pointer to the native representation of v. The
	// pointer is valid until call returns.
	set(v T, call func(data unsafe.Pointer) error) error
}

// Codec can move T across the boundary in both directions.
type Codec[T any] interface {
	Getter[T]
	Setter[T]
}

var (
	// Double is MPV_FORMAT_DOUBLE.
	Double Codec[float64] = scalar[float64]{format: FormatDouble}
	// Int64 is MPV_FORMAT_INT64.
	Int64 Codec[int64] = scalar[int64]{format: FormatInt64}
	// Flag is MPV_FORMAT_FLAG.
	Flag Codec[bool] = flag{}
	// String is MPV_FORMAT_STRING, copied into Go memory.
	String Codec[string] = str{}
	// NativeStr is MPV_FORMAT_STRING left in libmpv memory.
	NativeStr Getter[*NativeString] = nativeStr{}
)

// scalar covers types whose Go and C layouts are identical.
type scalar[T int64 | float64] struct {
	format Format
}

func (s scalar[T]) Format() Format { return s.format }

func (s scalar[T]) get(fill func(unsafe.Pointer) error, _ func(unsafe.Pointer)) (T, error) {
	var v T
	if err := fill(unsafe.Pointer(&v)); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (s scalar[T]) set(v T, call func(unsafe.Pointer) error) error {
	return call(unsafe.Pointer(&v))
}

// cFlag is the C int libmpv uses for MPV_FORMAT_FLAG. A Go bool is one byte,
// so it is never handed to libmpv directly.
type cFlag = int32

type flag struct{}

func (flag) Format() Format { return FormatFlag }

func (flag) get(fill func(unsafe.Pointer) error, _ func(unsafe.Pointer)) (bool, error) {
	var v cFlag
	if err := fill(unsafe.Pointer(&v)); err != nil {
		return false, err
	}
	return v != 0, nil
}

func (flag) set(v bool, call func(unsafe.Pointer) error) error {
	var n cFlag
	if v {
		n = 1
	}
	return call(unsafe.Pointer(&n))
}

// fillString runs fill against a char* slot and validates the result. On
// success the caller owns p and must release it with free.
func fillString(fill func(unsafe.Pointer) error, free func(unsafe.Pointer)) (p *byte, n int, err error) {
	if err := fill(unsafe.Pointer(&p)); err != nil {
		return nil, 0, err
	}
	if p == nil {
		return nil, 0, ErrNull
	}
	n = cStringLen(p)
	if !utf8.Valid(unsafe.Slice(p, n)) {
		free(unsafe.Pointer(p))
		return nil, 0, ErrInvalidUTF8
	}
	return p, n, nil
}

// setString stages v as a C string and passes the address of its char*.
func setString(v string, call func(unsafe.Pointer) error) error {
	buf, err := cString(v)
	if err != nil {
		return err
	}
	// libmpv receives a char** that lives in Go memory, so the buffer it
	// points to must be pinned for the duration of the call.
	var pinner runtime.Pinner
	defer pinner.Unpin()
	p := &buf[0]
	pinner.Pin(p)
	return call(unsafe.Pointer(&p))
}

type str struct{}

func (str) Format() Format { return FormatString }

func (str) get(fill func(unsafe.Pointer) error, free func(unsafe.Pointer)) (string, error) {
	p, n, err := fillString(fill, free)
	if err != nil {
		return "", err
	}
	s := string(unsafe.Slice(p, n))
	free(unsafe.Pointer(p))
	return s, nil
}

func (str) set(v string, call func(unsafe.Pointer) error) error {
	return setString(v, call)
}

type nativeStr struct{}

func (nativeStr) Format() Format { return FormatString }

func (nativeStr) get(fill func(unsafe.Pointer) error, free func(unsafe.Pointer)) (*NativeString, error) {
	p, n, err := fillString(fill, free)
	if err != nil {
		return nil, err
	}
	return newNativeString(p, n, free), nil
}
