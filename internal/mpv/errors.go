package mpv

import (
	"errors"
	"fmt"
)

var (
	// ErrNull is returned when libmpv hands back a null pointer, or when a Go
	// string cannot be turned into a C string because it contains a NUL byte.
	ErrNull = errors.New("mpv: null pointer")

	// ErrInvalidUTF8 is returned when a string produced by libmpv is not
	// valid UTF-8.
	ErrInvalidUTF8 = errors.New("mpv: invalid utf-8 in native string")

	// ErrClosed is returned by every operation issued after Close.
	ErrClosed = fmt.Errorf("%w: context already destroyed", ErrNull)
)

// RawError is a non-zero status code returned by a libmpv entry point.
type RawError int

// Error codes defined by libmpv's client.h.
const (
	ErrEventQueueFull      RawError = -1
	ErrNoMem               RawError = -2
	ErrUninitialized       RawError = -3
	ErrInvalidParameter    RawError = -4
	ErrOptionNotFound      RawError = -5
	ErrOptionFormat        RawError = -6
	ErrOptionError         RawError = -7
	ErrPropertyNotFound    RawError = -8
	ErrPropertyFormat      RawError = -9
	ErrPropertyUnavailable RawError = -10
	ErrPropertyError       RawError = -11
	ErrCommand             RawError = -12
	ErrLoadingFailed       RawError = -13
	ErrAOInitFailed        RawError = -14
	ErrVOInitFailed        RawError = -15
	ErrNothingToPlay       RawError = -16
	ErrUnknownFormat       RawError = -17
	ErrUnsupported         RawError = -18
	ErrNotImplemented      RawError = -19
	ErrGeneric             RawError = -20
)

var rawErrorText = map[RawError]string{
	ErrEventQueueFull:      "event queue full",
	ErrNoMem:               "memory allocation failed",
	ErrUninitialized:       "core not initialized",
	ErrInvalidParameter:    "invalid parameter",
	ErrOptionNotFound:      "option not found",
	ErrOptionFormat:        "unsupported format for accessing option",
	ErrOptionError:         "error setting option",
	ErrPropertyNotFound:    "property not found",
	ErrPropertyFormat:      "unsupported format for accessing property",
	ErrPropertyUnavailable: "property unavailable",
	ErrPropertyError:       "error accessing property",
	ErrCommand:             "error running command",
	ErrLoadingFailed:       "loading failed",
	ErrAOInitFailed:        "audio output initialization failed",
	ErrVOInitFailed:        "video output initialization failed",
	ErrNothingToPlay:       "no audio or video data played",
	ErrUnknownFormat:       "unrecognized file format",
	ErrUnsupported:         "not supported",
	ErrNotImplemented:      "operation not implemented",
	ErrGeneric:             "something happened",
}

func (e RawError) Error() string {
	if text, ok := rawErrorText[e]; ok {
		return "mpv: " + text
	}
	return fmt.Sprintf("mpv: unknown error %d", int(e))
}

// Code returns the status exactly as libmpv reported it.
func (e RawError) Code() int {
	return int(e)
}

// VersionMismatchError is returned by New when the client API version the
// bindings were built against differs from the one the loaded library reports.
type VersionMismatchError struct {
	Linked uint64
	Loaded uint64
}

func (e VersionMismatchError) Error() string {
	return fmt.Sprintf("mpv: client API version mismatch: linked %s, loaded %s",
		FormatVersion(e.Linked), FormatVersion(e.Loaded))
}

// LoadfilesError reports the first entry of a batch load that libmpv refused.
// Entries before Index were accepted; entries after it were never submitted.
type LoadfilesError struct {
	Index int
	Err   error
}

func (e *LoadfilesError) Error() string {
	return fmt.Sprintf("mpv: loading file %d: %v", e.Index, e.Err)
}

func (e *LoadfilesError) Unwrap() error {
	return e.Err
}

// check converts a libmpv status into an error.
func check(code int) error {
	if code == 0 {
		return nil
	}
	return RawError(code)
}

// MakeVersion packs a client API version the way MPV_MAKE_VERSION does.
func MakeVersion(major, minor uint16) uint64 {
	return uint64(major)<<16 | uint64(minor)
}

// FormatVersion renders a packed client API version as "major.minor".
func FormatVersion(v uint64) string {
	return fmt.Sprintf("%d.%d", v>>16, v&0xffff)
}
