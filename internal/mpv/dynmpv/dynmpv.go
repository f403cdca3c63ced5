//go:build darwin || freebsd || linux || netbsd

// Package dynmpv loads libmpv at runtime with purego, so the binary builds
// without cgo or libmpv headers.
package dynmpv

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	"github.com/dewi-tim/mpvtui/internal/mpv"
)

// Library holds libmpv entry points resolved from a shared object.
type Library struct {
	handle   uintptr
	expected uint64

	clientAPIVersion func() uint64
	create           func() unsafe.Pointer
	initialize       func(ctx unsafe.Pointer) int32
	terminateDestroy func(ctx unsafe.Pointer)
	loadConfigFile   func(ctx unsafe.Pointer, filename unsafe.Pointer) int32
	commandString    func(ctx unsafe.Pointer, args unsafe.Pointer) int32
	getProperty      func(ctx unsafe.Pointer, name unsafe.Pointer, format int32, data unsafe.Pointer) int32
	setProperty      func(ctx unsafe.Pointer, name unsafe.Pointer, format int32, data unsafe.Pointer) int32
	getTimeUS        func(ctx unsafe.Pointer) int64
	requestEvent     func(ctx unsafe.Pointer, event int32, enable int32) int32
	free             func(data unsafe.Pointer)
}

var _ mpv.Library = (*Library)(nil)

// DefaultNames lists the shared object names tried when Open gets no path.
func DefaultNames() []string {
	if runtime.GOOS == "darwin" {
		return []string{"libmpv.2.dylib", "libmpv.dylib"}
	}
	return []string{"libmpv.so.2", "libmpv.so"}
}

// Open loads libmpv from path, or from DefaultNames when path is empty.
//
// No headers are involved, so expected stands in for the compile-time
// MPV_CLIENT_API_VERSION: mpv.New rejects the library unless
// mpv_client_api_version reports exactly that value.
func Open(path string, expected uint64) (*Library, error) {
	names := DefaultNames()
	if path != "" {
		names = []string{path}
	}

	var errs []error
	for _, name := range names {
		h, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		lib := &Library{handle: h, expected: expected}
		if err := lib.register(); err != nil {
			purego.Dlclose(h)
			return nil, fmt.Errorf("dynmpv: %s: %w", name, err)
		}
		mpv.Logger().Debug("libmpv loaded",
			zap.String("path", name),
			zap.String("api_version", mpv.FormatVersion(lib.clientAPIVersion())))
		return lib, nil
	}
	return nil, fmt.Errorf("dynmpv: loading libmpv: %w", errors.Join(errs...))
}

func (l *Library) register() (err error) {
	// RegisterLibFunc panics on a missing symbol.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("resolving symbol: %v", r)
		}
	}()
	purego.RegisterLibFunc(&l.clientAPIVersion, l.handle, "mpv_client_api_version")
	purego.RegisterLibFunc(&l.create, l.handle, "mpv_create")
	purego.RegisterLibFunc(&l.initialize, l.handle, "mpv_initialize")
	purego.RegisterLibFunc(&l.terminateDestroy, l.handle, "mpv_terminate_destroy")
	purego.RegisterLibFunc(&l.loadConfigFile, l.handle, "mpv_load_config_file")
	purego.RegisterLibFunc(&l.commandString, l.handle, "mpv_command_string")
	purego.RegisterLibFunc(&l.getProperty, l.handle, "mpv_get_property")
	purego.RegisterLibFunc(&l.setProperty, l.handle, "mpv_set_property")
	purego.RegisterLibFunc(&l.getTimeUS, l.handle, "mpv_get_time_us")
	purego.RegisterLibFunc(&l.requestEvent, l.handle, "mpv_request_event")
	purego.RegisterLibFunc(&l.free, l.handle, "mpv_free")
	return nil
}

// Close unloads the shared object. Every context created from l must be
// closed first.
func (l *Library) Close() error {
	return purego.Dlclose(l.handle)
}

func (l *Library) HeaderVersion() uint64 {
	return l.expected
}

func (l *Library) ClientAPIVersion() uint64 {
	return l.clientAPIVersion()
}

func (l *Library) Create() unsafe.Pointer {
	return l.create()
}

func (l *Library) Initialize(ctx unsafe.Pointer) int {
	return int(l.initialize(ctx))
}

func (l *Library) TerminateDestroy(ctx unsafe.Pointer) {
	l.terminateDestroy(ctx)
}

func (l *Library) LoadConfigFile(ctx unsafe.Pointer, filename *byte) int {
	return int(l.loadConfigFile(ctx, unsafe.Pointer(filename)))
}

func (l *Library) CommandString(ctx unsafe.Pointer, args *byte) int {
	return int(l.commandString(ctx, unsafe.Pointer(args)))
}

func (l *Library) GetProperty(ctx unsafe.Pointer, name *byte, format int, data unsafe.Pointer) int {
	return int(l.getProperty(ctx, unsafe.Pointer(name), int32(format), data))
}

func (l *Library) SetProperty(ctx unsafe.Pointer, name *byte, format int, data unsafe.Pointer) int {
	return int(l.setProperty(ctx, unsafe.Pointer(name), int32(format), data))
}

func (l *Library) GetTimeUS(ctx unsafe.Pointer) int64 {
	return l.getTimeUS(ctx)
}

func (l *Library) RequestEvent(ctx unsafe.Pointer, event int, enable int) int {
	return int(l.requestEvent(ctx, int32(event), int32(enable)))
}

func (l *Library) Free(data unsafe.Pointer) {
	l.free(data)
}
