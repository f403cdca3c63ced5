package mpv

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"go.uber.org/zap"
)

// Mpv owns one libmpv context.
type Mpv struct {
	h       *handle
	version uint64
	cleanup runtime.Cleanup
}

// handle holds the native pointer. It is separate from Mpv so the GC cleanup
// can destroy the context without keeping the Mpv reachable.
type handle struct {
	lib Library

	// mu is held for reading around every native call and for writing by
	// destroy, so teardown never overlaps an in-flight call.
	mu  sync.RWMutex
	ctx unsafe.Pointer
}

func (h *handle) do(fn func(ctx unsafe.Pointer) error) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.ctx == nil {
		return ErrClosed
	}
	return fn(h.ctx)
}

func (h *handle) destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ctx != nil {
		h.lib.TerminateDestroy(h.ctx)
		h.ctx = nil
		Logger().Debug("mpv context destroyed")
	}
}

// Option configures a context before it is initialized.
type Option func(*options)

type options struct {
	preInit [][2]string
}

// WithOption sets a libmpv option before mpv_initialize runs. Options such as
// "vo", "config" or "input-default-bindings" only take effect this way.
func WithOption(name, value string) Option {
	return func(o *options) {
		o.preInit = append(o.preInit, [2]string{name, value})
	}
}

// New creates and initializes a libmpv context.
//
// The client API version is checked before any other native call. If
// initialization fails, the half-built context is destroyed before the error
// is returned.
func New(lib Library, opts ...Option) (*Mpv, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	linked, loaded := lib.HeaderVersion(), lib.ClientAPIVersion()
	if linked != loaded {
		return nil, VersionMismatchError{Linked: linked, Loaded: loaded}
	}

	ctx := lib.Create()
	if ctx == nil {
		return nil, ErrNull
	}
	h := &handle{lib: lib, ctx: ctx}

	for _, kv := range o.preInit {
		if err := setProperty[string](h, kv[0], String, kv[1]); err != nil {
			lib.TerminateDestroy(ctx)
			return nil, fmt.Errorf("setting option %s: %w", kv[0], err)
		}
	}

	if err := check(lib.Initialize(ctx)); err != nil {
		lib.TerminateDestroy(ctx)
		return nil, err
	}

	m := &Mpv{h: h, version: loaded}
	m.cleanup = runtime.AddCleanup(m, (*handle).destroy, h)

	Logger().Debug("mpv context initialized",
		zap.String("api_version", FormatVersion(loaded)),
		zap.Int("options", len(o.preInit)))
	return m, nil
}

// Close terminates playback and destroys the context. Later calls are no-ops;
// every other operation returns ErrClosed afterwards.
func (m *Mpv) Close() error {
	m.cleanup.Stop()
	m.h.destroy()
	return nil
}

// ClientAPIVersion reports the client API version of the loaded library.
func (m *Mpv) ClientAPIVersion() uint64 {
	return m.h.lib.ClientAPIVersion()
}

// LoadConfig loads a configuration file. The path must be absolute and name
// a file.
func (m *Mpv) LoadConfig(path string) error {
	file, err := cString(path)
	if err != nil {
		return err
	}
	err = m.h.do(func(ctx unsafe.Pointer) error {
		return check(m.h.lib.LoadConfigFile(ctx, &file[0]))
	})
	runtime.KeepAlive(file)
	return err
}

// Command runs a command through mpv_command_string, using the input.conf
// syntax. Arguments are joined with spaces and not escaped; wrap arguments
// that may contain spaces with Quote.
func (m *Mpv) Command(name string, args ...string) error {
	cmd, err := buildCommand(name, args)
	if err != nil {
		return err
	}
	err = m.h.do(func(ctx unsafe.Pointer) error {
		return check(m.h.lib.CommandString(ctx, &cmd[0]))
	})
	runtime.KeepAlive(cmd)
	return err
}

// GetProperty reads a property through g.
func GetProperty[T any](m *Mpv, name string, g Getter[T]) (T, error) {
	return getProperty[T](m.h, name, g)
}

// SetProperty writes v to a property through s.
func SetProperty[T any](m *Mpv, name string, s Setter[T], v T) error {
	return setProperty[T](m.h, name, s, v)
}

func getProperty[T any](h *handle, name string, g Getter[T]) (T, error) {
	var out T
	cname, err := cString(name)
	if err != nil {
		return out, err
	}
	format := g.Format().Native()
	err = h.do(func(ctx unsafe.Pointer) error {
		v, err := g.get(func(data unsafe.Pointer) error {
			return check(h.lib.GetProperty(ctx, &cname[0], format, data))
		}, h.lib.Free)
		out = v
		return err
	})
	runtime.KeepAlive(cname)
	return out, err
}

// setProperty works on the bare handle so New can apply options before the
// Mpv exists.
func setProperty[T any](h *handle, name string, s Setter[T], v T) error {
	cname, err := cString(name)
	if err != nil {
		return err
	}
	format := s.Format().Native()
	err = s.set(v, func(data unsafe.Pointer) error {
		return h.do(func(ctx unsafe.Pointer) error {
			return check(h.lib.SetProperty(ctx, &cname[0], format, data))
		})
	})
	runtime.KeepAlive(cname)
	return err
}

// GetDouble reads a property as float64.
func (m *Mpv) GetDouble(name string) (float64, error) {
	return getProperty[float64](m.h, name, Double)
}

// GetInt64 reads a property as int64.
func (m *Mpv) GetInt64(name string) (int64, error) {
	return getProperty[int64](m.h, name, Int64)
}

// GetFlag reads a property as bool.
func (m *Mpv) GetFlag(name string) (bool, error) {
	return getProperty[bool](m.h, name, Flag)
}

// GetString reads a property as a Go string.
func (m *Mpv) GetString(name string) (string, error) {
	return getProperty[string](m.h, name, String)
}

// SetDouble writes a float64 property.
func (m *Mpv) SetDouble(name string, v float64) error {
	return setProperty[float64](m.h, name, Double, v)
}

// SetInt64 writes an int64 property.
func (m *Mpv) SetInt64(name string, v int64) error {
	return setProperty[int64](m.h, name, Int64, v)
}

// SetFlag writes a bool property.
func (m *Mpv) SetFlag(name string, v bool) error {
	return setProperty[bool](m.h, name, Flag, v)
}

// SetString writes a string property.
func (m *Mpv) SetString(name string, v string) error {
	return setProperty[string](m.h, name, String, v)
}

// InternalTime returns libmpv's internal clock in microseconds. The clock has
// an arbitrary offset and never goes backwards. It returns 0 once the
// context is destroyed.
func (m *Mpv) InternalTime() int64 {
	var t int64
	_ = m.h.do(func(ctx unsafe.Pointer) error {
		t = m.h.lib.GetTimeUS(ctx)
		return nil
	})
	return t
}
