// Package mpvtest provides an in-memory stand-in for libmpv.
//
// Library implements mpv.Library the way libmpv does at the byte level:
// flags are C ints, strings are NUL-terminated and returned strings come from
// a tracking allocator that must be released through Free. Every entry point
// is counted so tests can assert exactly which native calls happened.
package mpvtest

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"
)

// Entry point names used as keys for Calls.
const (
	CallClientAPIVersion = "client_api_version"
	CallCreate           = "create"
	CallInitialize       = "initialize"
	CallTerminateDestroy = "terminate_destroy"
	CallLoadConfigFile   = "load_config_file"
	CallCommandString    = "command_string"
	CallGetProperty      = "get_property"
	CallSetProperty      = "set_property"
	CallGetTimeUS        = "get_time_us"
	CallRequestEvent     = "request_event"
	CallFree             = "free"
)

// Status codes mirrored from client.h.
const (
	errInvalidParameter = -4
	errOptionNotFound   = -5
	errPropertyNotFound = -8
	errPropertyFormat   = -9
	errCommand          = -12
)

// mpv_format tags.
const (
	formatString = 1
	formatFlag   = 3
	formatInt64  = 4
	formatDouble = 5
)

// Version is the client API version reported by New.
const Version uint64 = 2<<16 | 1

type value struct {
	format int
	str    []byte // without NUL
	i64    int64
	f64    float64
	flag   int32
}

// Library is a fake libmpv. The zero value is not usable; call New.
type Library struct {
	mu sync.Mutex

	// Linked and Loaded are returned by HeaderVersion and ClientAPIVersion.
	Linked uint64
	Loaded uint64

	// NullCreate makes Create return nil.
	NullCreate bool
	// InitStatus is returned by Initialize.
	InitStatus int

	// CommandFunc, if set, decides the status of each command string.
	CommandFunc func(cmd string) int

	calls     map[string]int
	props     map[string]value
	commands  []string
	configs   []string
	events    map[int]bool
	allocs    map[*byte][]byte
	badFrees  int
	destroyed map[unsafe.Pointer]int
	contexts  []*byte
	clock     int64
}

// New returns a Library whose linked and loaded versions match.
func New() *Library {
	return &Library{
		Linked:    Version,
		Loaded:    Version,
		calls:     make(map[string]int),
		props:     make(map[string]value),
		events:    make(map[int]bool),
		allocs:    make(map[*byte][]byte),
		destroyed: make(map[unsafe.Pointer]int),
	}
}

func (l *Library) count(name string) {
	l.calls[name]++
}

// Calls returns how many times the named entry point was invoked.
func (l *Library) Calls(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[name]
}

// TotalCalls returns the number of native calls made, excluding the
// version queries.
func (l *Library) TotalCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for name, c := range l.calls {
		if name != CallClientAPIVersion {
			n += c
		}
	}
	return n
}

// Commands returns every command string received, in order.
func (l *Library) Commands() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.commands...)
}

// ConfigFiles returns every path passed to LoadConfigFile.
func (l *Library) ConfigFiles() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.configs...)
}

// EventEnabled reports the last RequestEvent state for id.
func (l *Library) EventEnabled(id int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events[id]
}

// LiveAllocations returns how many strings handed out by GetProperty have
// not been freed yet.
func (l *Library) LiveAllocations() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.allocs)
}

// BadFrees returns how many times Free was called with a pointer the
// library did not allocate, or one already freed.
func (l *Library) BadFrees() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.badFrees
}

// Destroyed returns how many times TerminateDestroy ran on any context.
func (l *Library) Destroyed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.destroyed {
		n += c
	}
	return n
}

// SetString stores a string property as libmpv would hold it.
func (l *Library) SetString(name, v string) {
	l.SetRawString(name, []byte(v))
}

// SetRawString stores arbitrary bytes as a string property, e.g. to hand out
// invalid UTF-8.
func (l *Library) SetRawString(name string, v []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.props[name] = value{format: formatString, str: append([]byte(nil), v...)}
}

// SetInt64 stores an int64 property.
func (l *Library) SetInt64(name string, v int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.props[name] = value{format: formatInt64, i64: v}
}

// SetDouble stores a double property.
func (l *Library) SetDouble(name string, v float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.props[name] = value{format: formatDouble, f64: v}
}

// SetFlag stores a flag property.
func (l *Library) SetFlag(name string, v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int32
	if v {
		n = 1
	}
	l.props[name] = value{format: formatFlag, flag: n}
}

// Property returns a stored property rendered as text, and whether it
// exists.
func (l *Library) Property(name string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.props[name]
	if !ok {
		return "", false
	}
	switch v.format {
	case formatString:
		return string(v.str), true
	case formatFlag:
		if v.flag != 0 {
			return "yes", true
		}
		return "no", true
	case formatInt64:
		return fmt.Sprint(v.i64), true
	default:
		return fmt.Sprint(v.f64), true
	}
}

// DeleteProperty removes a property so reads fail with "property not found".
func (l *Library) DeleteProperty(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.props, name)
}

func (l *Library) HeaderVersion() uint64 {
	return l.Linked
}

func (l *Library) ClientAPIVersion() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count(CallClientAPIVersion)
	return l.Loaded
}

func (l *Library) Create() unsafe.Pointer {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count(CallCreate)
	if l.NullCreate {
		return nil
	}
	ctx := new(byte)
	l.contexts = append(l.contexts, ctx)
	return unsafe.Pointer(ctx)
}

func (l *Library) Initialize(ctx unsafe.Pointer) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count(CallInitialize)
	return l.InitStatus
}

func (l *Library) TerminateDestroy(ctx unsafe.Pointer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count(CallTerminateDestroy)
	l.destroyed[ctx]++
	if l.destroyed[ctx] > 1 {
		panic("mpvtest: context destroyed twice")
	}
}

func (l *Library) LoadConfigFile(ctx unsafe.Pointer, filename *byte) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count(CallLoadConfigFile)
	l.configs = append(l.configs, goString(filename))
	return 0
}

func (l *Library) CommandString(ctx unsafe.Pointer, args *byte) int {
	cmd := goString(args)

	l.mu.Lock()
	l.count(CallCommandString)
	l.commands = append(l.commands, cmd)
	fn := l.CommandFunc
	l.mu.Unlock()

	if fn != nil {
		return fn(cmd)
	}
	if strings.TrimSpace(cmd) == "" {
		return errCommand
	}
	return 0
}

func (l *Library) GetProperty(ctx unsafe.Pointer, name *byte, format int, data unsafe.Pointer) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count(CallGetProperty)

	v, ok := l.props[goString(name)]
	if !ok {
		return errPropertyNotFound
	}
	if v.format != format {
		return errPropertyFormat
	}

	switch format {
	case formatString:
		buf := make([]byte, len(v.str)+1)
		copy(buf, v.str)
		l.allocs[&buf[0]] = buf
		*(**byte)(data) = &buf[0]
	case formatFlag:
		*(*int32)(data) = v.flag
	case formatInt64:
		*(*int64)(data) = v.i64
	case formatDouble:
		*(*float64)(data) = v.f64
	default:
		return errPropertyFormat
	}
	return 0
}

func (l *Library) SetProperty(ctx unsafe.Pointer, name *byte, format int, data unsafe.Pointer) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count(CallSetProperty)

	key := goString(name)
	if key == "" {
		return errOptionNotFound
	}

	switch format {
	case formatString:
		p := *(**byte)(data)
		if p == nil {
			return errInvalidParameter
		}
		l.props[key] = value{format: formatString, str: []byte(goString(p))}
	case formatFlag:
		// libmpv reads exactly a C int and rejects anything but 0 and 1.
		n := *(*int32)(data)
		if n != 0 && n != 1 {
			return errInvalidParameter
		}
		l.props[key] = value{format: formatFlag, flag: n}
	case formatInt64:
		l.props[key] = value{format: formatInt64, i64: *(*int64)(data)}
	case formatDouble:
		l.props[key] = value{format: formatDouble, f64: *(*float64)(data)}
	default:
		return errPropertyFormat
	}
	return 0
}

func (l *Library) GetTimeUS(ctx unsafe.Pointer) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count(CallGetTimeUS)
	l.clock += 1000
	return l.clock
}

func (l *Library) RequestEvent(ctx unsafe.Pointer, event int, enable int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count(CallRequestEvent)
	if event <= 0 || event > 25 {
		return errInvalidParameter
	}
	l.events[event] = enable != 0
	return 0
}

func (l *Library) Free(data unsafe.Pointer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count(CallFree)
	if data == nil {
		return
	}
	p := (*byte)(data)
	if _, ok := l.allocs[p]; !ok {
		l.badFrees++
		return
	}
	delete(l.allocs, p)
}

func goString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}
