// Package mpv is the boundary between Go and the libmpv client API.
//
// libmpv exposes one opaque context pointer. Every value that crosses the
// boundary is tagged with a numeric format code and every failure comes back
// as an integer status. This package owns that context, moves typed values
// through untyped buffers (see [Getter] and [Setter]), frees strings with the
// allocator that produced them (see [NativeString]) and translates every
// status into one error taxonomy.
//
// The native entry points themselves are supplied by a [Library]. The libmpv
// subpackage links libmpv with cgo, dynmpv loads it at runtime, and mpvtest is
// an in-memory double for tests.
//
// A [Mpv] may be shared between goroutines. libmpv serializes context-scoped
// calls internally, so callers need no extra locking around Command,
// GetProperty or SetProperty.
package mpv
