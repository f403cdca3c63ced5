package mpv

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger atomic.Pointer[zap.Logger]
	nop    = zap.NewNop()
)

// Logger returns the package logger. It is a no-op logger unless SetLogger
// was called.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// SetLogger replaces the package logger. It may be called at any time; a nil
// logger restores the no-op default.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
