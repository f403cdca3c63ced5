package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dewi-tim/mpvtui/internal/config"
	"github.com/dewi-tim/mpvtui/internal/history"
	"github.com/dewi-tim/mpvtui/internal/mpv"
	"github.com/dewi-tim/mpvtui/internal/mpv/dynmpv"
	"github.com/dewi-tim/mpvtui/internal/mpv/libmpv"
)

// openBackend resolves the libmpv entry points for cfg. unload must run after
// every context created from lib is closed.
var openBackend = func(cfg *config.Config) (lib mpv.Library, unload func() error, err error) {
	switch strings.ToLower(cfg.Backend) {
	case config.BackendCgo:
		l, err := libmpv.Open()
		if err != nil {
			return nil, nil, err
		}
		return l, func() error { return nil }, nil
	default:
		version, err := cfg.ParseAPIVersion()
		if err != nil {
			return nil, nil, err
		}
		l, err := dynmpv.Open(cfg.LibraryPath, version)
		if err != nil {
			return nil, nil, err
		}
		return l, l.Close, nil
	}
}

// newLogger builds the application logger from log_level and log_file.
// Without a log file, logs go to stderr unless the TUI owns the terminal.
func newLogger(cfg *config.Config, tui bool) (*zap.Logger, error) {
	path := cfg.LogFilePath()
	if path == "" && tui {
		return zap.NewNop(), nil
	}
	if path == "" {
		path = "stderr"
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoder := zap.NewProductionEncoderConfig()
	encoder.EncodeTime = zapcore.ISO8601TimeEncoder
	zc := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "console",
		EncoderConfig:    encoder,
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}

// session is one initialized libmpv context plus what it needs around it.
type session struct {
	log    *zap.Logger
	mpv    *mpv.Mpv
	store  *history.Store // nil unless resume is on
	unload func() error
}

// open starts a session. extra options are applied after the configured ones.
func (a *app) open(tui bool, extra ...mpv.Option) (*session, error) {
	log, err := newLogger(a.cfg, tui)
	if err != nil {
		return nil, err
	}
	mpv.SetLogger(log.Named("mpv"))

	lib, unload, err := openBackend(a.cfg)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("failed to load libmpv: %w", err)
	}

	var opts []mpv.Option
	for _, name := range slices.Sorted(maps.Keys(a.cfg.Options)) {
		opts = append(opts, mpv.WithOption(name, a.cfg.Options[name]))
	}
	opts = append(opts, extra...)

	m, err := mpv.New(lib, opts...)
	if err != nil {
		unload()
		log.Sync()
		return nil, fmt.Errorf("failed to create mpv context: %w", err)
	}
	s := &session{log: log, mpv: m, unload: unload}

	if path := a.cfg.ConfigFilePath(); path != "" {
		if err := m.LoadConfig(path); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if a.cfg.Resume {
		path, err := a.cfg.HistoryPath()
		if err == nil {
			s.store, err = history.Open(path)
		}
		if err != nil {
			// Playback works without resume positions.
			log.Warn("history unavailable", zap.Error(err))
			s.store = nil
		}
	}

	log.Debug("session opened",
		zap.String("backend", a.cfg.Backend),
		zap.Bool("resume", s.store != nil))
	return s, nil
}

// Close destroys the context, then releases the library and history.
func (s *session) Close() error {
	err := s.mpv.Close()
	err = errors.Join(err, s.unload())
	if s.store != nil {
		err = errors.Join(err, s.store.Close())
	}
	s.log.Sync()
	return err
}
