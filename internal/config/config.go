// Package config loads mpvtui settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
)

// Backend names how libmpv is reached.
const (
	BackendCgo    = "cgo"
	BackendDlopen = "dlopen"
)

// Config holds all application configuration.
type Config struct {
	Backend     string `toml:"backend"`
	LibraryPath string `toml:"library_path"`
	APIVersion  string `toml:"api_version"`
	ConfigFile  string `toml:"config_file"`

	MediaDirs []string `toml:"media_dirs"`
	Resume    bool     `toml:"resume"`
	HistoryDB string   `toml:"history_db"`

	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	VolumeStep int     `toml:"volume_step"`
	SeekStep   float64 `toml:"seek_step"`

	// Options are applied to the libmpv context before initialization.
	Options map[string]string `toml:"options"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Backend:    BackendDlopen,
		APIVersion: "2.3",
		MediaDirs:  []string{"~/Music", "~/Videos"},
		Resume:     true,
		LogLevel:   "info",
		VolumeStep: 5,
		SeekStep:   5,
		Options: map[string]string{
			"input-default-bindings": "no",
			"input-terminal":         "no",
			"terminal":               "no",
		},
	}
}

func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mpvtui"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "mpvtui"), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file at the default path and merges it over the
// defaults. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case BackendCgo, BackendDlopen:
	default:
		return fmt.Errorf("unsupported backend %q (valid: cgo, dlopen)", c.Backend)
	}

	if _, err := c.ParseAPIVersion(); err != nil {
		return err
	}

	if c.ConfigFile != "" && !filepath.IsAbs(expandHome(c.ConfigFile)) {
		return fmt.Errorf("config_file %q must be an absolute path", c.ConfigFile)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	if c.VolumeStep < 1 || c.VolumeStep > 100 {
		return fmt.Errorf("volume_step %d out of range (1-100)", c.VolumeStep)
	}
	if c.SeekStep <= 0 || c.SeekStep > 600 {
		return fmt.Errorf("seek_step %g out of range (0-600]", c.SeekStep)
	}

	for name := range c.Options {
		if name == "" {
			return fmt.Errorf("empty option name in [options]")
		}
	}
	return nil
}

// ParseAPIVersion parses api_version ("major.minor") into the packed form
// libmpv reports from mpv_client_api_version.
func (c *Config) ParseAPIVersion() (uint64, error) {
	major, minor, ok := strings.Cut(c.APIVersion, ".")
	if !ok {
		return 0, fmt.Errorf("api_version %q: want major.minor", c.APIVersion)
	}
	hi, err := strconv.ParseUint(major, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("api_version %q: %w", c.APIVersion, err)
	}
	lo, err := strconv.ParseUint(minor, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("api_version %q: %w", c.APIVersion, err)
	}
	return hi<<16 | lo, nil
}

// ExpandMediaDirs resolves ~ in every media directory.
func (c *Config) ExpandMediaDirs() ([]string, error) {
	dirs := make([]string, 0, len(c.MediaDirs))
	for _, d := range c.MediaDirs {
		abs, err := filepath.Abs(expandHome(d))
		if err != nil {
			return nil, fmt.Errorf("resolving media dir %q: %w", d, err)
		}
		dirs = append(dirs, abs)
	}
	return dirs, nil
}

// ConfigFilePath returns config_file with ~ expanded, or "" when unset.
func (c *Config) ConfigFilePath() string {
	if c.ConfigFile == "" {
		return ""
	}
	return expandHome(c.ConfigFile)
}

// LogFilePath returns log_file with ~ expanded, or "" when unset.
func (c *Config) LogFilePath() string {
	if c.LogFile == "" {
		return ""
	}
	return expandHome(c.LogFile)
}

// HistoryPath returns the resume database path, defaulting to the XDG data
// directory.
func (c *Config) HistoryPath() (string, error) {
	if c.HistoryDB != "" {
		return expandHome(c.HistoryDB), nil
	}
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "mpvtui", "history.db"), nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
