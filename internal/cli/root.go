// Package cli implements the mpvtui commands using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dewi-tim/mpvtui/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// app carries flags and the merged configuration between commands.
type app struct {
	cfg *config.Config

	flagConfig   string
	flagBackend  string
	flagLibrary  string
	flagLogLevel string
	flagLogFile  string
	flagNoResume bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mpvtui [files...]",
		Short: "Play media from the terminal with libmpv",
		Long: `mpvtui is a terminal media player built on libmpv.
Without a subcommand it opens the library browser; files given as arguments
are queued and played immediately.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.loadConfig,
		RunE:              a.runRoot,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/mpvtui/config.toml)")
	pf.StringVar(&a.flagBackend, "backend", "", "libmpv backend: cgo | dlopen")
	pf.StringVar(&a.flagLibrary, "library", "", "Path to libmpv for the dlopen backend")
	pf.StringVar(&a.flagLogLevel, "log-level", "", "Log level: debug | info | warn | error")
	pf.StringVar(&a.flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&a.flagNoResume, "no-resume", false, "Neither restore nor remember playback positions")

	root.AddCommand(a.playCmd())
	root.AddCommand(a.getCmd())
	root.AddCommand(a.setCmd())
	root.AddCommand(a.commandCmd())
	root.AddCommand(a.historyCmd())
	root.AddCommand(a.versionCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges configuration: defaults < config file < CLI flags.
func (a *app) loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if a.flagConfig != "" {
		a.cfg, err = config.LoadFile(a.flagConfig)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if a.flagBackend != "" {
		a.cfg.Backend = a.flagBackend
	}
	if a.flagLibrary != "" {
		a.cfg.LibraryPath = a.flagLibrary
	}
	if a.flagLogLevel != "" {
		a.cfg.LogLevel = a.flagLogLevel
	}
	if a.flagLogFile != "" {
		a.cfg.LogFile = a.flagLogFile
	}
	if a.flagNoResume {
		a.cfg.Resume = false
	}

	// Re-validate after flag overrides
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
