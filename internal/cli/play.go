package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dewi-tim/mpvtui/internal/library"
	"github.com/dewi-tim/mpvtui/internal/mpv"
	"github.com/dewi-tim/mpvtui/internal/player"
	"github.com/dewi-tim/mpvtui/internal/ui"
)

// startTimeout bounds how long headless playback waits for the first file
// to start before giving up.
const startTimeout = 15 * time.Second

func (a *app) playCmd() *cobra.Command {
	var noVideo bool
	c := &cobra.Command{
		Use:   "play <files...>",
		Short: "Play files without the TUI and exit when done",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var extra []mpv.Option
			if noVideo {
				extra = append(extra, mpv.WithOption("vid", "no"))
			}
			return a.playHeadless(cmd.Context(), cmd.OutOrStdout(), args, extra...)
		},
	}
	c.Flags().BoolVar(&noVideo, "no-video", false, "Disable video output")
	return c
}

// newPlayer starts a session and wraps it in a player. Closing the player
// does not release the session.
func (a *app) newPlayer(tui bool, extra ...mpv.Option) (*session, *player.MpvPlayer, error) {
	s, err := a.open(tui, extra...)
	if err != nil {
		return nil, nil, err
	}

	opts := []player.Option{player.WithLogger(s.log.Named("player"))}
	if s.store != nil {
		opts = append(opts, player.WithPositionStore(s.store))
	}
	p, err := player.NewMpvPlayer(s.mpv, opts...)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return s, p, nil
}

func absPaths(files []string) []string {
	out := make([]string, len(files))
	for i, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			f = abs
		}
		out[i] = f
	}
	return out
}

// playHeadless plays files and prints progress until the playlist ends or
// the process is interrupted.
func (a *app) playHeadless(ctx context.Context, out io.Writer, files []string, extra ...mpv.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	s, p, err := a.newPlayer(false, extra...)
	if err != nil {
		return err
	}
	defer s.Close()
	defer p.Close()

	updates := p.Subscribe()
	if err := p.Load(absPaths(files)...); err != nil {
		return err
	}

	started := false
	timeout := time.After(startTimeout)
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case <-timeout:
			if !started {
				return errors.New("playback did not start")
			}
		case info, ok := <-updates:
			if !ok {
				return nil
			}
			if info.State == player.StateStopped {
				if started {
					fmt.Fprintln(out)
					return nil
				}
				continue
			}
			started = true
			fmt.Fprintf(out, "\r\033[K%s %s  %s", stateMarker(info.State), info.Title, ui.Elapsed(info))
		}
	}
}

func stateMarker(s player.PlayState) string {
	if s == player.StatePaused {
		return "||"
	}
	return ">"
}

// runRoot opens the TUI, or falls back to headless playback when stdout is
// not a terminal.
func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		if len(args) == 0 {
			return errors.New("stdout is not a terminal; pass files to play or use a subcommand")
		}
		return a.playHeadless(cmd.Context(), cmd.OutOrStdout(), args)
	}

	dirs, err := a.cfg.ExpandMediaDirs()
	if err != nil {
		return err
	}

	s, p, err := a.newPlayer(true)
	if err != nil {
		return err
	}
	defer s.Close()
	defer p.Close()

	if len(args) > 0 {
		if err := p.Load(absPaths(args)...); err != nil {
			return err
		}
	}

	model := ui.New(p, library.New(dirs...), ui.Options{
		SeekStep:   time.Duration(a.cfg.SeekStep * float64(time.Second)),
		VolumeStep: a.cfg.VolumeStep,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		s.log.Error("ui exited", zap.Error(err))
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
