package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dewi-tim/mpvtui/internal/player"
	"github.com/dewi-tim/mpvtui/internal/ui/components"
)

// Message types for the TUI.
type (
	// PlaybackMsg carries a playback snapshot from the player.
	PlaybackMsg player.PlaybackInfo

	// playbackClosedMsg is sent when the player stops publishing.
	playbackClosedMsg struct{}

	// TrackMsg carries metadata for a newly current file.
	TrackMsg struct{ Track *player.Track }

	// PlaylistMsg carries the player's playlist.
	PlaylistMsg struct{ Entries []player.Entry }

	// ErrMsg reports a failed player call.
	ErrMsg struct{ Err error }
)

// errorDisplayTime is how long an error stays in the footer.
const errorDisplayTime = 5 * time.Second

func waitForPlayback(ch <-chan player.PlaybackInfo) tea.Cmd {
	return func() tea.Msg {
		info, ok := <-ch
		if !ok {
			return playbackClosedMsg{}
		}
		return PlaybackMsg(info)
	}
}

func fetchTrack(p player.Player) tea.Cmd {
	return func() tea.Msg {
		return TrackMsg{Track: p.Track()}
	}
}

func refreshPlaylist(p player.Player) tea.Cmd {
	return func() tea.Msg {
		entries, err := p.Playlist()
		if err != nil {
			// No playlist yet reads as an empty one.
			return PlaylistMsg{}
		}
		return PlaylistMsg{Entries: entries}
	}
}

// do runs a player call and reports its error, then refreshes the playlist
// when the call may have changed it.
func do(fn func() error, p player.Player, playlistChanged bool) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return ErrMsg{Err: err}
		}
		if playlistChanged {
			return refreshPlaylist(p)()
		}
		return nil
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case PlaybackMsg:
		info := player.PlaybackInfo(msg)
		var cmds []tea.Cmd
		if info.Path != m.playback.Path {
			cmds = append(cmds, fetchTrack(m.player))
		}
		if info.PlaylistCount != m.playlist.Len() {
			cmds = append(cmds, refreshPlaylist(m.player))
		}
		m.playback = info
		m.playlist.SetCurrent(info.PlaylistPos)
		cmds = append(cmds, waitForPlayback(m.sub))
		return m, tea.Batch(cmds...)

	case playbackClosedMsg:
		return m, nil

	case TrackMsg:
		m.currentTrack = msg.Track
		return m, nil

	case PlaylistMsg:
		entries := make([]components.Entry, len(msg.Entries))
		for i, e := range msg.Entries {
			entries[i] = components.Entry{Path: e.Path, Title: e.Title}
		}
		m.playlist.SetEntries(entries)
		m.playlist.SetCurrent(m.playback.PlaylistPos)
		return m, nil

	case ErrMsg:
		m.lastError = msg.Err.Error()
		m.errorTime = time.Now()
		return m, nil

	case components.LibScanCompleteMsg:
		cmd := m.browser.Update(msg)
		if msg.Err != nil {
			m.lastError = msg.Err.Error()
			m.errorTime = time.Now()
		}
		return m, cmd

	case components.LibItemsSelectedMsg:
		paths := make([]string, len(msg.Items))
		for i, it := range msg.Items {
			paths[i] = it.Path
		}
		load := m.player.Enqueue
		if msg.Replace {
			load = m.player.Load
		}
		return m, do(func() error { return load(paths...) }, m.player, true)

	case components.PlaylistJumpMsg:
		return m, do(func() error { return m.player.Jump(msg.Index) }, m.player, false)

	case components.PlaylistRemoveMsg:
		return m, do(func() error { return m.player.Remove(msg.Index) }, m.player, true)

	case components.PlaylistMoveMsg:
		return m, do(func() error { return m.player.Move(msg.From, msg.To) }, m.player, true)

	case components.PlaylistShuffleMsg:
		return m, do(m.player.Shuffle, m.player, true)
	}

	return m, nil
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.player

	// Global key bindings (work regardless of focus)
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.PlayPause):
		return m, do(p.Toggle, p, false)

	case key.Matches(msg, m.keyMap.Next):
		return m, do(p.Next, p, false)

	case key.Matches(msg, m.keyMap.Prev):
		return m, do(p.Prev, p, false)

	case key.Matches(msg, m.keyMap.Stop):
		return m, do(p.Stop, p, true)

	case key.Matches(msg, m.keyMap.SeekForward):
		step := m.opts.SeekStep
		return m, do(func() error { return p.SeekRelative(step) }, p, false)

	case key.Matches(msg, m.keyMap.SeekBackward):
		step := m.opts.SeekStep
		return m, do(func() error { return p.SeekRelative(-step) }, p, false)

	case key.Matches(msg, m.keyMap.VolumeUp):
		step := m.opts.VolumeStep
		return m, do(func() error { return p.AdjustVolume(step) }, p, false)

	case key.Matches(msg, m.keyMap.VolumeDown):
		step := m.opts.VolumeStep
		return m, do(func() error { return p.AdjustVolume(-step) }, p, false)

	case key.Matches(msg, m.keyMap.Mute):
		return m, do(p.ToggleMute, p, false)

	case key.Matches(msg, m.keyMap.SpeedUp):
		speed := m.playback.Speed * speedFactor
		return m, do(func() error { return p.SetSpeed(speed) }, p, false)

	case key.Matches(msg, m.keyMap.SpeedDown):
		speed := m.playback.Speed / speedFactor
		return m, do(func() error { return p.SetSpeed(speed) }, p, false)

	case key.Matches(msg, m.keyMap.SpeedReset):
		return m, do(func() error { return p.SetSpeed(1) }, p, false)

	case key.Matches(msg, m.keyMap.TabFocus):
		if m.focus == FocusLibrary {
			m.focus = FocusPlaylist
			m.browser.Blur()
			m.playlist.Focus()
		} else {
			m.focus = FocusLibrary
			m.playlist.Blur()
			m.browser.Focus()
		}
		return m, nil
	}

	// Panel-specific key handling
	switch m.focus {
	case FocusLibrary:
		return m, m.browser.Update(msg)
	case FocusPlaylist:
		var cmd tea.Cmd
		m.playlist, cmd = m.playlist.Update(msg)
		return m, cmd
	}
	return m, nil
}
