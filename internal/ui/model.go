package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dewi-tim/mpvtui/internal/library"
	"github.com/dewi-tim/mpvtui/internal/player"
	"github.com/dewi-tim/mpvtui/internal/ui/components"
)

// Focus represents which panel is currently focused.
type Focus int

const (
	FocusLibrary Focus = iota
	FocusPlaylist
)

// Options holds the tunables the model takes from configuration.
type Options struct {
	SeekStep   time.Duration
	VolumeStep int
}

// Model is the main Bubbletea model for mpvtui.
type Model struct {
	// Window dimensions
	width  int
	height int

	focus Focus

	player player.Player
	sub    <-chan player.PlaybackInfo

	// UI Components
	browser  *components.LibBrowser
	playlist components.Playlist
	progress components.ProgressBar
	help     help.Model

	keyMap KeyMap
	opts   Options

	// UI state
	showHelp  bool
	quitting  bool
	lastError string
	errorTime time.Time

	playback     player.PlaybackInfo
	currentTrack *player.Track

	styles Styles
}

// New creates a Model driving p and browsing lib.
func New(p player.Player, lib *library.Library, opts Options) Model {
	if opts.SeekStep <= 0 {
		opts.SeekStep = 5 * time.Second
	}
	if opts.VolumeStep <= 0 {
		opts.VolumeStep = 5
	}

	browser := components.NewLibBrowser(lib)
	browser.Focus()

	styles := DefaultStyles()
	h := help.New()
	h.Styles = styles.HelpStyles()

	return Model{
		focus:    FocusLibrary,
		player:   p,
		sub:      p.Subscribe(),
		browser:  browser,
		playlist: components.NewPlaylist(),
		progress: components.NewProgressBar(),
		help:     h,
		keyMap:   NewKeyMap(opts),
		opts:     opts,
		styles:   styles,
		playback: player.PlaybackInfo{PlaylistPos: -1, Speed: 1},
	}
}

// Init starts the library scan and listens for playback updates.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.browser.Init(),
		waitForPlayback(m.sub),
		refreshPlaylist(m.player),
	)
}

// Width returns the current window width.
func (m Model) Width() int {
	return m.width
}

// Height returns the current window height.
func (m Model) Height() int {
	return m.height
}

// Focus returns the currently focused panel.
func (m Model) Focus() Focus {
	return m.focus
}

// Playback returns the last playback snapshot.
func (m Model) Playback() player.PlaybackInfo {
	return m.playback
}

// IsPlaying returns true if playback is active.
func (m Model) IsPlaying() bool {
	return m.playback.State == player.StatePlaying
}

// IsPaused returns true if playback is paused.
func (m Model) IsPaused() bool {
	return m.playback.State == player.StatePaused
}

// IsStopped returns true if playback is stopped.
func (m Model) IsStopped() bool {
	return m.playback.State == player.StateStopped
}
