package components

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Entry is one row of the playlist. It mirrors player.Entry so components
// need not import the player.
type Entry struct {
	Path  string
	Title string
}

// PlaylistKeyMap defines keybindings for the playlist component.
type PlaylistKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	Remove   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Shuffle  key.Binding
}

// DefaultPlaylistKeyMap returns the default keybindings for the playlist.
func DefaultPlaylistKeyMap() PlaylistKeyMap {
	return PlaylistKeyMap{
		Up:       bind("k/up", "up", "k", "up"),
		Down:     bind("j/down", "down", "j", "down"),
		Top:      bind("g", "top", "g", "home"),
		Bottom:   bind("G", "bottom", "G", "end"),
		PageUp:   bind("pgup", "page up", "pgup", "ctrl+u"),
		PageDown: bind("pgdn", "page down", "pgdown", "ctrl+d"),
		Select:   bind("enter/l", "play", "enter", "l"),
		Remove:   bind("d", "remove", "d"),
		MoveUp:   bind("K", "move up", "K"),
		MoveDown: bind("J", "move down", "J"),
		Shuffle:  bind("r", "shuffle", "r"),
	}
}

// PlaylistJumpMsg asks for the entry at Index to be played.
type PlaylistJumpMsg struct{ Index int }

// PlaylistRemoveMsg asks for the entry at Index to be removed.
type PlaylistRemoveMsg struct{ Index int }

// PlaylistMoveMsg asks for the entry at From to be moved to To.
type PlaylistMoveMsg struct{ From, To int }

// PlaylistShuffleMsg asks for the playlist to be shuffled.
type PlaylistShuffleMsg struct{}

// Playlist shows libmpv's playlist.
type Playlist struct {
	table   table.Model
	entries []Entry
	current int // Currently playing index (-1 if none)
	focused bool

	keyMap PlaylistKeyMap

	// Dimensions
	width  int
	height int
}

// NewPlaylist creates a new Playlist component.
func NewPlaylist() Playlist {
	t := table.New(
		table.WithColumns(playlistColumns(40)),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(5),
	)

	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#A0A0A0")).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)
	s.Selected = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7571F9"))
	t.SetStyles(s)

	return Playlist{
		table:   t,
		current: -1,
		keyMap:  DefaultPlaylistKeyMap(),
		width:   40,
		height:  10,
	}
}

// playlistColumns splits width between the index, title and folder columns.
func playlistColumns(width int) []table.Column {
	numWidth := 5 // index with "> " marker
	folderWidth := max(8, width*30/100)
	titleWidth := max(10, width-numWidth-folderWidth)
	return []table.Column{
		{Title: "#", Width: numWidth},
		{Title: "Title", Width: titleWidth},
		{Title: "Folder", Width: folderWidth},
	}
}

// Update handles messages for the playlist.
func (p Playlist) Update(msg tea.Msg) (Playlist, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch {
	case key.Matches(km, p.keyMap.Up):
		p.table.MoveUp(1)
	case key.Matches(km, p.keyMap.Down):
		p.table.MoveDown(1)
	case key.Matches(km, p.keyMap.Top):
		p.table.GotoTop()
	case key.Matches(km, p.keyMap.Bottom):
		p.table.GotoBottom()
	case key.Matches(km, p.keyMap.PageUp):
		p.table.MoveUp(p.table.Height())
	case key.Matches(km, p.keyMap.PageDown):
		p.table.MoveDown(p.table.Height())
	case key.Matches(km, p.keyMap.Select):
		if i := p.Cursor(); i >= 0 {
			return p, emit(PlaylistJumpMsg{Index: i})
		}
	case key.Matches(km, p.keyMap.Remove):
		if i := p.Cursor(); i >= 0 {
			return p, emit(PlaylistRemoveMsg{Index: i})
		}
	case key.Matches(km, p.keyMap.MoveUp):
		if i := p.Cursor(); i > 0 {
			p.table.MoveUp(1)
			return p, emit(PlaylistMoveMsg{From: i, To: i - 1})
		}
	case key.Matches(km, p.keyMap.MoveDown):
		if i := p.Cursor(); i >= 0 && i < len(p.entries)-1 {
			p.table.MoveDown(1)
			return p, emit(PlaylistMoveMsg{From: i, To: i + 1})
		}
	case key.Matches(km, p.keyMap.Shuffle):
		if len(p.entries) > 1 {
			return p, emit(PlaylistShuffleMsg{})
		}
	}
	return p, nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the playlist.
func (p Playlist) View() string {
	if len(p.entries) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#606060")).
			Render("Playlist is empty")
	}
	return p.table.View()
}

// Title returns the panel title with entry count.
func (p Playlist) Title() string {
	if len(p.entries) == 0 {
		return "Playlist"
	}
	if p.current >= 0 {
		return fmt.Sprintf("Playlist (%d/%d)", p.current+1, len(p.entries))
	}
	return fmt.Sprintf("Playlist (%d)", len(p.entries))
}

// SetSize sets the size of the playlist component.
func (p *Playlist) SetSize(width, height int) {
	p.width = width
	p.height = height

	available := max(30, width-6) // borders and padding
	p.table.SetColumns(playlistColumns(available))
	p.table.SetWidth(available)
	// Height minus header row and borders
	p.table.SetHeight(max(1, height-4))
}

// Focus sets the playlist to focused state.
func (p *Playlist) Focus() {
	p.focused = true
	p.table.Focus()
}

// Blur removes focus from the playlist.
func (p *Playlist) Blur() {
	p.focused = false
	p.table.Blur()
}

// Focused returns whether the playlist is focused.
func (p Playlist) Focused() bool {
	return p.focused
}

// SetEntries replaces the shown entries.
func (p *Playlist) SetEntries(entries []Entry) {
	p.entries = entries
	if p.current >= len(entries) {
		p.current = -1
	}
	p.updateRows()
	if c := p.table.Cursor(); c >= len(entries) {
		p.table.SetCursor(max(0, len(entries)-1))
	}
}

// SetCurrent marks the playing entry; -1 clears the marker.
func (p *Playlist) SetCurrent(i int) {
	if i == p.current {
		return
	}
	p.current = i
	p.updateRows()
}

// Current returns the playing index, or -1.
func (p Playlist) Current() int {
	return p.current
}

// Len returns the number of entries.
func (p Playlist) Len() int {
	return len(p.entries)
}

// Cursor returns the index under the cursor, or -1 when empty.
func (p Playlist) Cursor() int {
	if len(p.entries) == 0 {
		return -1
	}
	return p.table.Cursor()
}

func (p *Playlist) updateRows() {
	rows := make([]table.Row, len(p.entries))
	for i, e := range p.entries {
		num := fmt.Sprintf("  %d", i+1)
		if i == p.current {
			num = fmt.Sprintf("> %d", i+1)
		}
		rows[i] = table.Row{num, e.Title, filepath.Base(filepath.Dir(e.Path))}
	}
	p.table.SetRows(rows)
}
