package ui

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dewi-tim/mpvtui/internal/library"
	"github.com/dewi-tim/mpvtui/internal/player"
	"github.com/dewi-tim/mpvtui/internal/ui/components"
)

// fakePlayer records calls instead of playing anything.
type fakePlayer struct {
	mu       sync.Mutex
	calls    []string
	loaded   []string
	playlist []player.Entry
	track    *player.Track
	err      error
	ch       chan player.PlaybackInfo
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{ch: make(chan player.PlaybackInfo, 1)}
}

func (f *fakePlayer) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakePlayer) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakePlayer) Load(paths ...string) error {
	f.mu.Lock()
	f.loaded = paths
	f.playlist = nil
	for _, p := range paths {
		f.playlist = append(f.playlist, player.Entry{Path: p, Title: p})
	}
	f.mu.Unlock()
	return f.record("load")
}

func (f *fakePlayer) Enqueue(paths ...string) error {
	f.mu.Lock()
	f.loaded = paths
	f.mu.Unlock()
	return f.record("enqueue")
}

func (f *fakePlayer) Play() error                  { return f.record("play") }
func (f *fakePlayer) Pause() error                 { return f.record("pause") }
func (f *fakePlayer) Toggle() error                { return f.record("toggle") }
func (f *fakePlayer) Stop() error                  { return f.record("stop") }
func (f *fakePlayer) Next() error                  { return f.record("next") }
func (f *fakePlayer) Prev() error                  { return f.record("prev") }
func (f *fakePlayer) Jump(i int) error             { return f.record("jump") }
func (f *fakePlayer) Remove(i int) error           { return f.record("remove") }
func (f *fakePlayer) Move(from, to int) error      { return f.record(fmt.Sprintf("move %d %d", from, to)) }
func (f *fakePlayer) Shuffle() error               { return f.record("shuffle") }
func (f *fakePlayer) Seek(pos time.Duration) error { return f.record("seek " + pos.String()) }
func (f *fakePlayer) SeekRelative(d time.Duration) error {
	return f.record("seek-relative " + d.String())
}
func (f *fakePlayer) SetVolume(v float64) error              { return f.record("volume") }
func (f *fakePlayer) AdjustVolume(d int) error               { return f.record("adjust-volume") }
func (f *fakePlayer) SetSpeed(s float64) error               { return f.record(fmt.Sprintf("speed %.2f", s)) }
func (f *fakePlayer) ToggleMute() error                      { return f.record("mute") }
func (f *fakePlayer) Track() *player.Track                   { return f.track }
func (f *fakePlayer) Info() player.PlaybackInfo              { return player.PlaybackInfo{} }
func (f *fakePlayer) Subscribe() <-chan player.PlaybackInfo  { return f.ch }
func (f *fakePlayer) Unsubscribe(<-chan player.PlaybackInfo) {}
func (f *fakePlayer) Close() error                           { return nil }

func (f *fakePlayer) Playlist() ([]player.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]player.Entry(nil), f.playlist...), nil
}

var _ player.Player = (*fakePlayer)(nil)

func newTestModel(t *testing.T) (Model, *fakePlayer) {
	t.Helper()
	fp := newFakePlayer()
	m := New(fp, library.New(t.TempDir()), Options{SeekStep: 10 * time.Second, VolumeStep: 2})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), fp
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs the resulting command, if any.
func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(k)
	var msg tea.Msg
	if cmd != nil {
		msg = cmd()
	}
	return next.(Model), msg
}

func TestTransportKeys(t *testing.T) {
	m, fp := newTestModel(t)

	for _, k := range []tea.KeyMsg{
		{Type: tea.KeySpace, Runes: []rune{' '}},
		runes("n"),
		runes("N"),
		runes("f"),
		runes("b"),
		runes("+"),
		runes("-"),
		runes("m"),
	} {
		m, _ = press(t, m, k)
	}

	want := []string{
		"toggle", "next", "prev",
		"seek-relative 10s", "seek-relative -10s",
		"adjust-volume", "adjust-volume", "mute",
	}
	if diff := cmp.Diff(want, fp.Calls()); diff != "" {
		t.Errorf("player calls mismatch (-want +got):\n%s", diff)
	}
}

func TestPlaylistMoveRefreshes(t *testing.T) {
	m, fp := newTestModel(t)

	_, cmd := m.Update(components.PlaylistMoveMsg{From: 2, To: 0})
	require.NotNil(t, cmd)
	assert.IsType(t, PlaylistMsg{}, cmd())
	assert.Equal(t, []string{"move 2 0"}, fp.Calls())
}

func TestSpeedKeys(t *testing.T) {
	m, fp := newTestModel(t)

	m, _ = press(t, m, runes("]"))
	next, _ := m.Update(PlaybackMsg(player.PlaybackInfo{PlaylistPos: -1, Speed: 2}))
	m = next.(Model)
	m, _ = press(t, m, runes("["))
	press(t, m, runes(`\`))

	assert.Equal(t, []string{"speed 1.10", "speed 1.82", "speed 1.00"}, fp.Calls())
}

func TestHelpShowsSteps(t *testing.T) {
	km := NewKeyMap(Options{SeekStep: 2500 * time.Millisecond, VolumeStep: 3})
	assert.Equal(t, "+2.5s", km.SeekForward.Help().Desc)
	assert.Equal(t, "vol -3%", km.VolumeDown.Help().Desc)

	m, _ := newTestModel(t)
	assert.Contains(t, m.View(), "play/pause")
	m, _ = press(t, m, runes("?"))
	assert.Contains(t, m.View(), "+10s")
}

func TestStopRefreshesPlaylist(t *testing.T) {
	m, fp := newTestModel(t)

	_, msg := press(t, m, runes("s"))
	assert.Equal(t, []string{"stop"}, fp.Calls())
	assert.IsType(t, PlaylistMsg{}, msg)
}

func TestErrorShownInFooter(t *testing.T) {
	m, fp := newTestModel(t)
	fp.err = errors.New("mpv: property unavailable")

	m, msg := press(t, m, runes("n"))
	require.IsType(t, ErrMsg{}, msg)

	next, _ := m.Update(msg)
	assert.Contains(t, next.(Model).View(), "Error: mpv: property unavailable")
}

func TestFocusToggle(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, FocusLibrary, m.Focus())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusPlaylist, m.Focus())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusLibrary, m.Focus())
}

func TestLibrarySelectionLoads(t *testing.T) {
	m, fp := newTestModel(t)

	next, cmd := m.Update(components.LibItemsSelectedMsg{
		Items:   []library.Item{{Path: "/m/a.flac"}, {Path: "/m/b.flac"}},
		Replace: true,
	})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, []string{"load"}, fp.Calls())
	assert.Equal(t, []string{"/m/a.flac", "/m/b.flac"}, fp.loaded)

	pl, ok := msg.(PlaylistMsg)
	require.True(t, ok)
	next, _ = next.Update(pl)
	assert.Contains(t, next.(Model).View(), "Playlist (2)")
}

func TestLibraryEnqueue(t *testing.T) {
	m, fp := newTestModel(t)

	_, cmd := m.Update(components.LibItemsSelectedMsg{Items: []library.Item{{Path: "/m/c.flac"}}})
	cmd()
	assert.Equal(t, []string{"enqueue"}, fp.Calls())
}

func TestPlaybackUpdate(t *testing.T) {
	m, fp := newTestModel(t)
	fp.track = &player.Track{Path: "/m/a.flac", Title: "Opening", Artist: "Someone", Format: "flac"}

	info := player.PlaybackInfo{
		State:         player.StatePaused,
		Path:          "/m/a.flac",
		Position:      75 * time.Second,
		Duration:      200 * time.Second,
		PlaylistPos:   0,
		PlaylistCount: 0,
		Volume:        80,
		Speed:         1,
	}
	next, cmd := m.Update(PlaybackMsg(info))
	m = next.(Model)
	assert.True(t, m.IsPaused())
	require.NotNil(t, cmd)

	// The batch carries the track fetch; deliver it directly.
	next, _ = m.Update(TrackMsg{Track: fp.Track()})
	view := next.(Model).View()
	assert.Contains(t, view, "Opening")
	assert.Contains(t, view, "Someone")
	assert.Contains(t, view, "Paused")
	assert.Contains(t, view, "01:15")
	assert.Contains(t, view, "Vol 80%")
}

func TestPlaybackChannelClosed(t *testing.T) {
	fp := newFakePlayer()
	close(fp.ch)

	msg := waitForPlayback(fp.ch)()
	assert.IsType(t, playbackClosedMsg{}, msg)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "Goodbye!\n", next.(Model).View())
}

func TestTooSmall(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.True(t, strings.HasPrefix(next.(Model).View(), "Terminal too small"))
}

func TestElapsed(t *testing.T) {
	got := Elapsed(player.PlaybackInfo{Position: 61 * time.Second, Duration: 2 * time.Hour})
	assert.Equal(t, "01:01 / 2:00:00", got)
}
