package mpv

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dewi-tim/mpvtui/internal/mpv/mpvtest"
)

func TestCommandStrings(t *testing.T) {
	tests := []struct {
		name string
		run  func(m *Mpv) error
		want string
	}{
		{"add", func(m *Mpv) error { return m.AddProperty("volume", -5) }, "add volume -5"},
		{"cycle up", func(m *Mpv) error { return m.CycleProperty("sid", true) }, "cycle sid up"},
		{"cycle down", func(m *Mpv) error { return m.CycleProperty("sid", false) }, "cycle sid down"},
		{"multiply", func(m *Mpv) error { return m.MultiplyProperty("speed", 2) }, "multiply speed 2"},
		{"seek forward", func(m *Mpv) error { return m.SeekForward(2.5) }, "seek 2.5 relative"},
		{"seek backward", func(m *Mpv) error { return m.SeekBackward(10) }, "seek -10 relative"},
		{"seek absolute", func(m *Mpv) error { return m.SeekAbsolute(90) }, "seek 90 absolute"},
		{"seek percent", func(m *Mpv) error { return m.SeekPercent(-10) }, "seek -10 relative-percent"},
		{"seek percent absolute", func(m *Mpv) error { return m.SeekPercentAbsolute(50) }, "seek 50 absolute-percent"},
		{"revert", func(m *Mpv) error { return m.SeekRevert() }, "revert-seek"},
		{"revert mark", func(m *Mpv) error { return m.SeekRevertMark() }, "revert-seek mark"},
		{"frame", func(m *Mpv) error { return m.SeekFrame() }, "frame-step"},
		{"frame back", func(m *Mpv) error { return m.SeekFrameBackward() }, "frame-back-step"},
		{"screenshot", func(m *Mpv) error { return m.Screenshot(ScreenshotWindow) }, "screenshot window"},
		{"screenshot file", func(m *Mpv) error { return m.ScreenshotToFile("/tmp/a b.png", ScreenshotVideo) }, `screenshot-to-file "/tmp/a b.png" video`},
		{"loadlist", func(m *Mpv) error { return m.PlaylistLoadList("/m/list.m3u", true) }, `loadlist "/m/list.m3u" replace`},
		{"next weak", func(m *Mpv) error { return m.PlaylistNextWeak() }, "playlist-next weak"},
		{"prev force", func(m *Mpv) error { return m.PlaylistPreviousForce() }, "playlist-prev force"},
		{"clear", func(m *Mpv) error { return m.PlaylistClear() }, "playlist-clear"},
		{"remove current", func(m *Mpv) error { return m.PlaylistRemoveCurrent() }, "playlist-remove current"},
		{"remove index", func(m *Mpv) error { return m.PlaylistRemoveIndex(3) }, "playlist-remove 3"},
		{"move", func(m *Mpv) error { return m.PlaylistMove(4, 1) }, "playlist-move 4 1"},
		{"shuffle", func(m *Mpv) error { return m.PlaylistShuffle() }, "playlist-shuffle"},
		{"sub cached", func(m *Mpv) error { return m.SubtitleAddCached("/s/en.srt") }, `sub-add "/s/en.srt" cached`},
		{"sub remove", func(m *Mpv) error { return m.SubtitleRemove(2) }, "sub-remove 2"},
		{"sub reload current", func(m *Mpv) error { return m.SubtitleReloadCurrent() }, "sub-reload"},
		{"sub step", func(m *Mpv) error { return m.SubtitleStep(-1) }, "sub-step -1"},
		{"sub seek", func(m *Mpv) error { return m.SubtitleSeekForward() }, "sub-seek 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, lib := newTestMpv(t)
			require.NoError(t, tt.run(m))
			assert.Equal(t, []string{tt.want}, lib.Commands())
		})
	}
}

func TestPauseUnpause(t *testing.T) {
	m, lib := newTestMpv(t)

	require.NoError(t, m.Pause())
	v, _ := lib.Property("pause")
	assert.Equal(t, "yes", v)

	require.NoError(t, m.Unpause())
	v, _ = lib.Property("pause")
	assert.Equal(t, "no", v)
}

func TestPlaylistLoadFiles(t *testing.T) {
	m, lib := newTestMpv(t)

	err := m.PlaylistLoadFiles([]File{
		{Path: "/music/a song.flac", State: Replace},
		{Path: "/music/b.ogg", State: Append, Options: "start=30,volume=50"},
		{Path: "/music/c.mp3", State: AppendPlay},
	})
	require.NoError(t, err)

	want := []string{
		`loadfile "/music/a song.flac" replace`,
		`loadfile "/music/b.ogg" append start=30,volume=50`,
		`loadfile "/music/c.mp3" append-play`,
	}
	if diff := cmp.Diff(want, lib.Commands()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestPlaylistLoadFilesOptionsGrammar(t *testing.T) {
	tests := []struct {
		name    string
		version uint64
		want    string
	}{
		{"before insert index", MakeVersion(2, 1), `loadfile "/a.mkv" replace start=42.000`},
		{"insert index", MakeVersion(2, 3), `loadfile "/a.mkv" replace -1 start=42.000`},
		{"later api", MakeVersion(2, 5), `loadfile "/a.mkv" replace -1 start=42.000`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := mpvtest.New()
			lib.Linked, lib.Loaded = tt.version, tt.version
			m, err := New(lib)
			require.NoError(t, err)
			defer m.Close()

			require.NoError(t, m.PlaylistLoadFiles([]File{
				{Path: "/a.mkv", State: Replace, Options: "start=42.000"},
				{Path: "/b.mkv", State: Append},
			}))
			want := []string{tt.want, `loadfile "/b.mkv" append`}
			if diff := cmp.Diff(want, lib.Commands()); diff != "" {
				t.Errorf("commands mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlaylistLoadFilesStopsAtFailure(t *testing.T) {
	m, lib := newTestMpv(t)
	lib.CommandFunc = func(cmd string) int {
		if strings.Contains(cmd, "broken") {
			return int(ErrLoadingFailed)
		}
		return 0
	}

	err := m.PlaylistLoadFiles([]File{
		{Path: "/m/1.flac", State: Append},
		{Path: "/m/2.flac", State: Append},
		{Path: "/m/broken.flac", State: Append},
		{Path: "/m/4.flac", State: Append},
	})

	var lf *LoadfilesError
	require.ErrorAs(t, err, &lf)
	assert.Equal(t, 2, lf.Index)
	assert.ErrorIs(t, err, ErrLoadingFailed)

	want := []string{
		`loadfile "/m/1.flac" append`,
		`loadfile "/m/2.flac" append`,
		`loadfile "/m/broken.flac" append`,
	}
	if diff := cmp.Diff(want, lib.Commands()); diff != "" {
		t.Errorf("entries after the failure were submitted (-want +got):\n%s", diff)
	}
}

func TestPlaylistLoadFilesNulPath(t *testing.T) {
	m, lib := newTestMpv(t)

	err := m.PlaylistLoadFiles([]File{{Path: "/m/ok.flac"}, {Path: "/m/bad\x00.flac"}})

	var lf *LoadfilesError
	require.ErrorAs(t, err, &lf)
	assert.Equal(t, 1, lf.Index)
	assert.ErrorIs(t, err, ErrNull)
	assert.Len(t, lib.Commands(), 1)
}

func TestSubtitleAdd(t *testing.T) {
	m, lib := newTestMpv(t)

	require.NoError(t, m.SubtitleAddSelect("/s/a.srt", "", ""))
	require.NoError(t, m.SubtitleAddSelect("/s/a.srt", "Director's cut", ""))
	require.NoError(t, m.SubtitleAddAuto("/s/a.srt", "English", "en"))

	want := []string{
		`sub-add "/s/a.srt" select`,
		`sub-add "/s/a.srt" select "Director's cut"`,
		`sub-add "/s/a.srt" auto "English" "en"`,
	}
	if diff := cmp.Diff(want, lib.Commands()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestSubtitleLangWithoutTitlePanics(t *testing.T) {
	m, lib := newTestMpv(t)

	assert.PanicsWithValue(t, "mpv: subtitle language given without title", func() {
		_ = m.SubtitleAddSelect("/s/a.srt", "", "en")
	})
	assert.Panics(t, func() {
		_ = m.SubtitleAddAuto("/s/a.srt", "", "de")
	})
	assert.Empty(t, lib.Commands(), "command issued before panic")
}
