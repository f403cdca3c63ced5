package mpv

import (
	"strconv"
)

// --- Property helpers ---

// AddProperty adds value (which may be negative) to a numeric property.
// Overflow clamps to the property's range.
func (m *Mpv) AddProperty(name string, value int) error {
	return m.Command("add", name, strconv.Itoa(value))
}

// CycleProperty cycles a property up or down, wrapping at either end.
func (m *Mpv) CycleProperty(name string, up bool) error {
	dir := "down"
	if up {
		dir = "up"
	}
	return m.Command("cycle", name, dir)
}

// MultiplyProperty multiplies a numeric property by factor.
func (m *Mpv) MultiplyProperty(name string, factor uint) error {
	return m.Command("multiply", name, strconv.FormatUint(uint64(factor), 10))
}

// Pause pauses playback.
func (m *Mpv) Pause() error {
	return m.SetFlag("pause", true)
}

// Unpause resumes playback.
func (m *Mpv) Unpause() error {
	return m.SetFlag("pause", false)
}

// --- Seeking ---

func formatSeconds(secs float64) string {
	return strconv.FormatFloat(secs, 'f', -1, 64)
}

// SeekForward seeks forward by secs relative to the current position. This
// is less exact than SeekAbsolute.
func (m *Mpv) SeekForward(secs float64) error {
	return m.Command("seek", formatSeconds(secs), "relative")
}

// SeekBackward seeks backward by secs relative to the current position.
func (m *Mpv) SeekBackward(secs float64) error {
	return m.Command("seek", formatSeconds(-secs), "relative")
}

// SeekAbsolute seeks to secs from the start of the file.
func (m *Mpv) SeekAbsolute(secs float64) error {
	return m.Command("seek", formatSeconds(secs), "absolute")
}

// SeekPercent seeks by percent of the total play time, which may be
// negative. Seeking past the end plays the next file.
func (m *Mpv) SeekPercent(percent int) error {
	return m.Command("seek", strconv.Itoa(percent), "relative-percent")
}

// SeekPercentAbsolute seeks to percent of the total play time.
func (m *Mpv) SeekPercentAbsolute(percent uint) error {
	return m.Command("seek", strconv.FormatUint(uint64(percent), 10), "absolute-percent")
}

// SeekRevert undoes the previous seek. Calling it twice undoes itself.
func (m *Mpv) SeekRevert() error {
	return m.Command("revert-seek")
}

// SeekRevertMark marks the current position as the SeekRevert target.
func (m *Mpv) SeekRevertMark() error {
	return m.Command("revert-seek", "mark")
}

// SeekFrame steps one frame forward and pauses. It does nothing on
// audio-only streams.
func (m *Mpv) SeekFrame() error {
	return m.Command("frame-step")
}

// SeekFrameBackward steps one frame backward and pauses.
func (m *Mpv) SeekFrameBackward() error {
	return m.Command("frame-back-step")
}

// --- Screenshots ---

// ScreenshotMode selects what a screenshot contains.
type ScreenshotMode int

const (
	// ScreenshotSubtitles saves the video in its original resolution, with
	// subtitles.
	ScreenshotSubtitles ScreenshotMode = iota
	// ScreenshotVideo saves the video without OSD or subtitles.
	ScreenshotVideo
	// ScreenshotWindow saves the window contents, scaled, with OSD and
	// subtitles.
	ScreenshotWindow
)

func (s ScreenshotMode) String() string {
	switch s {
	case ScreenshotVideo:
		return "video"
	case ScreenshotWindow:
		return "window"
	default:
		return "subtitles"
	}
}

// Screenshot saves a screenshot using the configured screenshot template.
func (m *Mpv) Screenshot(mode ScreenshotMode) error {
	return m.Command("screenshot", mode.String())
}

// ScreenshotToFile saves a screenshot to path, overwriting it. The image
// format is guessed from the extension.
func (m *Mpv) ScreenshotToFile(path string, mode ScreenshotMode) error {
	return m.Command("screenshot-to-file", Quote(path), mode.String())
}

// --- Playlist ---

// FileState selects how a loaded file is inserted into the playlist.
type FileState int

const (
	// Replace stops playback and replaces the playlist.
	Replace FileState = iota
	// Append appends to the playlist.
	Append
	// AppendPlay appends, and starts playback if nothing is playing.
	AppendPlay
)

func (f FileState) String() string {
	switch f {
	case Append:
		return "append"
	case AppendPlay:
		return "append-play"
	default:
		return "replace"
	}
}

var loadfileIndexVersion = MakeVersion(2, 3)

// File is one entry of a batch load.
type File struct {
	Path  string
	State FileState
	// Options is an optional comma-separated list of per-file options,
	// e.g. "start=30,volume=50".
	Options string
}

// PlaylistLoadFiles submits files to libmpv in order. It stops at the first
// entry libmpv refuses and returns a *LoadfilesError carrying its index.
//
// loadfile is asynchronous: a nil error means every entry was accepted for
// loading, not that any of them finished loading, and nothing is implied
// about the order in which they complete. Per-file options are applied while
// the file loads.
func (m *Mpv) PlaylistLoadFiles(files []File) error {
	for i, f := range files {
		args := []string{Quote(f.Path), f.State.String()}
		if f.Options != "" {
			// Client API 2.3 (mpv 0.38) added an insert index before the
			// options; -1 keeps the flag's own placement.
			if m.version >= loadfileIndexVersion {
				args = append(args, "-1")
			}
			args = append(args, f.Options)
		}
		if err := m.Command("loadfile", args...); err != nil {
			return &LoadfilesError{Index: i, Err: err}
		}
	}
	return nil
}

// PlaylistLoadList loads a playlist file, replacing or appending to the
// current playlist.
func (m *Mpv) PlaylistLoadList(path string, replace bool) error {
	mode := "append"
	if replace {
		mode = "replace"
	}
	return m.Command("loadlist", Quote(path), mode)
}

// PlaylistNextWeak plays the next entry. It does nothing on the last entry.
func (m *Mpv) PlaylistNextWeak() error {
	return m.Command("playlist-next", "weak")
}

// PlaylistNextForce plays the next entry, stopping playback on the last one.
func (m *Mpv) PlaylistNextForce() error {
	return m.Command("playlist-next", "force")
}

// PlaylistPreviousWeak plays the previous entry. It does nothing on the
// first entry.
func (m *Mpv) PlaylistPreviousWeak() error {
	return m.Command("playlist-prev", "weak")
}

// PlaylistPreviousForce plays the previous entry, stopping playback on the
// first one.
func (m *Mpv) PlaylistPreviousForce() error {
	return m.Command("playlist-prev", "force")
}

// PlaylistClear removes every entry except the current one.
func (m *Mpv) PlaylistClear() error {
	return m.Command("playlist-clear")
}

// PlaylistRemoveCurrent removes the current entry.
func (m *Mpv) PlaylistRemoveCurrent() error {
	return m.Command("playlist-remove", "current")
}

// PlaylistRemoveIndex removes the entry at index.
func (m *Mpv) PlaylistRemoveIndex(index int) error {
	return m.Command("playlist-remove", strconv.Itoa(index))
}

// PlaylistMove moves the entry at from so that it takes the place of the
// entry at to.
func (m *Mpv) PlaylistMove(from, to int) error {
	return m.Command("playlist-move", strconv.Itoa(from), strconv.Itoa(to))
}

// PlaylistShuffle shuffles the playlist.
func (m *Mpv) PlaylistShuffle() error {
	return m.Command("playlist-shuffle")
}

// --- Subtitles ---

func (m *Mpv) subtitleAdd(path, flag, title, lang string) error {
	args := []string{Quote(path), flag}
	switch {
	case title == "" && lang != "":
		panic("mpv: subtitle language given without title")
	case title != "" && lang != "":
		args = append(args, Quote(title), Quote(lang))
	case title != "":
		args = append(args, Quote(title))
	}
	return m.Command("sub-add", args...)
}

// SubtitleAddSelect adds a subtitle file and selects it. title and lang are
// optional, but a language requires a title.
//
// It panics if lang is set and title is empty.
func (m *Mpv) SubtitleAddSelect(path, title, lang string) error {
	return m.subtitleAdd(path, "select", title, lang)
}

// SubtitleAddAuto adds a subtitle file without selecting it, leaving the
// choice to the default stream selection.
//
// It panics if lang is set and title is empty.
func (m *Mpv) SubtitleAddAuto(path, title, lang string) error {
	return m.subtitleAdd(path, "auto", title, lang)
}

// SubtitleAddCached selects a subtitle file, reusing an already added entry
// with the same file name instead of loading it again.
func (m *Mpv) SubtitleAddCached(path string) error {
	return m.Command("sub-add", Quote(path), "cached")
}

// SubtitleRemove removes the external subtitle track id.
func (m *Mpv) SubtitleRemove(id int) error {
	return m.Command("sub-remove", strconv.Itoa(id))
}

// SubtitleRemoveCurrent removes the current external subtitle track.
func (m *Mpv) SubtitleRemoveCurrent() error {
	return m.Command("sub-remove")
}

// SubtitleReload reloads the external subtitle track id.
func (m *Mpv) SubtitleReload(id int) error {
	return m.Command("sub-reload", strconv.Itoa(id))
}

// SubtitleReloadCurrent reloads the current external subtitle track.
func (m *Mpv) SubtitleReloadCurrent() error {
	return m.Command("sub-reload")
}

// SubtitleStep shifts subtitle timing so the event skip events away is shown
// now. skip may be negative.
func (m *Mpv) SubtitleStep(skip int) error {
	return m.Command("sub-step", strconv.Itoa(skip))
}

// SubtitleSeekForward seeks to the next subtitle event.
func (m *Mpv) SubtitleSeekForward() error {
	return m.Command("sub-seek", "1")
}

// SubtitleSeekBackward seeks to the previous subtitle event.
func (m *Mpv) SubtitleSeekBackward() error {
	return m.Command("sub-seek", "-1")
}
