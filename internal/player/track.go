// Package player drives playback through a libmpv context.
package player

import "time"

// Track is metadata for the current file, read once when it becomes
// current.
type Track struct {
	Path string // as given to loadfile; may be a URL

	Title  string // media-title, falls back to the file name
	Artist string // metadata/by-key/artist
	Album  string // metadata/by-key/album
	Format string // file-format, e.g. "flac", "matroska,webm"

	Duration time.Duration
}

// Entry is one playlist entry.
type Entry struct {
	Path  string
	Title string
}

// PlayState is derived from mpv's idle-active and pause properties.
type PlayState int

const (
	StateStopped PlayState = iota // idle, nothing loaded
	StatePlaying
	StatePaused
)

var stateNames = [...]string{"Stopped", "Playing", "Paused"}

func (s PlayState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// PlaybackInfo is one polled snapshot of the context.
type PlaybackInfo struct {
	State PlayState

	Path  string
	Title string

	Position time.Duration // time-pos
	Duration time.Duration // duration, zero for live streams

	PlaylistPos   int // 0-based, -1 when nothing is selected
	PlaylistCount int

	Volume float64 // percent, up to MaxVolume
	Speed  float64
	Muted  bool
}

// Progress returns Position as a fraction of Duration, clamped to [0, 1].
func (p PlaybackInfo) Progress() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return min(max(float64(p.Position)/float64(p.Duration), 0), 1)
}

// Remaining returns the time left, never negative.
func (p PlaybackInfo) Remaining() time.Duration {
	return max(p.Duration-p.Position, 0)
}

func fromSeconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
