package player

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dewi-tim/mpvtui/internal/history"
	"github.com/dewi-tim/mpvtui/internal/mpv"
)

const (
	DefaultTickInterval = 250 * time.Millisecond

	MaxVolume = 130.0
	MinSpeed  = 0.01
	MaxSpeed  = 100.0
)

// Player is the high-level interface for playback.
type Player interface {
	// Load replaces the playlist with paths and starts the first one.
	Load(paths ...string) error
	// Enqueue appends paths to the playlist, starting playback if idle.
	Enqueue(paths ...string) error

	// Play resumes playback.
	Play() error
	// Pause pauses playback.
	Pause() error
	// Toggle toggles between play and pause.
	Toggle() error
	// Stop stops playback and clears the playlist.
	Stop() error

	// Next plays the next playlist entry.
	Next() error
	// Prev plays the previous playlist entry.
	Prev() error
	// Jump plays the playlist entry at index.
	Jump(index int) error
	// Remove removes the playlist entry at index.
	Remove(index int) error
	// Move moves the playlist entry at from so that it ends up at index to.
	Move(from, to int) error
	// Shuffle shuffles the playlist.
	Shuffle() error

	// Seek seeks to a position in the current file.
	Seek(pos time.Duration) error
	// SeekRelative seeks relative to the current position.
	SeekRelative(delta time.Duration) error

	// SetVolume sets the volume in percent (0 - 130).
	SetVolume(vol float64) error
	// AdjustVolume adds delta percent to the volume.
	AdjustVolume(delta int) error
	// SetSpeed sets the playback speed.
	SetSpeed(speed float64) error
	// ToggleMute toggles audio mute.
	ToggleMute() error

	// Track returns metadata about the current file, or nil.
	Track() *Track
	// Playlist returns the playlist entries in order.
	Playlist() ([]Entry, error)
	// Info returns current playback information.
	Info() PlaybackInfo

	// Subscribe returns a channel that receives playback info updates.
	Subscribe() <-chan PlaybackInfo
	// Unsubscribe removes a subscription channel.
	Unsubscribe(ch <-chan PlaybackInfo)

	// Close releases all resources.
	Close() error
}

// PositionStore remembers where files were left.
type PositionStore interface {
	SavePosition(ctx context.Context, e history.Entry) error
	Position(ctx context.Context, path string) (float64, bool, error)
}

// Option configures an MpvPlayer.
type Option func(*MpvPlayer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(p *MpvPlayer) { p.log = log }
}

// WithPositionStore enables resuming files from store.
func WithPositionStore(store PositionStore) Option {
	return func(p *MpvPlayer) { p.store = store }
}

// WithTickInterval sets how often subscribers are updated.
func WithTickInterval(d time.Duration) Option {
	return func(p *MpvPlayer) { p.tick = d }
}

// MpvPlayer implements Player on top of a libmpv context.
type MpvPlayer struct {
	m     *mpv.Mpv
	log   *zap.Logger
	store PositionStore
	tick  time.Duration

	// last is the most recent snapshot taken by the tick loop, used to save
	// the position of a file once it stops being current.
	mu   sync.Mutex
	last PlaybackInfo

	ctx    context.Context
	cancel context.CancelFunc

	// Subscribers for playback info updates
	subscribers map[chan PlaybackInfo]struct{}
	subMu       sync.RWMutex

	tickWg    sync.WaitGroup
	closeOnce sync.Once
}

// NewMpvPlayer takes ownership of m and starts polling it.
func NewMpvPlayer(m *mpv.Mpv, opts ...Option) (*MpvPlayer, error) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &MpvPlayer{
		m:           m,
		log:         zap.NewNop(),
		tick:        DefaultTickInterval,
		ctx:         ctx,
		cancel:      cancel,
		subscribers: make(map[chan PlaybackInfo]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}

	// State is polled, so no event needs to be queued.
	if err := m.DisableAllEvents(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to configure events: %w", err)
	}

	p.tickWg.Add(1)
	go p.tickLoop()

	return p, nil
}

// Mpv returns the underlying context.
func (p *MpvPlayer) Mpv() *mpv.Mpv {
	return p.m
}

// Load replaces the playlist with paths and starts the first one.
func (p *MpvPlayer) Load(paths ...string) error {
	p.saveCurrent()
	return p.loadFiles(paths, mpv.Replace)
}

// Enqueue appends paths to the playlist, starting playback if idle.
func (p *MpvPlayer) Enqueue(paths ...string) error {
	return p.loadFiles(paths, mpv.AppendPlay)
}

func (p *MpvPlayer) loadFiles(paths []string, first mpv.FileState) error {
	if len(paths) == 0 {
		return errors.New("no files to load")
	}

	files := make([]mpv.File, len(paths))
	for i, path := range paths {
		state := first
		if i > 0 {
			state = mpv.Append
		}
		files[i] = mpv.File{Path: path, State: state, Options: p.resumeOption(path)}
	}

	err := p.m.PlaylistLoadFiles(files)
	var lf *mpv.LoadfilesError
	if errors.As(err, &lf) {
		p.log.Warn("file rejected",
			zap.String("path", files[lf.Index].Path),
			zap.Int("index", lf.Index),
			zap.Error(lf.Err))
		return fmt.Errorf("failed to load %s: %w", files[lf.Index].Path, err)
	}
	if err != nil {
		return fmt.Errorf("failed to load files: %w", err)
	}

	p.log.Debug("files queued", zap.Int("count", len(files)), zap.Stringer("mode", first))
	return nil
}

// resumeOption returns the loadfile option that starts path at its saved
// position, or "".
func (p *MpvPlayer) resumeOption(path string) string {
	if p.store == nil {
		return ""
	}
	pos, ok, err := p.store.Position(p.ctx, path)
	if err != nil {
		p.log.Warn("failed to read resume position", zap.String("path", path), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	p.log.Debug("resuming", zap.String("path", path), zap.Float64("position", pos))
	return "start=" + strconv.FormatFloat(pos, 'f', 3, 64)
}

// Play resumes playback.
func (p *MpvPlayer) Play() error {
	return p.m.Unpause()
}

// Pause pauses playback.
func (p *MpvPlayer) Pause() error {
	return p.m.Pause()
}

// Toggle toggles between play and pause.
func (p *MpvPlayer) Toggle() error {
	return p.m.CycleProperty("pause", true)
}

// Stop stops playback and clears the playlist.
func (p *MpvPlayer) Stop() error {
	p.saveCurrent()
	return p.m.Command("stop")
}

// Next plays the next playlist entry.
func (p *MpvPlayer) Next() error {
	return p.m.PlaylistNextWeak()
}

// Prev plays the previous playlist entry.
func (p *MpvPlayer) Prev() error {
	return p.m.PlaylistPreviousWeak()
}

// Jump plays the playlist entry at index.
func (p *MpvPlayer) Jump(index int) error {
	return p.m.SetInt64("playlist-pos", int64(index))
}

// Remove removes the playlist entry at index.
func (p *MpvPlayer) Remove(index int) error {
	return p.m.PlaylistRemoveIndex(index)
}

// Move moves the playlist entry at from so that it ends up at index to.
func (p *MpvPlayer) Move(from, to int) error {
	if from == to {
		return nil
	}
	// playlist-move inserts before its target entry, so moving down needs
	// the entry after the destination.
	if to > from {
		to++
	}
	return p.m.PlaylistMove(from, to)
}

// Shuffle shuffles the playlist.
func (p *MpvPlayer) Shuffle() error {
	return p.m.PlaylistShuffle()
}

// Seek seeks to a position in the current file.
func (p *MpvPlayer) Seek(pos time.Duration) error {
	if pos < 0 {
		pos = 0
	}
	return p.m.SeekAbsolute(pos.Seconds())
}

// SeekRelative seeks relative to the current position.
func (p *MpvPlayer) SeekRelative(delta time.Duration) error {
	if delta < 0 {
		return p.m.SeekBackward((-delta).Seconds())
	}
	return p.m.SeekForward(delta.Seconds())
}

// SetVolume sets the volume in percent (0 - 130).
func (p *MpvPlayer) SetVolume(vol float64) error {
	return p.m.SetDouble("volume", min(max(vol, 0), MaxVolume))
}

// AdjustVolume adds delta percent to the volume.
func (p *MpvPlayer) AdjustVolume(delta int) error {
	return p.m.AddProperty("volume", delta)
}

// SetSpeed sets the playback speed.
func (p *MpvPlayer) SetSpeed(speed float64) error {
	return p.m.SetDouble("speed", min(max(speed, MinSpeed), MaxSpeed))
}

// ToggleMute toggles audio mute.
func (p *MpvPlayer) ToggleMute() error {
	return p.m.CycleProperty("mute", true)
}

// Track returns metadata about the current file, or nil when idle.
func (p *MpvPlayer) Track() *Track {
	path, err := p.m.GetString("path")
	if err != nil || path == "" {
		return nil
	}

	t := &Track{Path: path}
	t.Title = p.stringProp("media-title")
	if t.Title == "" {
		t.Title = filepath.Base(path)
	}
	t.Artist = p.stringProp("metadata/by-key/artist")
	t.Album = p.stringProp("metadata/by-key/album")
	t.Format = p.stringProp("file-format")
	if d, err := p.m.GetDouble("duration"); err == nil {
		t.Duration = fromSeconds(d)
	}
	return t
}

// Playlist returns the playlist entries in order.
func (p *MpvPlayer) Playlist() ([]Entry, error) {
	n, err := p.m.GetInt64("playlist-count")
	if err != nil {
		return nil, fmt.Errorf("failed to read playlist: %w", err)
	}
	entries := make([]Entry, 0, n)
	for i := range int(n) {
		path, err := p.m.GetString(fmt.Sprintf("playlist/%d/filename", i))
		if err != nil {
			return nil, fmt.Errorf("failed to read playlist entry %d: %w", i, err)
		}
		title := p.stringProp(fmt.Sprintf("playlist/%d/title", i))
		if title == "" {
			title = filepath.Base(path)
		}
		entries = append(entries, Entry{Path: path, Title: title})
	}
	return entries, nil
}

func (p *MpvPlayer) stringProp(name string) string {
	s, err := p.m.GetString(name)
	if err != nil {
		return ""
	}
	return s
}

// Info returns current playback information. Properties that are
// unavailable, e.g. time-pos while idle, read as zero.
func (p *MpvPlayer) Info() PlaybackInfo {
	info := PlaybackInfo{PlaylistPos: -1, Speed: 1}

	if v, err := p.m.GetString("path"); err == nil {
		info.Path = v
	}
	if v, err := p.m.GetString("media-title"); err == nil {
		info.Title = v
	}
	if v, err := p.m.GetDouble("time-pos"); err == nil {
		info.Position = fromSeconds(v)
	}
	if v, err := p.m.GetDouble("duration"); err == nil {
		info.Duration = fromSeconds(v)
	}
	if v, err := p.m.GetInt64("playlist-pos"); err == nil {
		info.PlaylistPos = int(v)
	}
	if v, err := p.m.GetInt64("playlist-count"); err == nil {
		info.PlaylistCount = int(v)
	}
	if v, err := p.m.GetDouble("volume"); err == nil {
		info.Volume = v
	}
	if v, err := p.m.GetDouble("speed"); err == nil {
		info.Speed = v
	}
	if v, err := p.m.GetFlag("mute"); err == nil {
		info.Muted = v
	}

	idle, _ := p.m.GetFlag("idle-active")
	paused, _ := p.m.GetFlag("pause")
	switch {
	case idle || info.Path == "":
		info.State = StateStopped
	case paused:
		info.State = StatePaused
	default:
		info.State = StatePlaying
	}
	return info
}

// Subscribe returns a channel that receives playback info updates.
func (p *MpvPlayer) Subscribe() <-chan PlaybackInfo {
	p.subMu.Lock()
	defer p.subMu.Unlock()

	ch := make(chan PlaybackInfo, 1)
	if p.subscribers == nil {
		close(ch)
		return ch
	}
	p.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription channel.
func (p *MpvPlayer) Unsubscribe(ch <-chan PlaybackInfo) {
	p.subMu.Lock()
	defer p.subMu.Unlock()

	for subCh := range p.subscribers {
		if subCh == ch {
			delete(p.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// tickLoop polls libmpv and sends playback info to subscribers.
func (p *MpvPlayer) tickLoop() {
	defer p.tickWg.Done()

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			info := p.Info()

			p.mu.Lock()
			prev := p.last
			p.last = info
			p.mu.Unlock()

			if prev.Path != "" && prev.Path != info.Path {
				p.save(prev)
			}

			// Send to all subscribers (non-blocking)
			p.subMu.RLock()
			for ch := range p.subscribers {
				select {
				case ch <- info:
				default:
					// Drop if channel is full
				}
			}
			p.subMu.RUnlock()
		}
	}
}

func (p *MpvPlayer) saveCurrent() {
	if p.store == nil {
		return
	}
	info := p.Info()
	if info.Path == "" {
		return
	}
	p.save(info)
}

func (p *MpvPlayer) save(info PlaybackInfo) {
	if p.store == nil {
		return
	}
	err := p.store.SavePosition(context.Background(), history.Entry{
		Path:     info.Path,
		Title:    info.Title,
		Position: info.Position.Seconds(),
		Duration: info.Duration.Seconds(),
	})
	if err != nil {
		p.log.Warn("failed to save position", zap.String("path", info.Path), zap.Error(err))
	}
}

// Close saves the current position and destroys the libmpv context.
func (p *MpvPlayer) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.cancel()
		p.tickWg.Wait()

		p.saveCurrent()

		// Close subscribers (safe now that tickLoop has exited)
		p.subMu.Lock()
		for ch := range p.subscribers {
			close(ch)
		}
		p.subscribers = nil
		p.subMu.Unlock()

		err = p.m.Close()
	})
	return err
}

// Ensure MpvPlayer implements Player
var _ Player = (*MpvPlayer)(nil)
