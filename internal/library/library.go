// Package library indexes audio and video files under a set of media roots.
package library

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Kind tells audio from video.
type Kind int

const (
	Audio Kind = iota
	Video
)

func (k Kind) String() string {
	if k == Video {
		return "video"
	}
	return "audio"
}

var extensions = map[string]Kind{
	".mp3": Audio, ".flac": Audio, ".ogg": Audio, ".opus": Audio, ".m4a": Audio,
	".aac": Audio, ".wav": Audio, ".wv": Audio, ".ape": Audio, ".mka": Audio,
	".mkv": Video, ".mp4": Video, ".webm": Video, ".avi": Video, ".mov": Video,
	".m4v": Video, ".wmv": Video, ".ts": Video, ".mpg": Video, ".mpeg": Video,
}

// Item is one media file in the library.
type Item struct {
	Path    string
	Title   string
	Folder  string
	Kind    Kind
	Size    int64
	ModTime time.Time
}

// Folder is a directory holding media files.
type Folder struct {
	Name  string
	Path  string
	Items []Item
}

// Library is an index of media files.
type Library struct {
	mu      sync.RWMutex
	roots   []string
	folders map[string]*Folder
	items   []Item
}

// New creates a library over the given root directories.
func New(roots ...string) *Library {
	return &Library{
		roots:   roots,
		folders: make(map[string]*Folder),
	}
}

// Roots returns the library root directories.
func (l *Library) Roots() []string {
	return l.roots
}

// Scan walks every root concurrently and replaces the index. Unreadable
// entries and missing roots are skipped. It returns the number of items
// found.
func (l *Library) Scan(ctx context.Context) (int, error) {
	found := make([][]Item, len(l.roots))

	g, ctx := errgroup.WithContext(ctx)
	for i, root := range l.roots {
		g.Go(func() error {
			items, err := scanRoot(ctx, root)
			found[i] = items
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	folders := make(map[string]*Folder)
	var items []Item
	for _, batch := range found {
		for _, it := range batch {
			items = append(items, it)
			dir := filepath.Dir(it.Path)
			f, ok := folders[dir]
			if !ok {
				f = &Folder{Name: it.Folder, Path: dir}
				folders[dir] = f
			}
			f.Items = append(f.Items, it)
		}
	}
	for _, f := range folders {
		sort.Slice(f.Items, func(i, j int) bool {
			return naturalLess(f.Items[i].Title, f.Items[j].Title)
		})
	}

	l.mu.Lock()
	l.folders = folders
	l.items = items
	l.mu.Unlock()

	return len(items), nil
}

func scanRoot(ctx context.Context, root string) ([]Item, error) {
	var items []Item
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil // skip what we can't access
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		kind, ok := KindOf(d.Name())
		if !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil || rel == "." {
			rel = ""
		}
		items = append(items, Item{
			Path:    path,
			Title:   strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			Folder:  filepath.Join(filepath.Base(root), rel),
			Kind:    kind,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	return items, err
}

// Folders returns every folder sorted by display name.
func (l *Library) Folders() []*Folder {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Folder, 0, len(l.folders))
	for _, f := range l.folders {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// Folder returns the folder at dir, or nil.
func (l *Library) Folder(dir string) *Folder {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.folders[dir]
}

// AllItems returns every item in scan order.
func (l *Library) AllItems() []Item {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]Item, len(l.items))
	copy(result, l.items)
	return result
}

// Count returns the total number of items.
func (l *Library) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.items)
}

// KindOf reports the media kind for a file name and whether it is media at
// all.
func KindOf(name string) (Kind, bool) {
	k, ok := extensions[strings.ToLower(filepath.Ext(name))]
	return k, ok
}

// naturalLess orders "2 track" before "10 track".
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		da, db := leadingDigits(a), leadingDigits(b)
		if da != "" && db != "" {
			na, nb := strings.TrimLeft(da, "0"), strings.TrimLeft(db, "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			a, b = a[len(da):], b[len(db):]
			continue
		}
		ca, cb := strings.ToLower(a[:1]), strings.ToLower(b[:1])
		if ca != cb {
			return ca < cb
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
