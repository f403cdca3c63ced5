package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestScan(t *testing.T) {
	music := filepath.Join(t.TempDir(), "Music")
	videos := filepath.Join(t.TempDir(), "Videos")

	touch(t, filepath.Join(music, "Album", "10 Outro.flac"))
	touch(t, filepath.Join(music, "Album", "2 Intro.FLAC"))
	touch(t, filepath.Join(music, "Album", "cover.jpg"))
	touch(t, filepath.Join(music, ".hidden", "secret.mp3"))
	touch(t, filepath.Join(music, "single.opus"))
	touch(t, filepath.Join(videos, "Show", "S01", "e01.mkv"))

	lib := New(music, videos, filepath.Join(t.TempDir(), "missing"))
	n, err := lib.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, lib.Count())

	var names []string
	for _, f := range lib.Folders() {
		names = append(names, f.Name)
	}
	want := []string{"Music", filepath.Join("Music", "Album"), filepath.Join("Videos", "Show", "S01")}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("folders mismatch (-want +got):\n%s", diff)
	}

	album := lib.Folder(filepath.Join(music, "Album"))
	require.NotNil(t, album)
	require.Len(t, album.Items, 2)
	assert.Equal(t, "2 Intro", album.Items[0].Title)
	assert.Equal(t, "10 Outro", album.Items[1].Title)

	show := lib.Folder(filepath.Join(videos, "Show", "S01"))
	require.NotNil(t, show)
	assert.Equal(t, Video, show.Items[0].Kind)
}

func TestScanReplacesIndex(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.mp3"))

	lib := New(root)
	_, err := lib.Scan(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "a.mp3")))
	touch(t, filepath.Join(root, "b.mp3"))
	n, err := lib.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "b", lib.AllItems()[0].Title)
}

func TestScanCanceled(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.mp3"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(root).Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		ok   bool
	}{
		{"song.mp3", Audio, true},
		{"SONG.FLAC", Audio, true},
		{"movie.mkv", Video, true},
		{"notes.txt", Audio, false},
		{"noext", Audio, false},
	}
	for _, tt := range tests {
		kind, ok := KindOf(tt.name)
		if ok != tt.ok || (ok && kind != tt.kind) {
			t.Errorf("KindOf(%q) = %v, %v; want %v, %v", tt.name, kind, ok, tt.kind, tt.ok)
		}
	}
}

func TestNaturalLess(t *testing.T) {
	assert.True(t, naturalLess("2 a", "10 a"))
	assert.False(t, naturalLess("10 a", "2 a"))
	assert.True(t, naturalLess("Track 9", "track 10"))
	assert.True(t, naturalLess("abc", "abd"))
	assert.True(t, naturalLess("ab", "abc"))
	assert.True(t, naturalLess("01", "2"))
}
