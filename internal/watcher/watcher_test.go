package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSongFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.cho", true},
		{"song.chordpro", true},
		{"song.crd", true},
		{"song.pro", true},
		{"lyrics.txt", true},
		{"SONG.CHO", true},
		{"/some/dir/nested.cho", true},
		{"song.go", false},
		{"song", false},
		{".cho", true},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSongFile(tt.path), "path %q", tt.path)
	}
}

func TestAddPathRejectsNonSongFile(t *testing.T) {
	fw, err := New(50 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main"), 0o644))

	assert.Error(t, fw.AddPath(path))
}

func TestAddPathMissing(t *testing.T) {
	fw, err := New(50 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	assert.Error(t, fw.AddPath(filepath.Join(t.TempDir(), "nope.cho")))
}

func TestDebouncedBatch(t *testing.T) {
	fw, err := New(100 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	batches := make(chan []string, 1)
	fw.mu.Lock()
	fw.handler = func(paths []string) { batches <- paths }
	fw.mu.Unlock()

	// A burst of changes inside the window collapses into one sorted batch.
	fw.enqueue("b.cho")
	fw.enqueue("a.cho")
	fw.enqueue("b.cho")

	select {
	case paths := <-batches:
		assert.Equal(t, []string{"a.cho", "b.cho"}, paths)
	case <-time.After(time.Second):
		t.Fatal("debounce window never flushed")
	}
}

func TestWatchDeliversWrites(t *testing.T) {
	dir := t.TempDir()
	song := filepath.Join(dir, "song.cho")
	require.NoError(t, os.WriteFile(song, []byte("{title: x}"), 0o644))

	fw, err := New(50 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()
	require.NoError(t, fw.AddPath(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- fw.Watch(ctx, func(paths []string) { batches <- paths })
	}()

	// Give the watch loop a moment to start before touching the file.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(song, []byte("{title: y}"), 0o644))

	select {
	case paths := <-batches:
		require.Len(t, paths, 1)
		assert.Equal(t, song, paths[0])
	case <-time.After(3 * time.Second):
		t.Fatal("no batch delivered for write")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	fw, err := New(50 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()
	require.NoError(t, fw.AddPath(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	go fw.Watch(ctx, func(paths []string) { batches <- paths }) //nolint:errcheck

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644))

	select {
	case paths := <-batches:
		t.Fatalf("unexpected batch for non-song file: %v", paths)
	case <-time.After(300 * time.Millisecond):
	}
}
