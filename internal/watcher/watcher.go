// Package watcher provides a debounced file watcher for song files so that
// a burst of editor writes triggers a single re-validation.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// songExtensions are the file extensions treated as ChordPro content.
var songExtensions = map[string]bool{
	".cho":      true,
	".chordpro": true,
	".crd":      true,
	".pro":      true,
	".txt":      true,
}

// IsSongFile reports whether path looks like a ChordPro song file.
func IsSongFile(path string) bool {
	return songExtensions[strings.ToLower(filepath.Ext(path))]
}

// Handler receives the deduplicated set of changed paths after the
// debounce window closes.
type Handler func(paths []string)

// FileWatcher watches song files and directories, grouping rapid changes
// with a debounce window before invoking the handler.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	delay   time.Duration

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer
	handler Handler
}

// New creates a file watcher with the given debounce delay.
func New(delay time.Duration) (*FileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher: fsw,
		delay:   delay,
		pending: make(map[string]bool),
	}, nil
}

// AddPath registers a file or directory for watching. Directories are
// watched non-recursively; fsnotify reports their direct children.
func (fw *FileWatcher) AddPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if !info.IsDir() && !IsSongFile(path) {
		return fmt.Errorf("watch %s: not a song file", path)
	}

	return fw.watcher.Add(path)
}

// Watch blocks, delivering debounced change batches to handler until the
// context is cancelled or the underlying watcher closes.
func (fw *FileWatcher) Watch(ctx context.Context, handler Handler) error {
	fw.mu.Lock()
	fw.handler = handler
	fw.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !IsSongFile(event.Name) {
				continue
			}
			fw.enqueue(event.Name)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

// Close stops the watcher and releases its resources.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mu.Unlock()

	return fw.watcher.Close()
}

func (fw *FileWatcher) enqueue(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.pending[path] = true
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.delay, fw.flush)
}

func (fw *FileWatcher) flush() {
	fw.mu.Lock()
	paths := make([]string, 0, len(fw.pending))
	for path := range fw.pending {
		paths = append(paths, path)
	}
	fw.pending = make(map[string]bool)
	handler := fw.handler
	fw.mu.Unlock()

	if handler == nil || len(paths) == 0 {
		return
	}
	sort.Strings(paths)
	handler(paths)
}
