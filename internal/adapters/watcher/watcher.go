package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"unique"

	"github.com/fsnotify/fsnotify"
	"github.com/uibind/uibind/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

// skipDirs are directories excluded from watching. The build tree churns
// constantly and never holds public headers.
var skipDirs = map[string]bool{
	".git":  true,
	"build": true,
}

const eventChannelBuffer = 100

// Watcher reports changes to the staged public headers using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      unique.Handle[string]
	events    chan ports.WatchEvent
}

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: watcher,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching the given directory recursively.
func (w *Watcher) Start(ctx context.Context, dir string) error {
	w.root = unique.Make(dir)

	for d := range w.walkDirs(dir) {
		if err := w.fsWatcher.Add(d); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// walkDirs yields every directory under root that is not skipped.
func (w *Watcher) walkDirs(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Skip unreadable directories and keep walking.
				return nil //nolint:nilerr // intentional
			}
			if d.IsDir() {
				if skipDirs[d.Name()] {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

// isPublicHeader reports whether the path names a header the bindings
// are generated from. uipriv.h and friends do not match.
func isPublicHeader(path string) bool {
	base := filepath.Base(path)
	if base == "ui.h" {
		return true
	}
	return strings.HasPrefix(base, "ui_") && strings.HasSuffix(base, ".h")
}

// processEvents converts raw fsnotify events into ports.WatchEvent values,
// dropping everything that is not a public header.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			// New directories join the watch set even though the event
			// itself is filtered out.
			if event.Op.Has(fsnotify.Create) && w.watchNewDir(event.Name) {
				continue
			}

			if !isPublicHeader(event.Name) {
				continue
			}

			watchEvent := convertEvent(event)
			if watchEvent == nil {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: file system error: %v\n", err)
		}
	}
}

// watchNewDir adds a freshly created directory tree to the watch set and
// reports whether name was a directory.
func (w *Watcher) watchNewDir(name string) bool {
	info, err := os.Stat(name)
	if err != nil || !info.IsDir() || skipDirs[info.Name()] {
		return false
	}

	for dir := range w.walkDirs(name) {
		_ = w.fsWatcher.Add(dir)
	}
	return true
}

// convertEvent converts an fsnotify event to a ports.WatchEvent.
func convertEvent(event fsnotify.Event) *ports.WatchEvent {
	var op ports.WatchOp
	switch {
	case event.Op.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Op.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Op.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Op.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return nil
	}
	return &ports.WatchEvent{Path: event.Name, Operation: op}
}
