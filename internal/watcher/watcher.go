// Package watcher monitors a corpus directory and reports document changes,
// so the index can follow the filesystem without manual re-ingestion.
package watcher

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
	"github.com/intellirag/intellirag-cli/internal/logger"
)

// debounceDelay coalesces the bursts of events editors emit per save.
const debounceDelay = 500 * time.Millisecond

// Watcher monitors a directory tree for supported document files.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func(path string)
	onRemove func(path string)
	stopChan chan struct{}
}

// New creates a watcher over dir and its subdirectories. onChange fires for
// created or modified documents, onRemove for deleted or renamed-away ones.
// Either callback may be nil.
func New(dir string, onChange, onRemove func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		onChange: onChange,
		onRemove: onRemove,
		stopChan: make(chan struct{}),
	}

	// fsnotify does not recurse; register every directory up front. New
	// subdirectories are added as create events arrive.
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Start begins delivering events. It returns immediately.
func (w *Watcher) Start() {
	go w.watchLoop()
	logger.Info("Started corpus watcher")
}

// Stop ends event delivery and releases the underlying watches.
func (w *Watcher) Stop() {
	close(w.stopChan)
	w.watcher.Close()
	logger.Info("Stopped corpus watcher")
}

func (w *Watcher) watchLoop() {
	// Fired timer callbacks run on their own goroutines and remove their
	// entry, so every access to the map must hold the mutex.
	var mu sync.Mutex
	debounce := make(map[string]*time.Timer)

	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				// A new directory must be watched before anything is
				// written into it.
				w.maybeWatchDir(event.Name)
			}

			if _, ok := domain.FileTypeFromPath(event.Name); !ok {
				continue
			}

			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				logger.Debug("Document removed: %s", event.Name)
				if w.onRemove != nil {
					w.onRemove(event.Name)
				}
				continue
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			// Editors write in bursts; one callback per settle.
			name := event.Name
			mu.Lock()
			if timer, exists := debounce[name]; exists {
				timer.Stop()
			}
			debounce[name] = time.AfterFunc(debounceDelay, func() {
				mu.Lock()
				delete(debounce, name)
				mu.Unlock()
				logger.Debug("Document changed: %s", name)
				if w.onChange != nil {
					w.onChange(name)
				}
			})
			mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) maybeWatchDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		logger.Warn("Failed to watch %s: %v", path, err)
	}
}
