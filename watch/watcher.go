// Package watch regenerates output whenever watched input files change.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// DefaultDebounce is used when no debounce delay is configured.
	DefaultDebounce = 500 * time.Millisecond

	// eventChannelBuffer is the size of the change event channel.
	eventChannelBuffer = 16
)

// Operation indicates the type of file change.
type Operation string

// OpWrite and OpDelete enumerate the change types.
const (
	OpWrite  Operation = "write"
	OpDelete Operation = "delete"
)

// Event reports a settled change to a watched file.
type Event struct {
	Path      string
	Operation Operation
}

// Watcher watches a set of files and emits debounced change events.
// It watches the parent directories so that editors replacing a file by
// rename are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration
	files    map[string]bool

	// Debouncing: collect changes before emitting
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	// Content hashes suppress events for saves that change nothing
	hashMu sync.Mutex
	hashes map[string]string

	events chan Event

	droppedEvents atomic.Int64
}

// NewWatcher creates a watcher for paths.
func NewWatcher(paths []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		logger:   logger,
		debounce: debounce,
		files:    make(map[string]bool),
		pending:  make(map[string]fsnotify.Op),
		hashes:   make(map[string]string),
		events:   make(chan Event, eventChannelBuffer),
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.files[abs] = true
		if data, err := os.ReadFile(abs); err == nil {
			w.hashes[abs] = contentHash(data)
		}
	}

	return w, nil
}

// Events returns the channel of change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching. The events channel is closed when ctx is done or
// Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Debug("Watching directory", "path", dir)
	}

	go w.processEvents(ctx)

	w.logger.Info("File watcher started",
		"files", len(w.files),
		"debounce", w.debounce)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	// The timer restarts on every change, so a burst of writes is flushed
	// once it has been quiet for the debounce delay.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.handleFSEvent(event) {
				timer.Reset(w.debounce)
				fire = timer.C
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-fire:
			fire = nil
			w.flushPending()
		}
	}
}

// handleFSEvent queues a change to a watched file and reports whether it
// did.
func (w *Watcher) handleFSEvent(event fsnotify.Event) bool {
	path, err := filepath.Abs(event.Name)
	if err != nil || !w.files[path] {
		return false
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}

	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Change detected", "path", path, "op", event.Op.String())
	return true
}

func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path := range toProcess {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				w.hashMu.Lock()
				delete(w.hashes, path)
				w.hashMu.Unlock()
				w.sendEvent(Event{Path: path, Operation: OpDelete})
			} else {
				w.logger.Warn("Failed to read changed file", "path", path, "error", err)
			}
			continue
		}

		hash := contentHash(data)
		w.hashMu.Lock()
		unchanged := w.hashes[path] == hash
		w.hashes[path] = hash
		w.hashMu.Unlock()
		if unchanged {
			continue
		}

		w.sendEvent(Event{Path: path, Operation: OpWrite})
	}
}

func (w *Watcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event", "path", event.Path, "op", event.Operation)
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Run starts a watcher on paths and calls fn once per settled change until
// ctx is done. Errors from fn are logged and do not stop the loop.
func Run(ctx context.Context, paths []string, debounce time.Duration, logger *slog.Logger, fn func(context.Context, Event) error) error {
	if logger == nil {
		logger = slog.Default()
	}
	w, err := NewWatcher(paths, debounce, logger)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil {
		return err
	}

	for event := range w.Events() {
		if event.Operation == OpDelete {
			logger.Warn("Watched file removed, keeping last output", "path", event.Path)
			continue
		}
		if err := fn(ctx, event); err != nil {
			logger.Error("Regeneration failed", "path", event.Path, "error", err)
		}
	}
	return ctx.Err()
}
