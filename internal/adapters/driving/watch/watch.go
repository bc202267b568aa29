// Package watch re-submits a chunk edit whenever its source file is saved.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/core/ports/driving"
	"github.com/custodia-labs/chunkctl/internal/logger"
)

// DefaultDebounce coalesces the burst of events an editor emits per save.
const DefaultDebounce = 200 * time.Millisecond

// Result is the outcome of one submission triggered by a save.
type Result struct {
	Status domain.Status
	Err    error
}

// Config holds configuration for a Watcher.
type Config struct {
	// Path is the file whose content becomes the chunk content.
	Path string

	// Debounce is the quiet period after the last event before submitting.
	Debounce time.Duration
}

// Watcher submits the watched file's content through a ChunkEditor.
// The editor's point id and filename must already be set.
type Watcher struct {
	editor   driving.ChunkEditor
	path     string
	debounce time.Duration
}

// New creates a watcher for cfg.Path.
func New(editor driving.ChunkEditor, cfg Config) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: watch path is required", domain.ErrInvalidInput)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", cfg.Path, err)
	}
	return &Watcher{editor: editor, path: abs, debounce: cfg.Debounce}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Submit reads the file and submits its content once.
func (w *Watcher) Submit(ctx context.Context) Result {
	content, err := os.ReadFile(w.path)
	if err != nil {
		return Result{Err: fmt.Errorf("read %s: %w", w.path, err)}
	}
	w.editor.SetEditContent(string(content))
	status, err := w.editor.SubmitOverwrite(ctx)
	return Result{Status: status, Err: err}
}

// Run watches the file until ctx is done, sending one Result per debounced
// save on results. The parent directory is watched so editors that save by
// renaming a temp file over the original are still seen.
func (w *Watcher) Run(ctx context.Context, results chan<- Result) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	logger.Debug("Watching %s", w.path)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("Change detected: %s", event)
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-timer.C:
			res := w.Submit(ctx)
			if errors.Is(res.Err, context.Canceled) {
				return nil
			}
			select {
			case results <- res:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
