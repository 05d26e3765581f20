package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherRunning is returned when Run is called on a watcher that is
// already running.
var ErrWatcherRunning = errors.New("watcher already running")

// FileWatcher follows a set of files for changes. It watches the
// directories containing them, so editors that save by rename are seen,
// and reports an event when a followed file changes or a new file appears
// next to one.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce *Debouncer

	mu      sync.RWMutex
	files   map[string]struct{}
	dirs    map[string]struct{}
	running bool
}

// NewFileWatcher creates a file watcher that coalesces events arriving
// within debounce of each other.
func NewFileWatcher(debounce time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger,
		debounce: NewDebouncer(debounce),
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}, nil
}

// SetFiles replaces the followed set. Directories no longer needed are
// dropped from the underlying watcher. It returns the number of files
// followed.
func (fw *FileWatcher) SetFiles(paths []string) (int, error) {
	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return 0, fmt.Errorf("failed to resolve %q: %w", p, err)
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	var errs []error
	for dir := range dirs {
		if _, ok := fw.dirs[dir]; ok {
			continue
		}
		if err := fw.watcher.Add(dir); err != nil {
			errs = append(errs, fmt.Errorf("failed to watch directory %q: %w", dir, err))
			delete(dirs, dir)
			continue
		}
		fw.logger.Debug("Watching directory", "path", dir)
	}
	for dir := range fw.dirs {
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := fw.watcher.Remove(dir); err != nil {
			fw.logger.Debug("Failed to stop watching directory", "path", dir, "error", err)
		}
	}

	fw.files = files
	fw.dirs = dirs

	return len(files), errors.Join(errs...)
}

// Files returns the followed files, sorted.
func (fw *FileWatcher) Files() []string {
	fw.mu.RLock()
	defer fw.mu.RUnlock()

	out := make([]string, 0, len(fw.files))
	for f := range fw.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Run delivers debounced change events to onChange until ctx is cancelled.
// onChange receives the path of the last event in the burst.
func (fw *FileWatcher) Run(ctx context.Context, onChange func(path string)) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return ErrWatcherRunning
	}
	fw.running = true
	fw.mu.Unlock()

	defer func() {
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			fw.logger.Debug("File watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("File event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			name := event.Name
			fw.debounce.Trigger(func() { onChange(name) })

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("File watcher error", "error", err)
			// Continue watching despite errors
		}
	}
}

// Close stops the debouncer and releases the fsnotify watcher.
func (fw *FileWatcher) Close() error {
	fw.debounce.Stop()
	if err := fw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// shouldProcessEvent reports whether event touches a followed file, or
// creates a visible file in a watched directory.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}

	fw.mu.RLock()
	_, followed := fw.files[event.Name]
	fw.mu.RUnlock()

	if followed {
		return true
	}
	return event.Has(fsnotify.Create)
}
