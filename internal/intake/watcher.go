package intake

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ytget/png2webp/internal/model"
)

// DefaultDebounce is how long a path must stay quiet before it is read
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a folder and hands new files over as sources
type Watcher struct {
	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	onSource func(*model.Source)

	mu      sync.Mutex
	pending map[string]*time.Timer
	closed  bool
}

// NewWatcher creates a watcher for dir. Files are delivered to onSource one by one.
func NewWatcher(dir string, onSource func(*model.Source)) (*Watcher, error) {
	if dir == "" {
		return nil, fmt.Errorf("watch directory is empty")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		dir:      dir,
		debounce: DefaultDebounce,
		watcher:  fsWatcher,
		onSource: onSource,
		pending:  make(map[string]*time.Timer),
	}, nil
}

// SetDebounce overrides the quiet period before a file is read
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	w.debounce = d
	w.mu.Unlock()
}

// Dir returns the watched folder
func (w *Watcher) Dir() string {
	return w.dir
}

// Start begins watching. Processing stops when ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch folder %s: %w", w.dir, err)
	}
	log.Printf("Watching folder: %s", w.dir)

	go w.processEvents(ctx)
	return nil
}

// Close stops the watcher and drops pending reads
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	return w.watcher.Close()
}

// processEvents debounces fsnotify events per path
func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Close()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isRelevant(event) {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// isRelevant keeps create/write events for visible files
func isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	return !strings.HasPrefix(filepath.Base(event.Name), ".")
}

// schedule (re)starts the debounce timer for path
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if timer, exists := w.pending[path]; exists {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		closed := w.closed
		w.mu.Unlock()

		if !closed {
			w.deliver(path)
		}
	})
}

// deliver reads path and passes it to the callback
func (w *Watcher) deliver(path string) {
	src, err := FromPath(path)
	if err != nil {
		log.Printf("Watcher failed to read %s: %v", path, err)
		return
	}
	log.Printf("Watcher picked up %s (%s, %d bytes)", src.Name, src.MIMEType, src.Size())
	if w.onSource != nil {
		w.onSource(src)
	}
}
