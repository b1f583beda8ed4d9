package filesystem

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"studytrack/internal/config"
	"studytrack/internal/domain"
	"studytrack/internal/logging"
)

// Watcher reports changes below a folder so the tree can be re-ingested.
// Bursts of events are collapsed into one notification.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	root     string
	debounce time.Duration
	pending  bool
	last     time.Time
	changes  chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a watcher for root; call Start to begin
func NewWatcher(root string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  w,
		root:     config.ExpandHome(root),
		debounce: 300 * time.Millisecond,
		changes:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Changes delivers one value per settled burst of events
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Start watches root and every subfolder. Non-blocking. A failed Start
// releases the underlying watcher; the Watcher cannot be restarted.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.addTree(w.root); err != nil {
		if cerr := w.watcher.Close(); cerr != nil {
			logging.Warn("error closing watcher", zap.Error(cerr))
		}
		return err
	}
	w.running = true
	go w.run(ctx)
	return nil
}

// Stop ends the watch and waits for the loop to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		logging.Warn("error closing watcher", zap.Error(err))
	}
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(p); err != nil {
			logging.Warn("cannot watch folder", zap.String("path", p), zap.Error(err))
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.debounce / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("watcher error", zap.Error(err))
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	if event.Op.Has(fsnotify.Create) {
		// new folders need their own watch
		_ = w.addTree(event.Name)
	}
	if !relevant(rel) {
		return
	}
	logging.Debug("folder changed", zap.String("path", filepath.ToSlash(rel)), zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.pending = true
	w.last = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	fire := w.pending && time.Since(w.last) >= w.debounce
	if fire {
		w.pending = false
	}
	w.mu.Unlock()

	if fire {
		select {
		case w.changes <- struct{}{}:
		default:
		}
	}
}

// relevant reports whether a change at rel can alter the snapshot
func relevant(rel string) bool {
	name := filepath.Base(rel)
	return domain.IsDocumentName(name) || domain.IsPointerName(name) ||
		name == domain.ConfigFileName || strings.HasSuffix(strings.ToLower(name), ".json") ||
		filepath.Ext(name) == ""
}
