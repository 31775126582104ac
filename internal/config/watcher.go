package config

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"journalmind/internal/lexicon"
)

// debounceDelay coalesces rapid editor write events into one reload.
const debounceDelay = 500 * time.Millisecond

// LexiconWatcher hot-reloads the lexicon file when it changes on disk, so
// stop-word and keyword table tweaks take effect without a restart.
type LexiconWatcher struct {
	path      string
	logger    *slog.Logger
	watcher   *fsnotify.Watcher
	stopCh    chan struct{}
	closeOnce sync.Once

	mu        sync.RWMutex
	current   *lexicon.Lexicon
	callbacks []func(*lexicon.Lexicon)
}

// NewLexiconWatcher loads the lexicon file and starts watching it. An empty
// path yields a watcher that only ever serves the built-in defaults.
func NewLexiconWatcher(path string, logger *slog.Logger) (*LexiconWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	w := &LexiconWatcher{
		path:    path,
		logger:  logger,
		stopCh:  make(chan struct{}),
		current: lexicon.Default(),
	}
	if path == "" {
		return w, nil
	}

	lex, err := lexicon.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}
	w.current = lex

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsWatcher.Add(path); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch lexicon file: %w", err)
	}
	w.watcher = fsWatcher
	go w.watchLoop()

	logger.Info("lexicon hot reloading enabled", "path", path)
	return w, nil
}

// Lexicon returns the currently loaded lexicon.
func (w *LexiconWatcher) Lexicon() *lexicon.Lexicon {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// OnReload registers a callback invoked after each successful reload.
func (w *LexiconWatcher) OnReload(fn func(*lexicon.Lexicon)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// Close stops watching. Safe to call more than once.
func (w *LexiconWatcher) Close() {
	w.closeOnce.Do(func() {
		close(w.stopCh)
	})
}

func (w *LexiconWatcher) watchLoop() {
	defer func() {
		_ = w.watcher.Close()
	}()

	var debounce *time.Timer
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, w.reload)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("lexicon watcher error", "error", err)
		case <-w.stopCh:
			return
		}
	}
}

func (w *LexiconWatcher) reload() {
	lex, err := lexicon.LoadFile(w.path)
	if err != nil {
		// Keep serving the last good tables on a bad edit.
		w.logger.Warn("lexicon reload failed", "path", w.path, "error", err)
		return
	}

	w.mu.Lock()
	w.current = lex
	callbacks := make([]func(*lexicon.Lexicon), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	w.logger.Info("lexicon reloaded", "path", w.path)
	for _, fn := range callbacks {
		fn(lex)
	}
}
