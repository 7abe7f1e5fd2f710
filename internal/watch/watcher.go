// Package watch reruns scheduling when the plan or config files change.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/msageha/dayplan/internal/model"
)

const defaultDebounce = 1 * time.Second

// Watcher observes a .dayplan/ directory and invokes onChange after writes
// settle. Rapid successive writes within the debounce window collapse into a
// single callback.
type Watcher struct {
	dir      string
	debounce time.Duration
	onChange func()
	logger   *log.Logger
}

func New(dir string, cfg model.WatcherConfig, onChange func(), logger *log.Logger) *Watcher {
	debounce := defaultDebounce
	if cfg.DebounceSec > 0 {
		debounce = time.Duration(cfg.DebounceSec * float64(time.Second))
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, dispatching debounced change callbacks.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logf("fsnotify event=%s file=%s", event.Op, event.Name)
			timer.Reset(w.debounce)
		case <-timer.C:
			w.onChange()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logf("fsnotify error=%v", err)
		}
	}
}

// relevant filters out events for temp files, backups, and the log directory.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".dayplan-tmp-") || strings.HasSuffix(name, ".bak") {
		return false
	}
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func (w *Watcher) logf(format string, args ...any) {
	if w.logger == nil {
		return
	}
	w.logger.Printf("%s watch: %s", time.Now().Format(time.RFC3339), fmt.Sprintf(format, args...))
}
