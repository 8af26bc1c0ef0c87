package catalog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a seed file must stay quiet before it is
// re-imported.
const DefaultDebounce = 250 * time.Millisecond

// Watcher re-imports seed files when they are written. Bursts of events on
// the same file (truncate then write) collapse into one import.
type Watcher struct {
	Debounce time.Duration

	seeder  *Seeder
	watcher *fsnotify.Watcher
}

func NewWatcher(seeder *Seeder) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(seeder.Dir); err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{Debounce: DefaultDebounce, seeder: seeder, watcher: w}, nil
}

// Watch blocks until ctx is done or the underlying watcher is closed.
func (w *Watcher) Watch(ctx context.Context) {
	done := make(chan struct{})
	ready := make(chan string)
	timers := make(map[string]*time.Timer)
	defer func() {
		close(done)
		for _, t := range timers {
			t.Stop()
		}
		w.watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".csv" {
				continue
			}
			if t, ok := timers[event.Name]; ok {
				t.Reset(w.Debounce)
				continue
			}
			name := event.Name
			timers[name] = time.AfterFunc(w.Debounce, func() {
				select {
				case ready <- name:
				case <-done:
				}
			})
		case name := <-ready:
			delete(timers, name)
			w.seeder.Log.WithField("file", name).Info("seed file modified")
			if err := w.seeder.HandleFileChange(ctx, name); err != nil {
				w.seeder.Log.WithError(err).WithField("file", name).Warn("re-import failed")
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.seeder.Log.WithError(err).Warn("seed watcher error")
		}
	}
}
