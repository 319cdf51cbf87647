package portal

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/geoterm/mapview-control/internal/logging/events"
)

// Event conveys a reloaded catalog or an error from the portal watcher.
type Event struct {
	Catalog *Catalog
	Trigger string
	Err     error
}

// Watcher keeps the catalog in sync with the portal directory. Filesystem
// notifications trigger reloads when available; a ticker rescan covers
// editors and filesystems that defeat fsnotify.
type Watcher struct {
	dir      string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that rescans dir every interval.
func NewWatcher(dir string, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dir:      dir,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of catalog events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The run loop exits at its next suspension point;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the run loop has exited and the events channel is closed.
// Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	gate := newThrottle(250 * time.Millisecond)

	reload := func(trigger string) bool {
		if !gate.wait(w.ctx) {
			return false
		}
		cat, err := LoadDir(w.ctx, w.dir)
		if err == nil {
			events.Portal.Reloaded(cat.Len(), trigger)
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- Event{Catalog: cat, Trigger: trigger, Err: err}:
			return true
		}
	}

	var notify *fsnotify.Watcher
	if fsw, err := fsnotify.NewWatcher(); err != nil {
		events.Portal.WatchError(err)
	} else if err := fsw.Add(w.dir); err != nil {
		events.Portal.WatchError(err)
		fsw.Close()
	} else {
		notify = fsw
		defer notify.Close()
	}

	// Nil channels block forever, so the select below degrades to
	// ticker-only operation when fsnotify is unavailable.
	var fsEvents <-chan fsnotify.Event
	var fsErrors <-chan error
	if notify != nil {
		fsEvents = notify.Events
		fsErrors = notify.Errors
	}

	if !reload("initial") {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !reload("rescan") {
				return
			}
		case evt := <-fsEvents:
			if !IsDocumentPath(evt.Name) {
				continue
			}
			if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !reload("fsnotify") {
				return
			}
		case err := <-fsErrors:
			events.Portal.WatchError(err)
		}
	}
}
