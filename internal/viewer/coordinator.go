package viewer

import (
	"sync"
	"time"

	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/logging/events"
)

// loaderFallbackDelay is the fixed delay before the unconditional timeout
// dismissal fires.
const loaderFallbackDelay = 5000 * time.Millisecond

type fallbackTimer struct {
	timer *time.Timer
}

// Coordinator bridges the surface's readiness notifications into the view
// state service. It tracks the deferred dismissal paths it arms so Close can
// cancel the ones that have not fired.
type Coordinator struct {
	svc           *Service
	fallbackDelay time.Duration

	mu     sync.Mutex
	timers []*fallbackTimer
	subs   []*engine.Subscription
	closed bool
}

// NewCoordinator builds a coordinator driving the given service.
func NewCoordinator(svc *Service) *Coordinator {
	return &Coordinator{svc: svc, fallbackDelay: loaderFallbackDelay}
}

// HandleViewReady reacts to a view readiness notification. When the
// notification carries no handle at either payload path, nothing mutates and
// a diagnostic is traced. Otherwise the fixed sequence runs: store the
// handle, refresh the header, dismiss the loader immediately, arm the
// one-shot layer-create dismissal, and schedule the timeout dismissal. The
// timeout is scheduled unconditionally, regardless of whether earlier paths
// already dismissed the loader. Safe to invoke repeatedly; each notification
// re-runs the whole sequence against the handle it carries.
func (c *Coordinator) HandleViewReady(n *engine.Notification) {
	view, path := ExtractView(n)
	if view == nil {
		events.View.MissingHandle()
		return
	}
	events.View.Ready(path)

	c.svc.SetView(view)
	events.View.Adopted(view.ID())

	c.svc.UpdateHeaderFromPortalItem()

	c.svc.HideLoader(ReasonViewReady)

	if sub := c.svc.HideLoaderOnFirstLayerCreate(); sub != nil {
		events.Loader.ArmedLayerCreate()
		c.track(sub)
	}

	c.scheduleFallback()
}

// Close cancels every pending timer and subscription. Paths that already
// fired are unaffected. Subsequent notifications are still handled, minus
// the deferred paths.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	timers := c.timers
	subs := c.subs
	c.timers = nil
	c.subs = nil
	c.mu.Unlock()

	for _, entry := range timers {
		entry.timer.Stop()
	}
	for _, sub := range subs {
		sub.Remove()
	}
}

func (c *Coordinator) scheduleFallback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	entry := &fallbackTimer{}
	entry.timer = time.AfterFunc(c.fallbackDelay, func() {
		c.svc.HideLoader(ReasonTimeoutFallback)
		c.forget(entry)
	})
	c.timers = append(c.timers, entry)
	events.Loader.ArmedTimeout(c.fallbackDelay)
}

func (c *Coordinator) forget(entry *fallbackTimer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, t := range c.timers {
		if t == entry {
			c.timers = append(c.timers[:i:i], c.timers[i+1:]...)
			return
		}
	}
}

func (c *Coordinator) track(sub *engine.Subscription) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		sub.Remove()
		return
	}
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
}
