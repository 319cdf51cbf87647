package engine

import (
	"context"
	"sync"
	"time"

	"github.com/geoterm/mapview-control/internal/logging/events"
)

// EventKind represents the type of event emitted by the surface.
type EventKind int

const (
	KindViewReady EventKind = iota
	KindLayerViewCreated
)

// SurfaceEvent conveys view lifecycle progress from the surface's loader.
type SurfaceEvent struct {
	Kind         EventKind
	Notification *Notification
	View         *View
	LayerView    *LayerView
}

// SurfaceOptions configure a surface.
type SurfaceOptions struct {
	// LayerDelay is the pause before each operational layer's view is
	// created. Zero means no pause.
	LayerDelay time.Duration
	// LegacyEvents delivers ready notifications in the legacy shape, with
	// the handle under Target instead of Detail.
	LegacyEvents bool
}

// Surface hosts map views and loads them asynchronously. It publishes view
// lifecycle events on a buffered channel; consumers drain Events until it
// closes after Stop.
type Surface struct {
	layerDelay   time.Duration
	legacyEvents bool

	ctx    context.Context
	cancel context.CancelFunc

	events chan SurfaceEvent
	wg     sync.WaitGroup

	mu      sync.Mutex
	current *View
	stopped bool
}

// NewSurface creates a surface ready to open views.
func NewSurface(opts SurfaceOptions) *Surface {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Surface{
		layerDelay:   opts.LayerDelay,
		legacyEvents: opts.LegacyEvents,
		ctx:          ctx,
		cancel:       cancel,
		events:       make(chan SurfaceEvent, 16),
	}

	go func() {
		<-ctx.Done()
		s.wg.Wait()
		close(s.events)
	}()

	return s
}

// Events returns a channel of surface events.
func (s *Surface) Events() <-chan SurfaceEvent {
	return s.events
}

// Current returns the most recently opened view, or nil.
func (s *Surface) Current() *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// OpenView creates a view over the given map and starts loading it. The ready
// notification and subsequent layer-view events arrive on Events.
func (s *Surface) OpenView(m *Map) *View {
	v := NewView(ViewOptions{Map: m})

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return v
	}
	s.current = v
	s.wg.Add(1)
	s.mu.Unlock()

	events.Engine.ViewOpened(v.ID(), mapTitle(m), s.legacyEvents)
	go s.load(v)
	return v
}

// Stop cancels the surface. Loaders exit at their next suspension point; use
// Wait for a clean drain.
func (s *Surface) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.cancel()
}

// Wait blocks until all loader goroutines have exited. Call after Stop when a
// clean shutdown is required.
func (s *Surface) Wait() {
	s.wg.Wait()
}

func (s *Surface) load(v *View) {
	defer s.wg.Done()

	n := &Notification{}
	if s.legacyEvents {
		n.Target = &NotificationTarget{View: v}
	} else {
		n.Detail = &NotificationDetail{View: v}
	}
	if !s.emit(SurfaceEvent{Kind: KindViewReady, Notification: n, View: v}) {
		return
	}

	m := v.Map()
	if m == nil {
		return
	}
	for _, layer := range m.Layers {
		if s.layerDelay > 0 {
			select {
			case <-s.ctx.Done():
				return
			case <-time.After(s.layerDelay):
			}
		}
		lv := v.AddLayer(layer)
		if !s.emit(SurfaceEvent{Kind: KindLayerViewCreated, View: v, LayerView: lv}) {
			return
		}
	}
}

func (s *Surface) emit(evt SurfaceEvent) bool {
	select {
	case <-s.ctx.Done():
		return false
	case s.events <- evt:
		return true
	}
}

func mapTitle(m *Map) string {
	if m == nil {
		return ""
	}
	if m.Item != nil {
		return m.Item.Title
	}
	return m.Basemap
}
