package viewer

import (
	"sync"

	"github.com/geoterm/mapview-control/internal/document"
	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/logging/events"
)

// DefaultZoom is applied when a navigation request does not specify a zoom.
const DefaultZoom = 10

// Loader dismissal reasons, one per dismissal path.
const (
	ReasonViewReady       = "view ready"
	ReasonLayerCreate     = "layerview-create"
	ReasonTimeoutFallback = "timeout fallback"
)

const (
	thumbnailLabel     = "Thumbnail of map"
	defaultMarkerTitle = "Point"
)

// markerTemplate formats dropped markers: the title as the popup heading and
// the coordinates as a two-line body.
var markerTemplate = engine.PopupTemplate{
	Title:   "{title}",
	Content: "Lon: {lon}\nLat: {lat}",
}

// Service holds the single active view reference and the operations that
// depend on it. The slot follows last-writer-wins semantics; replaced handles
// are not torn down.
type Service struct {
	doc *document.Document

	mu   sync.Mutex
	view *engine.View
}

// NewService builds a service mutating elements of the given document.
func NewService(doc *document.Document) *Service {
	return &Service{doc: doc}
}

// SetView unconditionally overwrites the stored handle. The handle's shape is
// not validated and the previous handle is not torn down.
func (s *Service) SetView(v *engine.View) {
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
}

// View returns the stored handle, or nil when none is set.
func (s *Service) View() *engine.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// UpdateHeaderFromPortalItem re-derives the header presentation state from
// the stored handle's map→item chain. Any absent link in the chain, or an
// absent header element, exits without mutation. Once the guards pass, all
// five header fields are written together; partial writes cannot occur.
func (s *Service) UpdateHeaderFromPortalItem() {
	v := s.View()
	if v == nil {
		events.Header.Skipped(events.SkipNoView)
		return
	}
	m := v.Map()
	if m == nil {
		events.Header.Skipped(events.SkipNoMap)
		return
	}
	item := m.Item
	if item == nil {
		events.Header.Skipped(events.SkipNoItem)
		return
	}
	header := s.doc.Header()
	if header == nil {
		events.Header.Skipped(events.SkipNoElement)
		return
	}

	header.Update(document.HeaderContent{
		Heading:     item.Title,
		Description: item.Snippet,
		Thumbnail:   item.ThumbnailURL,
		Href:        item.ItemPageURL,
		Label:       thumbnailLabel,
	})
	events.Header.Updated(item.Title)
}

// HideLoader dismisses the loader element, recording the reason. Absent or
// already-hidden loaders make this a no-op, so every dismissal path can call
// it without checking first.
func (s *Service) HideLoader(reason string) {
	loader := s.doc.Loader()
	if loader == nil {
		events.Loader.Skipped(reason, events.SkipNoElement)
		return
	}
	if loader.Hide() {
		events.Loader.Hidden(reason)
		return
	}
	events.Loader.Skipped(reason, events.SkipHidden)
}

// HideLoaderOnFirstLayerCreate arms a one-shot dismissal on the stored
// handle's first layer-view creation. The subscription removes itself after
// firing; at most one dismissal happens per call even when deliveries race.
// Each call arms an independent subscription. Returns the subscription so the
// owner can cancel it at teardown, or nil when no handle is stored.
func (s *Service) HideLoaderOnFirstLayerCreate() *engine.Subscription {
	v := s.View()
	if v == nil {
		return nil
	}

	var (
		mu    sync.Mutex
		fired bool
		sub   *engine.Subscription
	)
	mu.Lock()
	sub = v.On(engine.EventLayerViewCreate, func(engine.Event) {
		mu.Lock()
		if fired {
			mu.Unlock()
			return
		}
		fired = true
		active := sub
		mu.Unlock()

		s.HideLoader(ReasonLayerCreate)
		active.Remove()
	})
	mu.Unlock()
	return sub
}

// GoTo moves the stored handle's camera to the given center. A non-positive
// zoom selects DefaultZoom. With no handle stored the result is absent rather
// than an error.
func (s *Service) GoTo(center engine.Point, zoom float64) (*engine.Camera, error) {
	v := s.View()
	if v == nil {
		events.View.GoToSkipped()
		return nil, nil
	}
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	events.View.GoTo(center.Lon, center.Lat, zoom)
	return v.GoTo(engine.GoToTarget{Center: center, Zoom: zoom})
}

// ClearGraphics removes every annotation from the stored handle's graphics
// collection. No handle, no effect.
func (s *Service) ClearGraphics() {
	v := s.View()
	if v == nil {
		return
	}
	removed := v.Graphics().RemoveAll()
	events.View.GraphicsCleared(removed)
}

// DropMarker adds a point marker tagged with {title, lon, lat} to the stored
// handle's graphics collection, then opens the popup anchored at the marker
// showing its attributes. An empty title defaults to "Point". Marker-add and
// popup-open are separate effects: a failed popup open leaves the marker in
// place. Returns the added graphic, or nil when no handle is stored.
func (s *Service) DropMarker(lon, lat float64, title string) *engine.Graphic {
	v := s.View()
	if v == nil {
		return nil
	}
	if title == "" {
		title = defaultMarkerTitle
	}

	tpl := markerTemplate
	g := engine.NewGraphic(
		engine.Point{Lon: lon, Lat: lat},
		map[string]interface{}{"title": title, "lon": lon, "lat": lat},
		&tpl,
	)
	v.Graphics().Add(g)
	events.View.MarkerDropped(lon, lat, title)

	loc := g.Geometry
	if err := v.Popup().Open(engine.PopupOptions{
		Location: &loc,
		Features: []*engine.Graphic{g},
	}); err != nil {
		events.View.PopupFailed(err)
	}
	return g
}

// ClosePopup dismisses the active popup. It reports whether a popup was
// actually open.
func (s *Service) ClosePopup() bool {
	v := s.View()
	if v == nil {
		return false
	}
	closed := v.Popup().Close()
	if closed {
		events.View.PopupDismissed()
	}
	return closed
}

// ToggleLayer flips the visibility of the identified layer on the stored
// handle. ok is false without a handle or for an unknown layer.
func (s *Service) ToggleLayer(id string) (visible, ok bool) {
	v := s.View()
	if v == nil {
		return false, false
	}
	visible, ok = v.ToggleLayer(id)
	if ok {
		events.View.LayerToggled(id, visible)
	}
	return visible, ok
}
