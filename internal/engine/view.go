package engine

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/geoterm/mapview-control/internal/logging/events"
)

// EventLayerViewCreate fires once per operational layer as the view finishes
// preparing it.
const EventLayerViewCreate = "layerview-create"

var (
	// ErrBadCoordinates is returned for navigation targets outside the
	// lon/lat domain.
	ErrBadCoordinates = errors.New("engine: coordinates out of range")
	// ErrBadZoom is returned for navigation targets with an unusable zoom.
	ErrBadZoom = errors.New("engine: zoom out of range")
)

const maxZoom = 23

// Camera is the view's current viewpoint.
type Camera struct {
	Center Point
	Zoom   float64
}

// GoToTarget names the viewpoint a navigation request moves to.
type GoToTarget struct {
	Center Point
	Zoom   float64
}

// Event is delivered to view subscribers.
type Event struct {
	Name      string
	LayerView *LayerView
}

// LayerView pairs an operational layer with its per-view state.
type LayerView struct {
	ID    string
	Layer Layer
}

// Subscription is the removable registration returned by View.On. Remove is
// idempotent and safe to call from event handlers.
type Subscription struct {
	view  *View
	event string
	id    int
}

// Remove unregisters the subscription. Subsequent calls are no-ops.
func (s *Subscription) Remove() {
	if s == nil || s.view == nil {
		return
	}
	s.view.removeSubscription(s.event, s.id)
	s.view = nil
}

type subscriber struct {
	id int
	fn func(Event)
}

// View is the live handle onto the map surface. It exposes the loaded map,
// an event subscription capability, a graphics collection, and a popup
// control. Callers must treat the zero value as unusable; construct with
// NewView.
type View struct {
	id       string
	webmap   *Map
	graphics *GraphicsCollection
	popup    *Popup

	mu         sync.Mutex
	camera     Camera
	layerViews []*LayerView
	visibility map[string]bool
	subs       map[string][]subscriber
	nextSubID  int
}

// ViewOptions configure a new view.
type ViewOptions struct {
	Map *Map
}

// NewView constructs a view over the given map. The camera starts at the
// map's initial viewpoint when one is defined.
func NewView(opts ViewOptions) *View {
	v := &View{
		id:         uuid.NewString(),
		webmap:     opts.Map,
		graphics:   &GraphicsCollection{},
		visibility: make(map[string]bool),
		subs:       make(map[string][]subscriber),
	}
	if opts.Map != nil {
		v.camera = Camera{Center: opts.Map.InitialCenter, Zoom: opts.Map.InitialZoom}
		if !opts.Map.PopupsDisabled {
			v.popup = &Popup{}
		}
		for _, layer := range opts.Map.Layers {
			v.visibility[layer.ID] = layer.Visible
		}
	} else {
		v.popup = &Popup{}
	}
	return v
}

// ID returns the view's identifier.
func (v *View) ID() string {
	if v == nil {
		return ""
	}
	return v.id
}

// Map returns the loaded web map, which may be nil.
func (v *View) Map() *Map {
	if v == nil {
		return nil
	}
	return v.webmap
}

// Graphics returns the view's annotation collection.
func (v *View) Graphics() *GraphicsCollection {
	if v == nil {
		return nil
	}
	return v.graphics
}

// Popup returns the view's popup control, or nil when the map disables popups.
func (v *View) Popup() *Popup {
	if v == nil {
		return nil
	}
	return v.popup
}

// Camera returns the current viewpoint.
func (v *View) Camera() Camera {
	if v == nil {
		return Camera{}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.camera
}

// GoTo moves the camera to the target viewpoint and returns the resulting
// camera state.
func (v *View) GoTo(target GoToTarget) (*Camera, error) {
	if v == nil {
		return nil, errors.New("engine: nil view")
	}
	if target.Center.Lon < -180 || target.Center.Lon > 180 ||
		target.Center.Lat < -90 || target.Center.Lat > 90 {
		return nil, ErrBadCoordinates
	}
	if target.Zoom < 0 || target.Zoom > maxZoom {
		return nil, ErrBadZoom
	}

	v.mu.Lock()
	v.camera = Camera{Center: target.Center, Zoom: target.Zoom}
	cam := v.camera
	v.mu.Unlock()
	return &cam, nil
}

// On registers fn for the named event and returns its subscription. A nil fn
// yields a nil subscription.
func (v *View) On(event string, fn func(Event)) *Subscription {
	if v == nil || fn == nil || event == "" {
		return nil
	}
	v.mu.Lock()
	v.nextSubID++
	id := v.nextSubID
	v.subs[event] = append(v.subs[event], subscriber{id: id, fn: fn})
	v.mu.Unlock()
	return &Subscription{view: v, event: event, id: id}
}

// SubscriberCount reports the number of active subscriptions for the named
// event.
func (v *View) SubscriberCount(event string) int {
	if v == nil {
		return 0
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs[event])
}

func (v *View) removeSubscription(event string, id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	subs := v.subs[event]
	for i, sub := range subs {
		if sub.id == id {
			v.subs[event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// emit delivers the event to a snapshot of the current subscribers. Handlers
// run outside the view lock so they may subscribe or unsubscribe freely.
func (v *View) emit(evt Event) {
	v.mu.Lock()
	subs := append([]subscriber(nil), v.subs[evt.Name]...)
	v.mu.Unlock()
	for _, sub := range subs {
		sub.fn(evt)
	}
}

// AddLayer attaches a layer to the view and announces its layer view.
func (v *View) AddLayer(layer Layer) *LayerView {
	if v == nil {
		return nil
	}
	lv := &LayerView{ID: uuid.NewString(), Layer: layer}
	v.mu.Lock()
	v.layerViews = append(v.layerViews, lv)
	if _, known := v.visibility[layer.ID]; !known {
		v.visibility[layer.ID] = layer.Visible
	}
	v.mu.Unlock()

	events.Engine.LayerViewCreated(v.id, lv.ID, layer.Title)
	v.emit(Event{Name: EventLayerViewCreate, LayerView: lv})
	return lv
}

// LayerViews returns a snapshot of the layer views created so far.
func (v *View) LayerViews() []*LayerView {
	if v == nil {
		return nil
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	dup := make([]*LayerView, len(v.layerViews))
	copy(dup, v.layerViews)
	return dup
}

// LayerVisible reports whether the identified layer is currently drawn.
func (v *View) LayerVisible(id string) bool {
	if v == nil {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visibility[id]
}

// ToggleLayer flips the identified layer's visibility and returns the new
// state. ok is false for layers the view does not know about.
func (v *View) ToggleLayer(id string) (visible, ok bool) {
	if v == nil {
		return false, false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	current, known := v.visibility[id]
	if !known {
		return false, false
	}
	v.visibility[id] = !current
	return !current, true
}
