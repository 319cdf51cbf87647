package engine

import (
	"testing"
)

func TestNewViewStartsAtMapViewpoint(t *testing.T) {
	m := &Map{
		Basemap:       "topo",
		InitialCenter: Point{Lon: -117.5, Lat: 34.1},
		InitialZoom:   9,
	}
	v := NewView(ViewOptions{Map: m})
	if v.ID() == "" {
		t.Fatalf("expected a view id")
	}
	cam := v.Camera()
	if cam.Center != m.InitialCenter || cam.Zoom != 9 {
		t.Fatalf("unexpected initial camera: %+v", cam)
	}
	if v.Map() != m {
		t.Fatalf("expected view to expose its map")
	}
	if v.Popup() == nil {
		t.Fatalf("expected a popup control by default")
	}
}

func TestNewViewWithoutMap(t *testing.T) {
	v := NewView(ViewOptions{})
	if v.Map() != nil {
		t.Fatalf("expected nil map")
	}
	if v.Graphics() == nil {
		t.Fatalf("expected a graphics collection")
	}
	if v.Popup() == nil {
		t.Fatalf("expected a popup control")
	}
}

func TestPopupsDisabledLeavesNilControl(t *testing.T) {
	v := NewView(ViewOptions{Map: &Map{PopupsDisabled: true}})
	if v.Popup() != nil {
		t.Fatalf("expected nil popup when the map disables popups")
	}
	if err := v.Popup().Open(PopupOptions{}); err != ErrPopupUnavailable {
		t.Fatalf("expected ErrPopupUnavailable, got %v", err)
	}
}

func TestGoToMovesCamera(t *testing.T) {
	v := NewView(ViewOptions{})
	cam, err := v.GoTo(GoToTarget{Center: Point{Lon: 10, Lat: 20}, Zoom: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cam == nil {
		t.Fatalf("expected a camera result")
	}
	if cam.Center.Lon != 10 || cam.Center.Lat != 20 || cam.Zoom != 5 {
		t.Fatalf("unexpected camera: %+v", cam)
	}
	if got := v.Camera(); got != *cam {
		t.Fatalf("camera result diverged from view state: %+v vs %+v", got, *cam)
	}
}

func TestGoToRejectsBadTargets(t *testing.T) {
	v := NewView(ViewOptions{})
	before := v.Camera()

	if _, err := v.GoTo(GoToTarget{Center: Point{Lon: 181, Lat: 0}, Zoom: 3}); err != ErrBadCoordinates {
		t.Fatalf("expected ErrBadCoordinates for lon, got %v", err)
	}
	if _, err := v.GoTo(GoToTarget{Center: Point{Lon: 0, Lat: -91}, Zoom: 3}); err != ErrBadCoordinates {
		t.Fatalf("expected ErrBadCoordinates for lat, got %v", err)
	}
	if _, err := v.GoTo(GoToTarget{Center: Point{}, Zoom: 99}); err != ErrBadZoom {
		t.Fatalf("expected ErrBadZoom, got %v", err)
	}
	if got := v.Camera(); got != before {
		t.Fatalf("camera moved on rejected target: %+v", got)
	}
}

func TestOnDeliversLayerCreateEvents(t *testing.T) {
	v := NewView(ViewOptions{})
	var got []Event
	sub := v.On(EventLayerViewCreate, func(evt Event) {
		got = append(got, evt)
	})
	if sub == nil {
		t.Fatalf("expected a subscription")
	}

	lv := v.AddLayer(Layer{ID: "trails", Title: "Trails", Kind: "feature"})
	if lv == nil {
		t.Fatalf("expected a layer view")
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Name != EventLayerViewCreate || got[0].LayerView != lv {
		t.Fatalf("unexpected event: %+v", got[0])
	}

	if v.SubscriberCount(EventLayerViewCreate) != 1 {
		t.Fatalf("expected 1 subscriber, got %d", v.SubscriberCount(EventLayerViewCreate))
	}
	sub.Remove()
	if v.SubscriberCount(EventLayerViewCreate) != 0 {
		t.Fatalf("expected 0 subscribers after remove, got %d", v.SubscriberCount(EventLayerViewCreate))
	}
	v.AddLayer(Layer{ID: "parcels", Title: "Parcels"})
	if len(got) != 1 {
		t.Fatalf("expected no delivery after remove, got %d", len(got))
	}
}

func TestSubscriptionRemoveIsIdempotent(t *testing.T) {
	v := NewView(ViewOptions{})
	calls := 0
	sub := v.On(EventLayerViewCreate, func(Event) { calls++ })
	sub.Remove()
	sub.Remove()
	v.AddLayer(Layer{ID: "a"})
	if calls != 0 {
		t.Fatalf("expected no calls after double remove, got %d", calls)
	}

	var nilSub *Subscription
	nilSub.Remove()
}

func TestRemoveFromWithinHandler(t *testing.T) {
	v := NewView(ViewOptions{})
	calls := 0
	var sub *Subscription
	sub = v.On(EventLayerViewCreate, func(Event) {
		calls++
		sub.Remove()
	})
	v.AddLayer(Layer{ID: "a"})
	v.AddLayer(Layer{ID: "b"})
	if calls != 1 {
		t.Fatalf("expected exactly one delivery, got %d", calls)
	}
}

func TestIndependentSubscriptionsEachFire(t *testing.T) {
	v := NewView(ViewOptions{})
	first, second := 0, 0
	v.On(EventLayerViewCreate, func(Event) { first++ })
	v.On(EventLayerViewCreate, func(Event) { second++ })
	v.AddLayer(Layer{ID: "a"})
	if first != 1 || second != 1 {
		t.Fatalf("expected both subscribers to fire once, got %d and %d", first, second)
	}
}

func TestOnRejectsNilHandler(t *testing.T) {
	v := NewView(ViewOptions{})
	if sub := v.On(EventLayerViewCreate, nil); sub != nil {
		t.Fatalf("expected nil subscription for nil handler")
	}
	if sub := v.On("", func(Event) {}); sub != nil {
		t.Fatalf("expected nil subscription for empty event name")
	}
}

func TestLayerViewsSnapshot(t *testing.T) {
	v := NewView(ViewOptions{})
	v.AddLayer(Layer{ID: "a", Title: "A"})
	v.AddLayer(Layer{ID: "b", Title: "B"})
	lvs := v.LayerViews()
	if len(lvs) != 2 {
		t.Fatalf("expected 2 layer views, got %d", len(lvs))
	}
	if lvs[0].Layer.ID != "a" || lvs[1].Layer.ID != "b" {
		t.Fatalf("unexpected layer order: %s, %s", lvs[0].Layer.ID, lvs[1].Layer.ID)
	}
	if lvs[0].ID == lvs[1].ID {
		t.Fatalf("layer views must have distinct ids")
	}
}
