package engine

import (
	"testing"
	"time"
)

func collectEvents(t *testing.T, s *Surface, want int) []SurfaceEvent {
	t.Helper()
	var got []SurfaceEvent
	deadline := time.After(2 * time.Second)
	for len(got) < want {
		select {
		case evt, ok := <-s.Events():
			if !ok {
				t.Fatalf("events channel closed after %d events, want %d", len(got), want)
			}
			got = append(got, evt)
		case <-deadline:
			t.Fatalf("timed out after %d events, want %d", len(got), want)
		}
	}
	return got
}

func TestOpenViewEmitsReadyThenLayers(t *testing.T) {
	s := NewSurface(SurfaceOptions{})
	defer func() {
		s.Stop()
		s.Wait()
	}()

	m := &Map{
		Basemap: "streets",
		Layers: []Layer{
			{ID: "trails", Title: "Trails"},
			{ID: "parcels", Title: "Parcels"},
		},
	}
	v := s.OpenView(m)
	if v == nil {
		t.Fatalf("expected a view")
	}
	if s.Current() != v {
		t.Fatalf("expected surface to track the opened view")
	}

	got := collectEvents(t, s, 3)
	if got[0].Kind != KindViewReady {
		t.Fatalf("expected ready first, got kind %d", got[0].Kind)
	}
	n := got[0].Notification
	if n == nil || n.Detail == nil || n.Detail.View != v {
		t.Fatalf("expected detail-shape notification carrying the view")
	}
	if n.Target != nil {
		t.Fatalf("expected no target payload in current shape")
	}
	for i, evt := range got[1:] {
		if evt.Kind != KindLayerViewCreated {
			t.Fatalf("expected layer event at %d, got kind %d", i+1, evt.Kind)
		}
		if evt.LayerView == nil || evt.LayerView.Layer.ID != m.Layers[i].ID {
			t.Fatalf("unexpected layer view at %d: %+v", i+1, evt.LayerView)
		}
	}
	if lvs := v.LayerViews(); len(lvs) != 2 {
		t.Fatalf("expected 2 layer views on the view, got %d", len(lvs))
	}
}

func TestLegacyEventsUseTargetShape(t *testing.T) {
	s := NewSurface(SurfaceOptions{LegacyEvents: true})
	defer func() {
		s.Stop()
		s.Wait()
	}()

	v := s.OpenView(&Map{Basemap: "topo"})
	got := collectEvents(t, s, 1)
	n := got[0].Notification
	if n == nil || n.Target == nil || n.Target.View != v {
		t.Fatalf("expected target-shape notification carrying the view")
	}
	if n.Detail != nil {
		t.Fatalf("expected no detail payload in legacy shape")
	}
}

func TestOpenViewWithNilMapStillReady(t *testing.T) {
	s := NewSurface(SurfaceOptions{})
	defer func() {
		s.Stop()
		s.Wait()
	}()

	v := s.OpenView(nil)
	got := collectEvents(t, s, 1)
	if got[0].Kind != KindViewReady || got[0].View != v {
		t.Fatalf("expected ready for the opened view")
	}
}

func TestStopClosesEvents(t *testing.T) {
	s := NewSurface(SurfaceOptions{})
	s.OpenView(&Map{Layers: []Layer{{ID: "a"}}})
	s.Stop()
	s.Wait()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-s.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("events channel did not close after Stop")
		}
	}
}

func TestOpenViewAfterStopDoesNotLoad(t *testing.T) {
	s := NewSurface(SurfaceOptions{})
	s.Stop()
	s.Wait()

	v := s.OpenView(&Map{Layers: []Layer{{ID: "a"}}})
	if v == nil {
		t.Fatalf("expected a view even after stop")
	}
	if s.Current() == v {
		t.Fatalf("stopped surface must not adopt new views")
	}
}
