package menu

import (
	"strings"
	"testing"

	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/viewer"
)

func TestMarkerDropActionPrompts(t *testing.T) {
	msg := runAction(t, MarkerDropAction(Context{}, Item{ID: "drop"}))
	prompt, ok := msg.(CoordinatePrompt)
	if !ok {
		t.Fatalf("expected CoordinatePrompt, got %T", msg)
	}
	if prompt.Action != "marker:drop" {
		t.Fatalf("unexpected prompt action %q", prompt.Action)
	}
}

func TestMarkerFocusActionCentersView(t *testing.T) {
	svc, v := testService(t, &engine.Map{})
	ctx := Context{
		Service: svc,
		Markers: []MarkerEntry{{ID: "m1", Title: "Camp", Lon: -117.2, Lat: 34.0}},
	}
	msg := runAction(t, MarkerFocusAction(ctx, Item{ID: "m1"}))
	result, ok := msg.(ActionResult)
	if !ok || result.Err != nil {
		t.Fatalf("unexpected result: %#v", msg)
	}
	cam := v.Camera()
	if cam.Center.Lon != -117.2 || cam.Center.Lat != 34.0 {
		t.Fatalf("camera not centered on marker: %+v", cam)
	}
	if cam.Zoom != viewer.DefaultZoom {
		t.Fatalf("expected default zoom, got %v", cam.Zoom)
	}
}

func TestMarkerFocusActionUnknownMarker(t *testing.T) {
	msg := runAction(t, MarkerFocusAction(Context{}, Item{ID: "ghost"}))
	result, ok := msg.(ActionResult)
	if !ok || result.Err == nil {
		t.Fatalf("expected error for unknown marker, got %#v", msg)
	}
}

func TestMarkerClearAction(t *testing.T) {
	svc, v := testService(t, &engine.Map{})
	svc.DropMarker(1, 2, "a")
	svc.DropMarker(3, 4, "b")
	ctx := Context{Service: svc, Markers: []MarkerEntry{{ID: "a"}, {ID: "b"}}}
	msg := runAction(t, MarkerClearAction(ctx, Item{ID: "clear"}))
	result, ok := msg.(ActionResult)
	if !ok || result.Err != nil {
		t.Fatalf("unexpected result: %#v", msg)
	}
	if !strings.Contains(result.Info, "2 markers") {
		t.Fatalf("unexpected info: %q", result.Info)
	}
	if v.Graphics().Len() != 0 {
		t.Fatalf("graphics should be empty after clear")
	}
}

func TestMarkerDropCommand(t *testing.T) {
	svc, v := testService(t, &engine.Map{})
	msg := runAction(t, MarkerDropCommand(Context{Service: svc}, -117.2, 34.0, "Camp"))
	result, ok := msg.(ActionResult)
	if !ok || result.Err != nil {
		t.Fatalf("unexpected result: %#v", msg)
	}
	if !strings.Contains(result.Info, "Camp") {
		t.Fatalf("unexpected info: %q", result.Info)
	}
	if v.Graphics().Len() != 1 {
		t.Fatalf("expected one marker, got %d", v.Graphics().Len())
	}
}
