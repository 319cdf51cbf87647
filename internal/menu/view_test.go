package menu

import (
	"strings"
	"testing"

	"github.com/geoterm/mapview-control/internal/engine"
)

func TestPopupCloseAction(t *testing.T) {
	svc, _ := testService(t, &engine.Map{})
	svc.DropMarker(-117.2, 34.0, "Camp")
	msg := runAction(t, PopupCloseAction(Context{Service: svc}, Item{ID: "popup"}))
	result, ok := msg.(ActionResult)
	if !ok || result.Err != nil {
		t.Fatalf("unexpected result: %#v", msg)
	}
	if result.Info != "Popup dismissed" {
		t.Fatalf("unexpected info: %q", result.Info)
	}

	msg = runAction(t, PopupCloseAction(Context{Service: svc}, Item{ID: "popup"}))
	result = msg.(ActionResult)
	if result.Info != "No popup open" {
		t.Fatalf("second close should report no popup, got %q", result.Info)
	}
}

func TestGoToCommandReportsCamera(t *testing.T) {
	svc, _ := testService(t, &engine.Map{})
	msg := runAction(t, GoToCommand(Context{Service: svc}, -117.2, 34.0, 0))
	result, ok := msg.(ActionResult)
	if !ok || result.Err != nil {
		t.Fatalf("unexpected result: %#v", msg)
	}
	if !strings.Contains(result.Info, "-117.2, 34") {
		t.Fatalf("unexpected info: %q", result.Info)
	}
	if !strings.Contains(result.Info, "zoom 10") {
		t.Fatalf("default zoom missing from info: %q", result.Info)
	}
}

func TestGoToCommandWithoutService(t *testing.T) {
	msg := runAction(t, GoToCommand(Context{}, 0, 0, 0))
	result, ok := msg.(ActionResult)
	if !ok || result.Err == nil {
		t.Fatalf("expected error without service, got %#v", msg)
	}
}
