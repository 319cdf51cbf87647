package menu

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/logging/events"
	"github.com/geoterm/mapview-control/internal/viewer"
)

var (
	goToFn       = (*viewer.Service).GoTo
	closePopupFn = (*viewer.Service).ClosePopup
)

func loadViewMenu(Context) ([]Item, error) {
	items := []string{
		"goto",
		"popup",
	}
	return menuItemsFromIDs(items), nil
}

func ViewGoToAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		events.View.GoToPrompt()
		return CoordinatePrompt{Context: ctx, Action: "view:goto"}
	}
}

func PopupCloseAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		if ctx.Service == nil {
			return ActionResult{Err: fmt.Errorf("no active view")}
		}
		if closed := closePopupFn(ctx.Service); !closed {
			return ActionResult{Info: "No popup open"}
		}
		return ActionResult{Info: "Popup dismissed"}
	}
}

// GoToCommand recenters the active view on the given coordinates. A zoom of
// zero keeps the service default. It backs the coordinate prompt's submit
// path.
func GoToCommand(ctx Context, lon, lat, zoom float64) tea.Cmd {
	return func() tea.Msg {
		if ctx.Service == nil {
			return ActionResult{Err: fmt.Errorf("no active view")}
		}
		cam, err := goToFn(ctx.Service, engine.Point{Lon: lon, Lat: lat}, zoom)
		if err != nil {
			return ActionResult{Err: err}
		}
		if cam == nil {
			return ActionResult{Err: fmt.Errorf("no active view")}
		}
		return ActionResult{Info: fmt.Sprintf("Centered at %v, %v (zoom %v)", cam.Center.Lon, cam.Center.Lat, cam.Zoom)}
	}
}
