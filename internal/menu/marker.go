package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/format/table"
	"github.com/geoterm/mapview-control/internal/logging/events"
	"github.com/geoterm/mapview-control/internal/viewer"
)

var (
	dropMarkerFn    = (*viewer.Service).DropMarker
	clearGraphicsFn = (*viewer.Service).ClearGraphics
	focusFn         = (*viewer.Service).GoTo
)

func loadMarkerMenu(Context) ([]Item, error) {
	items := []string{
		"drop",
		"focus",
		"clear",
	}
	return menuItemsFromIDs(items), nil
}

func loadMarkerFocusMenu(ctx Context) ([]Item, error) {
	return MarkerItems(ctx), nil
}

// MarkerItems lists the dropped markers as aligned menu entries in drop
// order.
func MarkerItems(ctx Context) []Item {
	if len(ctx.Markers) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(ctx.Markers))
	ids := make([]string, 0, len(ctx.Markers))
	for _, entry := range ctx.Markers {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			title = "Point"
		}
		rows = append(rows, []string{title, fmt.Sprintf("%v, %v", entry.Lon, entry.Lat)})
		ids = append(ids, entry.ID)
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
	items := make([]Item, len(aligned))
	for i, label := range aligned {
		items[i] = Item{ID: ids[i], Label: label}
	}
	return items
}

func MarkerDropAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		events.Marker.DropPrompt(len(ctx.Markers))
		return CoordinatePrompt{Context: ctx, Action: "marker:drop"}
	}
}

func MarkerFocusAction(ctx Context, item Item) tea.Cmd {
	target := strings.TrimSpace(item.ID)
	if target == "" {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid marker target")} }
	}
	var entry *MarkerEntry
	for i := range ctx.Markers {
		if ctx.Markers[i].ID == target {
			entry = &ctx.Markers[i]
			break
		}
	}
	if entry == nil {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("unknown marker %s", target)} }
	}
	lon, lat, title := entry.Lon, entry.Lat, entry.Title
	return func() tea.Msg {
		if ctx.Service == nil {
			return ActionResult{Err: fmt.Errorf("no active view")}
		}
		events.Marker.Focus(target)
		cam, err := focusFn(ctx.Service, engine.Point{Lon: lon, Lat: lat}, 0)
		if err != nil {
			return ActionResult{Err: err}
		}
		if cam == nil {
			return ActionResult{Err: fmt.Errorf("no active view")}
		}
		return ActionResult{Info: fmt.Sprintf("Centered on %s", title)}
	}
}

func MarkerClearAction(ctx Context, item Item) tea.Cmd {
	count := len(ctx.Markers)
	return func() tea.Msg {
		if ctx.Service == nil {
			return ActionResult{Err: fmt.Errorf("no active view")}
		}
		events.Marker.Clear(count)
		clearGraphicsFn(ctx.Service)
		if count == 1 {
			return ActionResult{Info: "Cleared 1 marker"}
		}
		return ActionResult{Info: fmt.Sprintf("Cleared %d markers", count)}
	}
}

// MarkerDropCommand drops a marker at the given coordinates. It backs the
// coordinate prompt's submit path.
func MarkerDropCommand(ctx Context, lon, lat float64, title string) tea.Cmd {
	return func() tea.Msg {
		if ctx.Service == nil {
			return ActionResult{Err: fmt.Errorf("no active view")}
		}
		g := dropMarkerFn(ctx.Service, lon, lat, title)
		if g == nil {
			return ActionResult{Err: fmt.Errorf("no active view")}
		}
		label := strings.TrimSpace(title)
		if label == "" {
			label = "Point"
		}
		return ActionResult{Info: fmt.Sprintf("Dropped %s at %v, %v", label, lon, lat)}
	}
}
