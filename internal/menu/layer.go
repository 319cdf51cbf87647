package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/geoterm/mapview-control/internal/format/table"
	"github.com/geoterm/mapview-control/internal/logging/events"
	"github.com/geoterm/mapview-control/internal/viewer"
)

var toggleLayerFn = (*viewer.Service).ToggleLayer

func loadLayerMenu(ctx Context) ([]Item, error) {
	return LayerItems(ctx), nil
}

// LayerItems lists the active view's operational layers with a visibility
// checkbox, in the order the map declares them.
func LayerItems(ctx Context) []Item {
	if len(ctx.Layers) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(ctx.Layers))
	ids := make([]string, 0, len(ctx.Layers))
	for _, entry := range ctx.Layers {
		mark := "[ ]"
		if entry.Visible {
			mark = "[x]"
		}
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			title = entry.ID
		}
		kind := strings.TrimSpace(entry.Kind)
		if kind == "" {
			kind = "-"
		}
		rows = append(rows, []string{mark, title, kind})
		ids = append(ids, entry.ID)
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft})
	items := make([]Item, len(aligned))
	for i, label := range aligned {
		items[i] = Item{ID: ids[i], Label: label}
	}
	return items
}

// LayerToggleAction flips layer visibility. Multi-select hands over several
// ids joined by newlines; each one toggles independently.
func LayerToggleAction(ctx Context, item Item) tea.Cmd {
	targets := splitTargets(item.ID)
	if len(targets) == 0 {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid layer target")} }
	}
	if len(targets) == 1 {
		return layerToggleOne(ctx, targets[0])
	}
	return func() tea.Msg {
		if ctx.Service == nil {
			return ActionResult{Err: fmt.Errorf("no active view")}
		}
		toggled := 0
		for _, target := range targets {
			visible, ok := toggleLayerFn(ctx.Service, target)
			if !ok {
				continue
			}
			events.Layer.Toggle(target, visible)
			toggled++
		}
		if toggled == 0 {
			return ActionResult{Err: fmt.Errorf("no matching layers")}
		}
		return ActionResult{Info: fmt.Sprintf("Toggled %d layers", toggled)}
	}
}

func layerToggleOne(ctx Context, target string) tea.Cmd {
	title := target
	for _, entry := range ctx.Layers {
		if entry.ID == target {
			if t := strings.TrimSpace(entry.Title); t != "" {
				title = t
			}
			break
		}
	}
	return func() tea.Msg {
		if ctx.Service == nil {
			return ActionResult{Err: fmt.Errorf("no active view")}
		}
		visible, ok := toggleLayerFn(ctx.Service, target)
		if !ok {
			return ActionResult{Err: fmt.Errorf("unknown layer %s", target)}
		}
		events.Layer.Toggle(target, visible)
		if visible {
			return ActionResult{Info: fmt.Sprintf("Showing %s", title)}
		}
		return ActionResult{Info: fmt.Sprintf("Hiding %s", title)}
	}
}

func splitTargets(raw string) []string {
	var targets []string
	for _, part := range strings.Split(raw, "\n") {
		if part = strings.TrimSpace(part); part != "" {
			targets = append(targets, part)
		}
	}
	return targets
}
