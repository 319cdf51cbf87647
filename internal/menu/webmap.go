package menu

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/geoterm/mapview-control/internal/format/table"
	"github.com/geoterm/mapview-control/internal/logging/events"
)

func loadWebmapMenu(ctx Context) ([]Item, error) {
	return WebmapItems(ctx), nil
}

// WebmapItems lists the catalog documents as aligned menu entries, the
// currently open one first.
func WebmapItems(ctx Context) []Item {
	ordered := make([]WebmapEntry, 0, len(ctx.Webmaps))
	var current *WebmapEntry
	for _, entry := range ctx.Webmaps {
		if entry.Current || entry.ID == ctx.CurrentWebmap {
			picked := entry
			picked.Current = true
			current = &picked
			continue
		}
		ordered = append(ordered, entry)
	}
	sortWebmapEntries(ordered)
	if current != nil {
		ordered = append([]WebmapEntry{*current}, ordered...)
	}
	if len(ordered) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(ordered))
	ids := make([]string, 0, len(ordered))
	for _, entry := range ordered {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			title = entry.ID
		}
		owner := strings.TrimSpace(entry.Owner)
		if owner == "" {
			owner = "-"
		}
		currentMark := ""
		if entry.Current {
			currentMark = "current"
		}
		rows = append(rows, []string{title, owner, fmt.Sprintf("%d layers", entry.Layers), currentMark})
		ids = append(ids, entry.ID)
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignLeft})
	items := make([]Item, len(aligned))
	for i, label := range aligned {
		items[i] = Item{ID: ids[i], Label: label}
	}
	return items
}

func sortWebmapEntries(entries []WebmapEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		at := strings.ToLower(strings.TrimSpace(a.Title))
		bt := strings.ToLower(strings.TrimSpace(b.Title))
		if at != bt {
			return at < bt
		}
		return a.ID < b.ID
	})
}

func WebmapOpenAction(ctx Context, item Item) tea.Cmd {
	target := strings.TrimSpace(item.ID)
	if target == "" {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("invalid webmap target")} }
	}
	title := target
	for _, entry := range ctx.Webmaps {
		if entry.ID == target {
			title = entry.Title
			break
		}
	}
	return func() tea.Msg {
		events.Webmap.Open(target)
		return OpenWebmap{Context: ctx, ID: target, Title: title}
	}
}
