package menu

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/geoterm/mapview-control/internal/viewer"
)

// Item represents a selectable menu entry.
type Item struct {
	ID    string
	Label string
}

// Level describes a breadcrumb component for display purposes.
type Level struct {
	ID    string
	Title string
	Items []Item
}

// Context carries runtime data needed by loader functions.
type Context struct {
	Service       *viewer.Service
	CatalogDir    string
	Webmaps       []WebmapEntry
	CurrentWebmap string
	Layers        []LayerEntry
	Markers       []MarkerEntry
	HasView       bool
	PopupOpen     bool
}

// WebmapEntry represents a catalog document reference for menu loaders.
type WebmapEntry struct {
	ID      string
	Label   string
	Title   string
	Owner   string
	Layers  int
	Current bool
}

// LayerEntry represents an operational layer reference for menu loaders.
type LayerEntry struct {
	ID      string
	Label   string
	Title   string
	Kind    string
	Visible bool
}

// MarkerEntry represents a dropped marker reference for menu loaders.
type MarkerEntry struct {
	ID    string
	Label string
	Title string
	Lon   float64
	Lat   float64
}

// Loader populates submenu entries on demand.
type Loader func(Context) ([]Item, error)

type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Info string
	Err  error
}

// OpenWebmap requests that the application open the identified catalog
// document as the active view.
type OpenWebmap struct {
	Context Context
	ID      string
	Title   string
}

// CoordinatePrompt requests interactive coordinate input for map operations.
type CoordinatePrompt struct {
	Context Context
	Action  string
	Initial string
}

// RootItems returns the top-level menu entries.
func RootItems() []Item {
	return []Item{
		{ID: "webmap", Label: "webmap"},
		{ID: "layer", Label: "layer"},
		{ID: "marker", Label: "marker"},
		{ID: "view", Label: "view"},
	}
}

// CategoryLoaders lists submenu loaders keyed by root item ID.
func CategoryLoaders() map[string]Loader {
	return map[string]Loader{
		"webmap": loadWebmapMenu,
		"layer":  loadLayerMenu,
		"marker": loadMarkerMenu,
		"view":   loadViewMenu,
	}
}

// ActionHandlers maps submenu identifiers to their execution logic.
func ActionHandlers() map[string]Action {
	return map[string]Action{
		"webmap":       WebmapOpenAction,
		"layer":        LayerToggleAction,
		"marker:drop":  MarkerDropAction,
		"marker:focus": MarkerFocusAction,
		"marker:clear": MarkerClearAction,
		"view:goto":    ViewGoToAction,
		"view:popup":   PopupCloseAction,
	}
}

// ActionLoaders enumerates loaders for nested submenu actions.
func ActionLoaders() map[string]Loader {
	return map[string]Loader{
		"marker:focus": loadMarkerFocusMenu,
	}
}

func WebmapEntriesToItems(entries []WebmapEntry) []Item {
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{ID: entry.ID, Label: entry.Label})
	}
	return items
}

func LayerEntriesToItems(entries []LayerEntry) []Item {
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{ID: entry.ID, Label: entry.Label})
	}
	return items
}

func MarkerEntriesToItems(entries []MarkerEntry) []Item {
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{ID: entry.ID, Label: entry.Label})
	}
	return items
}

func menuItemsFromIDs(ids []string) []Item {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, Item{ID: id, Label: prettyLabel(id)})
	}
	return items
}

func prettyLabel(id string) string {
	if id == "" {
		return id
	}
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
