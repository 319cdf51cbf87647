package engine

import "time"

// PortalItem carries the catalog metadata attached to a web map. Maps opened
// from raw definitions have no item.
type PortalItem struct {
	ID           string
	Title        string
	Snippet      string
	ThumbnailURL string
	ItemPageURL  string
	Owner        string
	Modified     time.Time
}

// Layer describes one operational layer of a web map.
type Layer struct {
	ID      string
	Title   string
	Kind    string
	Visible bool
}

// Map is the loaded web-map definition a view renders. Item is nil when the
// map was not sourced from a portal item.
type Map struct {
	Item           *PortalItem
	Basemap        string
	Layers         []Layer
	InitialCenter  Point
	InitialZoom    float64
	PopupsDisabled bool
}
