package viewer

import "github.com/geoterm/mapview-control/internal/engine"

// Notification payload paths, in the order extraction tries them.
const (
	PathDetail = "detail"
	PathTarget = "target"
)

// ExtractView pulls the view handle out of a ready notification. The detail
// payload is tried first, then the target payload; the first present handle
// wins. Neither path is authoritative, so both stay supported. Returns the
// handle and the path it was found under, or nil and "".
func ExtractView(n *engine.Notification) (*engine.View, string) {
	if n == nil {
		return nil, ""
	}
	if n.Detail != nil && n.Detail.View != nil {
		return n.Detail.View, PathDetail
	}
	if n.Target != nil && n.Target.View != nil {
		return n.Target.View, PathTarget
	}
	return nil, ""
}
