package engine

// Notification announces that a view finished initializing. Depending on the
// surface generation the handle rides under Detail (current shape) or Target
// (legacy shape); consumers must try both, detail first.
type Notification struct {
	Detail *NotificationDetail
	Target *NotificationTarget
}

// NotificationDetail is the current-shape payload.
type NotificationDetail struct {
	View *View
}

// NotificationTarget is the legacy-shape payload.
type NotificationTarget struct {
	View *View
}
