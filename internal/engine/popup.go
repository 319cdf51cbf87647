package engine

import (
	"errors"
	"sync"

	"github.com/geoterm/mapview-control/internal/logging/events"
)

var (
	// ErrPopupUnavailable is returned when the view carries no popup control.
	ErrPopupUnavailable = errors.New("engine: popup unavailable")
	// ErrPopupNoLocation is returned when open options lack an anchor point.
	ErrPopupNoLocation = errors.New("engine: popup requires a location")
	// ErrPopupNoFeatures is returned when open options carry no features.
	ErrPopupNoFeatures = errors.New("engine: popup requires at least one feature")
)

// PopupOptions anchor a popup at a location and select the features it shows.
type PopupOptions struct {
	Location *Point
	Features []*Graphic
}

// PopupContent is a render-ready snapshot of the popup state.
type PopupContent struct {
	Open     bool
	Title    string
	Body     string
	Location Point
	Features int
}

// Popup is a view's single popup control. A nil popup rejects every open,
// which is how views with popups disabled behave.
type Popup struct {
	mu       sync.Mutex
	open     bool
	location Point
	features []*Graphic
	title    string
	body     string
}

// Open anchors the popup at the given location and resolves the first
// feature's template for display.
func (p *Popup) Open(opts PopupOptions) error {
	if p == nil {
		return ErrPopupUnavailable
	}
	if opts.Location == nil {
		return ErrPopupNoLocation
	}
	if len(opts.Features) == 0 {
		return ErrPopupNoFeatures
	}

	feature := opts.Features[0]
	title, body := "", ""
	if feature != nil {
		title, body = feature.Template.Resolve(feature.Attributes)
	}

	p.mu.Lock()
	p.open = true
	p.location = *opts.Location
	p.features = append([]*Graphic(nil), opts.Features...)
	p.title = title
	p.body = body
	p.mu.Unlock()

	events.Engine.PopupOpened(title)
	return nil
}

// Close dismisses the popup and reports whether it was open.
func (p *Popup) Close() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	wasOpen := p.open
	p.open = false
	p.features = nil
	p.mu.Unlock()
	if wasOpen {
		events.Engine.PopupClosed()
	}
	return wasOpen
}

// Visible reports whether the popup is currently open.
func (p *Popup) Visible() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Content returns a snapshot of the popup for rendering.
func (p *Popup) Content() PopupContent {
	if p == nil {
		return PopupContent{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return PopupContent{
		Open:     p.open,
		Title:    p.title,
		Body:     p.body,
		Location: p.location,
		Features: len(p.features),
	}
}
