package events

import (
	"time"

	"github.com/geoterm/mapview-control/internal/logging"
)

type ViewTracer struct{}

type HeaderTracer struct{}

type LoaderTracer struct{}

type skipReason string

const (
	SkipNoView    skipReason = "no-view"
	SkipNoMap     skipReason = "no-map"
	SkipNoItem    skipReason = "no-item"
	SkipNoElement skipReason = "no-element"
	SkipHidden    skipReason = "already-hidden"
)

var (
	View   = ViewTracer{}
	Header = HeaderTracer{}
	Loader = LoaderTracer{}
)

func (ViewTracer) Ready(path string) {
	logging.Trace("view.ready", map[string]interface{}{"path": path})
}

func (ViewTracer) MissingHandle() {
	logging.Trace("view.ready.missing-handle", nil)
}

func (ViewTracer) Adopted(viewID string) {
	logging.Trace("view.adopted", map[string]interface{}{"view": viewID})
}

func (ViewTracer) GoTo(lon, lat, zoom float64) {
	logging.Trace("view.goto", map[string]interface{}{"lon": lon, "lat": lat, "zoom": zoom})
}

func (ViewTracer) GoToSkipped() {
	logging.Trace("view.goto.skip", nil)
}

func (ViewTracer) GraphicsCleared(removed int) {
	logging.Trace("view.graphics.clear", map[string]interface{}{"removed": removed})
}

func (ViewTracer) MarkerDropped(lon, lat float64, title string) {
	logging.Trace("view.marker", map[string]interface{}{"lon": lon, "lat": lat, "title": title})
}

func (ViewTracer) PopupFailed(err error) {
	if err == nil {
		return
	}
	logging.Trace("view.popup.error", map[string]interface{}{"error": err.Error()})
}

func (ViewTracer) PopupDismissed() {
	logging.Trace("view.popup.dismiss", nil)
}

func (ViewTracer) GoToPrompt() {
	logging.Trace("view.goto.prompt", nil)
}

func (ViewTracer) SubmitGoTo(lon, lat, zoom float64) {
	logging.Trace("view.goto.submit", map[string]interface{}{"lon": lon, "lat": lat, "zoom": zoom})
}

func (ViewTracer) CancelGoTo(reason promptReason) {
	logging.Trace("view.goto.cancel", map[string]interface{}{"reason": string(reason)})
}

func (ViewTracer) LayerToggled(id string, visible bool) {
	logging.Trace("view.layer.toggle", map[string]interface{}{"id": id, "visible": visible})
}

func (HeaderTracer) Updated(heading string) {
	logging.Trace("header.update", map[string]interface{}{"heading": heading})
}

func (HeaderTracer) Skipped(reason skipReason) {
	logging.Trace("header.skip", map[string]interface{}{"reason": string(reason)})
}

func (LoaderTracer) Hidden(reason string) {
	logging.Trace("loader.hide", map[string]interface{}{"reason": reason})
}

func (LoaderTracer) Skipped(reason string, cause skipReason) {
	logging.Trace("loader.hide.skip", map[string]interface{}{"reason": reason, "cause": string(cause)})
}

func (LoaderTracer) ArmedLayerCreate() {
	logging.Trace("loader.arm.layer-create", nil)
}

func (LoaderTracer) ArmedTimeout(delay time.Duration) {
	logging.Trace("loader.arm.timeout", map[string]interface{}{"delay_ms": delay.Milliseconds()})
}
