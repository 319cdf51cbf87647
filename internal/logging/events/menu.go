package events

import "github.com/geoterm/mapview-control/internal/logging"

type WebmapTracer struct{}

type LayerTracer struct{}

type MarkerTracer struct{}

type promptReason string

const (
	PromptReasonEscape promptReason = "escape"
	PromptReasonEmpty  promptReason = "empty"
)

var (
	Webmap = WebmapTracer{}
	Layer  = LayerTracer{}
	Marker = MarkerTracer{}
)

func (WebmapTracer) Open(id string) {
	logging.Trace("webmap.open", map[string]interface{}{"id": id})
}

func (LayerTracer) Toggle(id string, visible bool) {
	logging.Trace("layer.toggle", map[string]interface{}{"id": id, "visible": visible})
}

func (MarkerTracer) DropPrompt(existing int) {
	logging.Trace("marker.drop.prompt", map[string]interface{}{"existing": existing})
}

func (MarkerTracer) SubmitDrop(lon, lat float64, title string) {
	logging.Trace("marker.drop.submit", map[string]interface{}{"lon": lon, "lat": lat, "title": title})
}

func (MarkerTracer) CancelDrop(reason promptReason) {
	logging.Trace("marker.drop.cancel", map[string]interface{}{"reason": string(reason)})
}

func (MarkerTracer) Focus(id string) {
	logging.Trace("marker.focus", map[string]interface{}{"id": id})
}

func (MarkerTracer) Clear(count int) {
	logging.Trace("marker.clear", map[string]interface{}{"count": count})
}
