package events

import "github.com/geoterm/mapview-control/internal/logging"

type EngineTracer struct{}

var Engine = EngineTracer{}

func (EngineTracer) ViewOpened(viewID, webmap string, legacy bool) {
	logging.Trace("engine.view.open", map[string]interface{}{
		"view":   viewID,
		"webmap": webmap,
		"legacy": legacy,
	})
}

func (EngineTracer) LayerViewCreated(viewID, layerID, title string) {
	logging.Trace("engine.layerview.create", map[string]interface{}{
		"view":  viewID,
		"layer": layerID,
		"title": title,
	})
}

func (EngineTracer) PopupOpened(title string) {
	logging.Trace("engine.popup.open", map[string]interface{}{"title": title})
}

func (EngineTracer) PopupClosed() {
	logging.Trace("engine.popup.close", nil)
}
