package events

import "github.com/geoterm/mapview-control/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) CatalogLoaded(dir string, count int) {
	logging.Trace("app.catalog", map[string]interface{}{"dir": dir, "count": count})
}

func (AppTracer) Shutdown(reason string) {
	logging.Trace("app.shutdown", map[string]interface{}{"reason": reason})
}
