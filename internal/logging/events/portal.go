package events

import "github.com/geoterm/mapview-control/internal/logging"

type PortalTracer struct{}

var Portal = PortalTracer{}

func (PortalTracer) Loaded(dir string, count, skipped int) {
	logging.Trace("portal.load", map[string]interface{}{"dir": dir, "count": count, "skipped": skipped})
}

func (PortalTracer) DocumentError(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("portal.document.error", map[string]interface{}{"path": path, "error": err.Error()})
}

func (PortalTracer) Reloaded(count int, trigger string) {
	logging.Trace("portal.reload", map[string]interface{}{"count": count, "trigger": trigger})
}

func (PortalTracer) WatchError(err error) {
	if err == nil {
		return
	}
	logging.Trace("portal.watch.error", map[string]interface{}{"error": err.Error()})
}
