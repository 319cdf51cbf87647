package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/geoterm/mapview-control/internal/data/dispatcher"
	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/portal"
)

type catalogEventMsg struct {
	event portal.Event
}

type catalogDoneMsg struct{}

type surfaceEventMsg struct {
	event engine.SurfaceEvent
}

type surfaceDoneMsg struct{}

// waitForCatalogEvent blocks on the portal watcher channel and republishes
// the next event as a Bubble Tea message.
func waitForCatalogEvent(w *portal.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return catalogDoneMsg{}
		}
		return catalogEventMsg{event: evt}
	}
}

// waitForSurfaceEvent blocks on the surface channel and republishes the next
// view lifecycle event as a Bubble Tea message.
func waitForSurfaceEvent(s *engine.Surface) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-s.Events()
		if !ok {
			return surfaceDoneMsg{}
		}
		return surfaceEventMsg{event: evt}
	}
}

func (m *Model) handleCatalogEventMsg(msg tea.Msg) tea.Cmd {
	evtMsg, ok := msg.(catalogEventMsg)
	if !ok {
		return nil
	}
	cmds := make([]tea.Cmd, 0, 2)
	if cmd := m.applyCatalogEvent(evtMsg.event); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.catalogWatcher != nil {
		cmds = append(cmds, waitForCatalogEvent(m.catalogWatcher))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleCatalogDoneMsg(tea.Msg) tea.Cmd {
	m.catalogWatcher = nil
	return nil
}

func (m *Model) handleSurfaceEventMsg(msg tea.Msg) tea.Cmd {
	evtMsg, ok := msg.(surfaceEventMsg)
	if !ok {
		return nil
	}
	cmds := make([]tea.Cmd, 0, 2)
	if cmd := m.applySurfaceEvent(evtMsg.event); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.surface != nil {
		cmds = append(cmds, waitForSurfaceEvent(m.surface))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleSurfaceDoneMsg(tea.Msg) tea.Cmd {
	m.surface = nil
	return nil
}

// applyCatalogEvent folds a catalog reload into the stores and refreshes any
// open webmap level.
func (m *Model) applyCatalogEvent(evt portal.Event) tea.Cmd {
	if evt.Err != nil {
		m.catalogErr = evt.Err.Error()
		return nil
	}
	if evt.Catalog == nil {
		return nil
	}
	m.catalogErr = ""
	m.catalog = evt.Catalog
	res := m.dispatcher.HandleCatalog(evt)
	return m.refreshMenuLevels(res)
}

// applySurfaceEvent runs the view-ready choreography before mirroring the
// view into the menu stores. Ready notifications without an adoptable handle
// are traced and dropped inside the coordinator, so the stores refresh only
// from the event's own view reference.
func (m *Model) applySurfaceEvent(evt engine.SurfaceEvent) tea.Cmd {
	if evt.Kind == engine.KindViewReady && m.coordinator != nil {
		m.coordinator.HandleViewReady(evt.Notification)
	}
	res := m.dispatcher.HandleSurface(evt)
	return m.refreshMenuLevels(res)
}

// refreshMenuLevels reloads the open levels whose backing store changed.
func (m *Model) refreshMenuLevels(res dispatcher.Result) tea.Cmd {
	cmds := make([]tea.Cmd, 0, 3)
	if res.WebmapsUpdated {
		if cmd := m.refreshLevel("webmap"); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if res.LayersUpdated {
		if cmd := m.refreshLevel("layer"); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if res.MarkersUpdated {
		if cmd := m.refreshLevel("marker:focus"); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) refreshLevel(id string) tea.Cmd {
	lvl := m.findLevelByID(id)
	if lvl == nil {
		return nil
	}
	node, ok := m.registry.Find(id)
	if !ok || node.Loader == nil {
		return nil
	}
	items, err := node.Loader(m.menuContext())
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	lvl.UpdateItems(items)
	m.syncViewport(lvl)
	return m.ensurePreviewForLevel(lvl)
}

// syncFromView mirrors the active view's layers and graphics into the stores
// after a local mutation, then refreshes the affected levels. Marker drops
// and layer toggles happen synchronously on the view, so no surface event
// announces them.
func (m *Model) syncFromView() tea.Cmd {
	if m.service == nil {
		return nil
	}
	v := m.service.View()
	if v == nil {
		return nil
	}
	res := m.dispatcher.HandleSurface(engine.SurfaceEvent{Kind: engine.KindViewReady, View: v})
	return m.refreshMenuLevels(res)
}
