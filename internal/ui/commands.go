package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/geoterm/mapview-control/internal/logging"
	"github.com/geoterm/mapview-control/internal/logging/events"
	"github.com/geoterm/mapview-control/internal/menu"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return m.syncFromView()
	}
	m.errMsg = ""
	if result.Info != "" {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	return m.syncFromView()
}

func (m *Model) loadMenuCmd(id, title string, loader menu.Loader) tea.Cmd {
	return func() tea.Msg {
		items, err := loader(m.menuContext())
		if err != nil {
			logging.Error(err)
		}
		return categoryLoadedMsg{id: id, title: title, items: items, err: err}
	}
}

// categoryLoadedMsg mirrors the async loader response.
type categoryLoadedMsg struct {
	id    string
	title string
	items []menu.Item
	err   error
}

func (m *Model) menuContext() menu.Context {
	ctx := menu.Context{
		Service:       m.service,
		CatalogDir:    m.webmaps.CatalogDir(),
		Webmaps:       m.webmaps.Entries(),
		CurrentWebmap: m.webmaps.Current(),
		Layers:        m.layers.Entries(),
		Markers:       m.markers.Entries(),
	}
	if m.service != nil {
		if v := m.service.View(); v != nil {
			ctx.HasView = true
			ctx.PopupOpen = v.Popup().Visible()
		}
	}
	return ctx
}
