package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/geoterm/mapview-control/internal/document"
	"github.com/geoterm/mapview-control/internal/logging/events"
	"github.com/geoterm/mapview-control/internal/menu"
)

type promptResult struct {
	Cmd  tea.Cmd
	Info string
	Err  error
}

// withPrompt centralises the common prompt flow: reset pending state, then
// execute the provided action. The action can return a promptResult to
// control follow-up behaviour (command to run, informational message, or
// error).
func (m *Model) withPrompt(action func() promptResult) tea.Cmd {
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	m.forceClearInfo()
	m.errMsg = ""
	if action == nil {
		return nil
	}
	result := action()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	}
	return result.Cmd
}

func (m *Model) handleCoordinatePromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.CoordinatePrompt)
	if !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		m.startCoordinateForm(prompt)
		return promptResult{}
	})
}

func (m *Model) startCoordinateForm(prompt menu.CoordinatePrompt) {
	m.coordForm = menu.NewCoordinateForm(prompt)
	m.formReturn = m.mode
	m.mode = ModeCoordinateForm
	events.UI.ModeChange("form")
}

// handleOpenWebmapMsg resolves the picked catalog entry and hands its map to
// the surface. The surface loads asynchronously; readiness arrives later as
// a surface event.
func (m *Model) handleOpenWebmapMsg(msg tea.Msg) tea.Cmd {
	req, ok := msg.(menu.OpenWebmap)
	if !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		if m.catalog == nil {
			return promptResult{Err: errors.New("no catalog loaded")}
		}
		doc := m.catalog.Find(req.ID)
		if doc == nil {
			return promptResult{Err: fmt.Errorf("webmap %s not found in catalog", req.ID)}
		}
		if m.surface == nil {
			return promptResult{Err: errors.New("surface stopped")}
		}
		// Each open is a fresh page load, so the one-way loader element
		// is replaced rather than reset.
		if m.doc != nil {
			m.doc.Register(document.LoaderKey, &document.Loader{})
		}
		m.surface.OpenView(doc.ToMap())
		title := doc.Title()
		if title == "" {
			title = req.ID
		}
		m.enterMapMode()
		return promptResult{Info: fmt.Sprintf("Opening %s", title), Cmd: m.loadSpinner.Tick}
	})
}
