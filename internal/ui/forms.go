package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleCoordinateForm feeds messages to the active coordinate form. The
// form raises from either the map or the menu; both cancel and submit drop
// back to the mode that raised it.
func (m *Model) handleCoordinateForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.coordForm == nil {
		return false, nil
	}
	cmd, done, cancel := m.coordForm.Update(msg)
	if cancel {
		m.coordForm = nil
		m.restoreFormMode()
		return true, cmd
	}
	if done {
		actionID := m.coordForm.ActionID()
		pendingLabel := m.coordForm.PendingLabel()
		m.coordForm = nil
		m.restoreFormMode()
		m.loading = true
		m.pendingID = actionID
		m.pendingLabel = pendingLabel
		return true, cmd
	}
	if cmd != nil {
		return true, cmd
	}
	return true, nil
}

func (m *Model) restoreFormMode() {
	if m.formReturn == ModeMenu {
		m.enterMenuMode()
		return
	}
	m.enterMapMode()
}

func (m *Model) viewCoordinateFormWithHeader(header string) string {
	lines := []string{}
	if header != "" {
		lines = append(lines, header)
	}
	lines = append(lines, m.coordForm.Title(), "", m.coordForm.InputView())
	if err := m.coordForm.Error(); err != "" {
		lines = append(lines, "", styles.Error.Render(err))
	}
	lines = append(lines, "", m.coordForm.Help())
	return strings.Join(lines, "\n")
}
