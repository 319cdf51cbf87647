package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type previewKind int

const (
	previewKindNone previewKind = iota
	previewKindWebmap
	previewKindMarker
)

type previewData struct {
	kind         previewKind
	target       string
	label        string
	lines        []string
	err          string
	loading      bool
	seq          int
	scrollOffset int // position within lines; clamped by renderPreviewPanel
}

type previewLoadedMsg struct {
	levelID string
	kind    previewKind
	target  string
	seq     int
	lines   []string
	err     error
}

func (m *Model) ensurePreviewForLevel(level *level) tea.Cmd {
	if level == nil {
		return nil
	}
	kind := previewKindForLevel(level.ID)
	if kind == previewKindNone {
		m.clearPreview(level.ID)
		return nil
	}
	if len(level.Items) == 0 {
		m.clearPreview(level.ID)
		return nil
	}
	if level.Cursor < 0 || level.Cursor >= len(level.Items) {
		level.Cursor = 0
	}
	item := level.Items[level.Cursor]
	if item.ID == "" {
		m.clearPreview(level.ID)
		return nil
	}
	if m.preview == nil {
		m.preview = make(map[string]*previewData)
	}
	if existing, ok := m.preview[level.ID]; ok && existing.target == item.ID && !existing.loading {
		return nil
	}
	m.previewSeq++
	seq := m.previewSeq
	m.preview[level.ID] = &previewData{
		kind:    kind,
		target:  item.ID,
		label:   item.Label,
		loading: true,
		seq:     seq,
	}
	levelID := level.ID
	target := item.ID
	switch kind {
	case previewKindWebmap:
		lines, err := m.webmapPreviewLines(target)
		return func() tea.Msg {
			return previewLoadedMsg{levelID: levelID, kind: kind, target: target, seq: seq, lines: lines, err: err}
		}
	case previewKindMarker:
		lines := m.markerPreviewLines(target)
		return func() tea.Msg {
			return previewLoadedMsg{levelID: levelID, kind: kind, target: target, seq: seq, lines: lines}
		}
	default:
		return nil
	}
}

func (m *Model) ensurePreviewForCurrentLevel() tea.Cmd {
	return m.ensurePreviewForLevel(m.currentLevel())
}

func (m *Model) clearPreview(levelID string) {
	if levelID == "" || m.preview == nil {
		return
	}
	delete(m.preview, levelID)
}

func (m *Model) activePreview() *previewData {
	if len(m.stack) == 0 || m.preview == nil {
		return nil
	}
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	return m.preview[current.ID]
}

func previewKindForLevel(id string) previewKind {
	switch id {
	case "webmap":
		return previewKindWebmap
	case "marker:focus":
		return previewKindMarker
	default:
		return previewKindNone
	}
}

func (m *Model) handlePreviewLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(previewLoadedMsg)
	if !ok {
		return nil
	}
	if m.preview == nil {
		return nil
	}
	data, ok := m.preview[update.levelID]
	if !ok {
		return nil
	}
	if data.seq != update.seq || data.target != update.target {
		return nil
	}
	data.loading = false
	if update.err != nil {
		data.err = update.err.Error()
		data.lines = nil
	} else {
		data.err = ""
		data.lines = update.lines
	}
	data.scrollOffset = 0
	// Re-sync the viewport so the cursor stays visible now that item heights changed.
	m.syncViewport(m.currentLevel())
	return nil
}

// webmapPreviewLines summarises a catalog document for the preview panel.
func (m *Model) webmapPreviewLines(id string) ([]string, error) {
	if m.catalog == nil {
		return nil, errors.New("no catalog loaded")
	}
	doc := m.catalog.Find(id)
	if doc == nil {
		return nil, fmt.Errorf("webmap %s not in catalog", id)
	}
	lines := []string{}
	if doc.Item != nil {
		if doc.Item.Owner != "" {
			lines = append(lines, fmt.Sprintf("Owner    %s", doc.Item.Owner))
		}
		if !doc.Item.Modified.IsZero() {
			lines = append(lines, fmt.Sprintf("Modified %s", doc.Item.Modified.Format("2006-01-02")))
		}
	}
	if doc.Basemap != "" {
		lines = append(lines, fmt.Sprintf("Basemap  %s", doc.Basemap))
	}
	if doc.InitialState != nil && len(doc.InitialState.Center) >= 2 {
		lines = append(lines, fmt.Sprintf("Start    %.4f, %.4f (zoom %v)",
			doc.InitialState.Center[0], doc.InitialState.Center[1], doc.InitialState.Zoom))
	}
	if doc.PopupsDisabled {
		lines = append(lines, "Popups   disabled")
	}
	if doc.Item != nil && doc.Item.Snippet != "" {
		lines = append(lines, "", doc.Item.Snippet)
	}
	lines = append(lines, "")
	if len(doc.OperationalLayers) == 0 {
		lines = append(lines, "(no operational layers)")
		return lines, nil
	}
	lines = append(lines, fmt.Sprintf("%d operational layers:", len(doc.OperationalLayers)))
	for _, ref := range doc.OperationalLayers {
		mark := "x"
		if ref.Visible != nil && !*ref.Visible {
			mark = " "
		}
		title := ref.Title
		if title == "" {
			title = ref.ID
		}
		kind := ref.Kind
		if kind == "" {
			kind = "layer"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s (%s)", mark, title, kind))
	}
	return lines, nil
}

// markerPreviewLines summarises a dropped marker for the preview panel.
func (m *Model) markerPreviewLines(id string) []string {
	for _, entry := range m.markers.Entries() {
		if entry.ID != id {
			continue
		}
		title := entry.Title
		if title == "" {
			title = "Point"
		}
		return []string{
			title,
			"",
			fmt.Sprintf("Lon %9.4f", entry.Lon),
			fmt.Sprintf("Lat %9.4f", entry.Lat),
		}
	}
	return []string{"(marker not found)"}
}
