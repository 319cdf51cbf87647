package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/format/table"
)

const (
	minMapZoom = 0
	maxMapZoom = 23

	mapSidePanelWidth = 34
	mapSplitMinWidth  = 80 // below this the side panels are dropped

	markerRune    = '●'
	crosshairRune = '┼'

	markerLabelMax = 12
)

// viewMap renders the full-screen map: header element, loader, canvas with
// markers and crosshair, optional popup and layers panels, and a status bar.
func (m *Model) viewMap() string {
	v := m.activeView()

	top := make([]string, 0, 3)
	top = append(top, m.mapHeaderLine())
	loaderLine := m.mapLoaderLine()
	if loaderLine != "" {
		top = append(top, loaderLine)
	}

	bottom := make([]string, 0, 3)
	bottom = append(bottom, m.mapStatusLine(v))
	bottom = append(bottom, m.mapMessageLine())
	if m.showFooter {
		footer := "←↑↓→ pan  +/- zoom  g go to  m mark  c clear  p popup  l layers  enter menu  q quit"
		if styles.Footer != nil {
			footer = styles.Footer.Render(footer)
		}
		bottom = append(bottom, footer)
	}

	canvasH := m.height - len(top) - len(bottom)
	if canvasH < 5 {
		canvasH = 5
	}

	popupOpen := v != nil && v.Popup().Visible()
	rightW := 0
	if m.width >= mapSplitMinWidth && (popupOpen || m.showLayersPanel) {
		rightW = mapSidePanelWidth
	}
	canvasW := m.width - rightW
	if canvasW < 20 {
		canvasW = 20
	}

	canvas := strings.Join(m.renderMapCanvas(v, canvasW, canvasH), "\n")
	middle := canvas
	if rightW > 0 {
		panels := make([]string, 0, 2)
		if popupOpen {
			panels = append(panels, m.renderPopupPanel(v, rightW))
		}
		if m.showLayersPanel {
			panels = append(panels, m.renderLayersPanel(v))
		}
		if len(panels) > 0 {
			right := lipgloss.JoinVertical(lipgloss.Left, panels...)
			right = lipgloss.NewStyle().MaxHeight(canvasH).Render(right)
			middle = lipgloss.JoinHorizontal(lipgloss.Top, canvas, right)
		}
	}

	rows := make([]string, 0, len(top)+1+len(bottom))
	rows = append(rows, top...)
	rows = append(rows, middle)
	rows = append(rows, bottom...)
	return strings.Join(rows, "\n")
}

// mapHeaderLine renders the page header element: heading, description, and
// link, as published by the view-ready choreography.
func (m *Model) mapHeaderLine() string {
	hc := m.doc.Header().Content()
	heading := strings.TrimSpace(hc.Heading)
	if heading == "" {
		heading = "mapview"
	}
	line := heading
	if styles.Header != nil {
		line = styles.Header.Render(heading)
	}
	if desc := strings.TrimSpace(hc.Description); desc != "" {
		if styles.HeaderDescription != nil {
			desc = styles.HeaderDescription.Render(desc)
		}
		line += "  " + desc
	}
	if href := strings.TrimSpace(hc.Href); href != "" {
		if styles.HeaderLink != nil {
			href = styles.HeaderLink.Render(href)
		}
		line += "  " + href
	}
	if m.width > 0 && lipgloss.Width(line) > m.width {
		line = truncate.StringWithTail(line, uint(m.width-1), "…")
	}
	return line
}

// mapLoaderLine renders the loading indicator while the loader element is
// still visible. It disappears for good once the choreography hides it.
func (m *Model) mapLoaderLine() string {
	if !m.loaderVisible() {
		return ""
	}
	text := "Loading map…"
	if styles.Loading != nil {
		text = styles.Loading.Render(text)
	}
	return m.loadSpinner.View() + text
}

func (m *Model) mapStatusLine(v *engine.View) string {
	if v == nil {
		text := "No webmap loaded."
		if styles.Info != nil {
			return styles.Info.Render(text)
		}
		return text
	}
	cam := v.Camera()
	visible := 0
	layers := []engine.Layer(nil)
	if mp := v.Map(); mp != nil {
		layers = mp.Layers
	}
	for _, layer := range layers {
		if v.LayerVisible(layer.ID) {
			visible++
		}
	}
	text := fmt.Sprintf("%.4f, %.4f  zoom %g  %d/%d layers  %d markers",
		cam.Center.Lon, cam.Center.Lat, cam.Zoom, visible, len(layers), v.Graphics().Len())
	if styles.Info != nil {
		return styles.Info.Render(text)
	}
	return text
}

func (m *Model) mapMessageLine() string {
	if m.errMsg != "" {
		text := fmt.Sprintf("Error: %s", m.errMsg)
		if styles.Error != nil {
			return styles.Error.Render(text)
		}
		return text
	}
	if m.catalogErr != "" {
		text := fmt.Sprintf("Catalog error: %s", m.catalogErr)
		if styles.Error != nil {
			return styles.Error.Render(text)
		}
		return text
	}
	if info := m.currentInfo(); info != "" {
		if styles.Info != nil {
			return styles.Info.Render(info)
		}
		return info
	}
	return ""
}

// renderMapCanvas draws the framed viewport. Markers project onto the grid
// with an equirectangular projection around the camera center; the crosshair
// always marks the center cell.
func (m *Model) renderMapCanvas(v *engine.View, width, height int) []string {
	innerW := width - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	grid := make([][]rune, innerH)
	for i := range grid {
		row := make([]rune, innerW)
		for j := range row {
			row[j] = ' '
		}
		grid[i] = row
	}

	title := " Map "
	if v == nil {
		writeCentered(grid, innerH/2-1, "No webmap loaded")
		writeCentered(grid, innerH/2+1, "Press enter for the menu, then pick a webmap")
	} else {
		if mp := v.Map(); mp != nil && mp.Basemap != "" {
			title = " " + mp.Basemap + " "
		}
		cam := v.Camera()
		// Visible longitude span halves with each zoom level; rows cover
		// twice the degrees of columns since terminal cells are roughly
		// twice as tall as wide.
		lonSpan := 360 / math.Exp2(cam.Zoom)
		degPerCol := lonSpan / float64(innerW)
		degPerRow := degPerCol * 2
		for _, g := range v.Graphics().Items() {
			col := innerW/2 + int(math.Round((g.Geometry.Lon-cam.Center.Lon)/degPerCol))
			row := innerH/2 - int(math.Round((g.Geometry.Lat-cam.Center.Lat)/degPerRow))
			if row < 0 || row >= innerH || col < 0 || col >= innerW {
				continue
			}
			grid[row][col] = markerRune
			writeMarkerLabel(grid[row], col+1, markerTitle(g))
		}
		grid[innerH/2][innerW/2] = crosshairRune
	}

	frame := func(s string) string {
		if styles.MapFrame != nil {
			return styles.MapFrame.Render(s)
		}
		return s
	}

	zoomSeg := ""
	if v != nil {
		zoomSeg = fmt.Sprintf(" zoom %g ", v.Camera().Zoom)
	}
	dashes := width - 4 - len([]rune(title)) - len([]rune(zoomSeg))
	if dashes < 0 {
		zoomSeg = ""
		dashes = width - 4 - len([]rune(title))
	}
	if dashes < 0 {
		title = " … "
		dashes = width - 4 - len([]rune(title))
	}
	if dashes < 0 {
		dashes = 0
	}

	rows := make([]string, 0, height)
	rows = append(rows, frame("╭─")+frame(title)+frame(strings.Repeat("─", dashes))+frame(zoomSeg)+frame("─╮"))
	for _, row := range grid {
		rows = append(rows, frame("│")+styleCanvasRow(row)+frame("│"))
	}
	rows = append(rows, frame("╰"+strings.Repeat("─", innerW)+"╯"))
	return rows
}

func styleCanvasRow(row []rune) string {
	var b strings.Builder
	for _, r := range row {
		switch r {
		case markerRune:
			if styles.MapMarker != nil {
				b.WriteString(styles.MapMarker.Render(string(r)))
				continue
			}
		case crosshairRune:
			if styles.MapCrosshair != nil {
				b.WriteString(styles.MapCrosshair.Render(string(r)))
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func writeCentered(grid [][]rune, row int, text string) {
	if row < 0 || row >= len(grid) {
		return
	}
	runes := []rune(text)
	width := len(grid[row])
	if len(runes) > width {
		runes = runes[:width]
	}
	start := (width - len(runes)) / 2
	copy(grid[row][start:], runes)
}

// writeMarkerLabel writes the marker title beside its glyph, stopping short
// of other markers so close neighbours stay readable.
func writeMarkerLabel(row []rune, start int, label string) {
	runes := []rune(label)
	if len(runes) > markerLabelMax {
		runes = runes[:markerLabelMax]
	}
	for i, r := range runes {
		pos := start + i
		if pos >= len(row) || row[pos] == markerRune {
			return
		}
		row[pos] = r
	}
}

func markerTitle(g *engine.Graphic) string {
	if g == nil {
		return ""
	}
	if title, ok := g.Attributes["title"].(string); ok {
		return title
	}
	return ""
}

// renderPopupPanel shows the open popup's resolved template content.
func (m *Model) renderPopupPanel(v *engine.View, width int) string {
	content := v.Popup().Content()
	innerW := width - 2
	if innerW < 1 {
		innerW = 1
	}

	frame := func(s string) string {
		if styles.PopupFrame != nil {
			return styles.PopupFrame.Render(s)
		}
		return s
	}

	title := strings.TrimSpace(content.Title)
	if title == "" {
		title = "Popup"
	}
	titleSeg := " " + title + " "
	if len([]rune(titleSeg)) > innerW-2 && innerW > 3 {
		titleSeg = string([]rune(titleSeg)[:innerW-3]) + "… "
	}
	dashes := width - 4 - len([]rune(titleSeg))
	if dashes < 0 {
		dashes = 0
	}

	bodyLines := []string{}
	for _, line := range strings.Split(content.Body, "\n") {
		bodyLines = append(bodyLines, line)
	}
	bodyLines = append(bodyLines, "", fmt.Sprintf("%.4f, %.4f", content.Location.Lon, content.Location.Lat))
	if content.Features > 1 {
		bodyLines = append(bodyLines, fmt.Sprintf("1 of %d features", content.Features))
	}

	titleText := titleSeg
	if styles.PopupTitle != nil {
		titleText = styles.PopupTitle.Render(titleSeg)
	}
	rows := make([]string, 0, len(bodyLines)+2)
	rows = append(rows, frame("╭─")+titleText+frame(strings.Repeat("─", dashes))+frame("─╮"))
	for _, line := range bodyLines {
		text := truncateText(line, innerW)
		if pad := innerW - len([]rune(text)); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
		if styles.PopupBody != nil {
			text = styles.PopupBody.Render(text)
		}
		rows = append(rows, frame("│")+text+frame("│"))
	}
	rows = append(rows, frame("╰"+strings.Repeat("─", innerW)+"╯"))
	return strings.Join(rows, "\n")
}

// renderLayersPanel tabulates the view's operational layers with their
// visibility state.
func (m *Model) renderLayersPanel(v *engine.View) string {
	if v == nil {
		return ""
	}
	layers := []engine.Layer(nil)
	if mp := v.Map(); mp != nil {
		layers = mp.Layers
	}
	rows := make([][]string, 0, len(layers))
	for _, layer := range layers {
		mark := " "
		if v.LayerVisible(layer.ID) {
			mark = "x"
		}
		title := layer.Title
		if title == "" {
			title = layer.ID
		}
		kind := layer.Kind
		if kind == "" {
			kind = "-"
		}
		rows = append(rows, []string{mark, title, kind})
	}
	if len(rows) == 0 {
		rows = append(rows, []string{" ", "(none)", "-"})
	}
	return table.Panel("Layers", []string{"on", "layer", "kind"}, rows)
}
