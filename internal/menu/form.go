package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/geoterm/mapview-control/internal/logging/events"
)

// CoordinateForm collects "lon, lat" style input for the drop-marker and
// go-to prompts.
type CoordinateForm struct {
	input  textinput.Model
	ctx    Context
	err    string
	mode   coordinateFormMode
	action string
	title  string
	help   string
}

type coordinateFormMode int

const (
	coordinateFormModeGoTo coordinateFormMode = iota
	coordinateFormModeDrop
)

func NewCoordinateForm(prompt CoordinatePrompt) *CoordinateForm {
	ti := textinput.New()
	ti.Placeholder = "lon, lat[, zoom]"
	ti.CharLimit = 96
	ti.Focus()
	if prompt.Initial != "" {
		ti.SetValue(prompt.Initial)
	}
	mode := coordinateFormModeGoTo
	title := "Go To Coordinates"
	help := "Press Enter to navigate. Esc to cancel."
	if prompt.Action == "marker:drop" {
		mode = coordinateFormModeDrop
		ti.Placeholder = "lon, lat[, title]"
		title = "Drop Marker"
		help = "Press Enter to drop. Esc to cancel."
	}
	form := &CoordinateForm{
		input:  ti,
		ctx:    prompt.Context,
		mode:   mode,
		action: prompt.Action,
		title:  title,
		help:   help,
	}
	form.err = form.validate()
	return form
}

func (f *CoordinateForm) Context() Context  { return f.ctx }
func (f *CoordinateForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *CoordinateForm) InputView() string { return f.input.View() }
func (f *CoordinateForm) Error() string     { return f.err }
func (f *CoordinateForm) Title() string     { return f.title }
func (f *CoordinateForm) Help() string      { return f.help }
func (f *CoordinateForm) IsDrop() bool      { return f.mode == coordinateFormModeDrop }

func (f *CoordinateForm) ActionID() string {
	if f.action != "" {
		return f.action
	}
	return "view:goto"
}

func (f *CoordinateForm) PendingLabel() string {
	value := f.Value()
	if value == "" {
		return f.ActionID()
	}
	return value
}

func (f *CoordinateForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch m.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
				f.err = f.validate()
			}
			return nil, false, false
		}
		switch m.Type {
		case tea.KeyEsc:
			if f.mode == coordinateFormModeDrop {
				events.Marker.CancelDrop(events.PromptReasonEscape)
			} else {
				events.View.CancelGoTo(events.PromptReasonEscape)
			}
			return nil, false, true
		case tea.KeyEnter:
			value := f.Value()
			if value == "" {
				if f.mode == coordinateFormModeDrop {
					events.Marker.CancelDrop(events.PromptReasonEmpty)
				} else {
					events.View.CancelGoTo(events.PromptReasonEmpty)
				}
				return nil, false, true
			}
			switch f.mode {
			case coordinateFormModeDrop:
				lon, lat, title, errStr := parseMarkerInput(value)
				if errStr != "" {
					f.err = errStr
					return nil, false, false
				}
				f.err = ""
				events.Marker.SubmitDrop(lon, lat, title)
				return MarkerDropCommand(f.ctx, lon, lat, title), true, false
			default:
				lon, lat, zoom, errStr := parseGoToInput(value)
				if errStr != "" {
					f.err = errStr
					return nil, false, false
				}
				f.err = ""
				events.View.SubmitGoTo(lon, lat, zoom)
				return GoToCommand(f.ctx, lon, lat, zoom), true, false
			}
		}
	}

	updated, cmd := f.input.Update(msg)
	f.input = updated
	f.err = f.validate()
	return cmd, false, false
}

func (f *CoordinateForm) validate() string {
	value := f.Value()
	if value == "" {
		return "coordinates required"
	}
	if f.mode == coordinateFormModeDrop {
		_, _, _, errStr := parseMarkerInput(value)
		return errStr
	}
	_, _, _, errStr := parseGoToInput(value)
	return errStr
}

func parseMarkerInput(value string) (lon, lat float64, title, errStr string) {
	parts := strings.Split(value, ",")
	if len(parts) < 2 {
		return 0, 0, "", "expected lon, lat"
	}
	lon, lat, errStr = parseLonLat(parts[0], parts[1])
	if errStr != "" {
		return 0, 0, "", errStr
	}
	if len(parts) > 2 {
		title = strings.TrimSpace(strings.Join(parts[2:], ","))
	}
	return lon, lat, title, ""
}

func parseGoToInput(value string) (lon, lat, zoom float64, errStr string) {
	parts := strings.Split(value, ",")
	if len(parts) < 2 {
		return 0, 0, 0, "expected lon, lat"
	}
	if len(parts) > 3 {
		return 0, 0, 0, "expected lon, lat[, zoom]"
	}
	lon, lat, errStr = parseLonLat(parts[0], parts[1])
	if errStr != "" {
		return 0, 0, 0, errStr
	}
	if lon < -180 || lon > 180 {
		return 0, 0, 0, "longitude must be between -180 and 180"
	}
	if lat < -90 || lat > 90 {
		return 0, 0, 0, "latitude must be between -90 and 90"
	}
	if len(parts) == 3 {
		raw := strings.TrimSpace(parts[2])
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, 0, 0, fmt.Sprintf("invalid zoom %q", raw)
		}
		if parsed < 0 || parsed > 23 {
			return 0, 0, 0, "zoom must be between 0 and 23"
		}
		zoom = parsed
	}
	return lon, lat, zoom, ""
}

func parseLonLat(rawLon, rawLat string) (lon, lat float64, errStr string) {
	rawLon = strings.TrimSpace(rawLon)
	rawLat = strings.TrimSpace(rawLat)
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return 0, 0, fmt.Sprintf("invalid longitude %q", rawLon)
	}
	lat, err = strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return 0, 0, fmt.Sprintf("invalid latitude %q", rawLat)
	}
	return lon, lat, ""
}
