package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/geoterm/mapview-control/internal/data/dispatcher"
	"github.com/geoterm/mapview-control/internal/document"
	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/menu"
	"github.com/geoterm/mapview-control/internal/portal"
	"github.com/geoterm/mapview-control/internal/state"
	"github.com/geoterm/mapview-control/internal/theme"
	"github.com/geoterm/mapview-control/internal/ui/command"
	uistate "github.com/geoterm/mapview-control/internal/ui/state"
	"github.com/geoterm/mapview-control/internal/viewer"
)

type level = uistate.Level

type Mode int

const (
	ModeMap Mode = iota
	ModeMenu
	ModeCoordinateForm
)

const (
	menuHeaderSeparator = "→"
	defaultRootTitle    = "main menu"
)

var styles = theme.Default()

var headerSegmentCleaner = strings.NewReplacer("_", " ", "-", " ")

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	return uistate.NewLevel(id, title, items, node)
}

// Model implements the Bubble Tea model for the map viewer control.
type Model struct {
	stack        []*level
	loading      bool
	pendingID    string
	pendingLabel string
	errMsg       string
	infoMsg      string
	infoExpire   time.Time
	width        int
	height       int
	fixedWidth   bool
	fixedHeight  bool

	catalogWatcher *portal.Watcher
	surface        *engine.Surface
	coordinator    *viewer.Coordinator
	service        *viewer.Service
	doc            *document.Document
	catalog        *portal.Catalog
	catalogErr     string

	showFooter      bool
	verbose         bool
	showLayersPanel bool

	coordForm  *menu.CoordinateForm
	formReturn Mode

	filterCursor      cursor.Model
	filterCursorDirty bool
	loadSpinner       spinner.Model

	preview    map[string]*previewData
	previewSeq int

	handlers map[reflect.Type]msgHandler

	registry   *menu.Registry
	bus        *command.Bus
	mode       Mode
	rootMenuID string
	rootTitle  string
	webmaps    state.WebmapStore
	layers     state.LayerStore
	markers    state.MarkerStore
	dispatcher *dispatcher.Dispatcher
}

// ModelOptions carries the collaborators and presentation settings for a new
// model.
type ModelOptions struct {
	Service     *viewer.Service
	Coordinator *viewer.Coordinator
	Surface     *engine.Surface
	Catalog     *portal.Watcher
	Document    *document.Document
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
	RootMenu    string
}

// NewModel initialises the UI state with the root menu and configuration.
func NewModel(opts ModelOptions) *Model {
	registry := menu.BuildRegistry()
	webmaps := state.NewWebmapStore()
	layers := state.NewLayerStore()
	markers := state.NewMarkerStore()
	rootItems := menu.RootItems()
	root := newLevel("root", "Main Menu", rootItems, registry.Root())
	m := &Model{
		stack:          []*level{root},
		registry:       registry,
		bus:            command.New(),
		catalogWatcher: opts.Catalog,
		surface:        opts.Surface,
		coordinator:    opts.Coordinator,
		service:        opts.Service,
		doc:            opts.Document,
		showFooter:     opts.ShowFooter,
		verbose:        opts.Verbose,
		mode:           ModeMap,
		rootTitle:      defaultRootTitle,
		webmaps:        webmaps,
		layers:         layers,
		markers:        markers,
		dispatcher:     dispatcher.New(webmaps, layers, markers),
	}
	m.applyNodeSettings(root)
	m.syncViewport(root)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	if styles.Loading != nil {
		sp.Style = styles.Loading.Copy()
	}
	m.loadSpinner = sp
	m.applyRootMenuOverride(opts.RootMenu)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.catalogWatcher != nil {
		cmds = append(cmds, waitForCatalogEvent(m.catalogWatcher))
	}
	if m.surface != nil {
		cmds = append(cmds, waitForSurfaceEvent(m.surface))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, m.loadSpinner.Tick)
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	// Key presses go to the active form; everything else falls through so
	// the catalog and surface pumps stay armed while a form is open.
	if m.mode == ModeCoordinateForm {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			if handled, cmd := m.handleCoordinateForm(msg); handled {
				if cmd != nil {
					cmds = append(cmds, cmd)
				}
				return m, m.finishUpdate(cmds)
			}
		}
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):            m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):     m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):          m.handleMouseMsg,
		reflect.TypeOf(categoryLoadedMsg{}):     m.handleCategoryLoadedMsg,
		reflect.TypeOf(menu.ActionResult{}):     m.handleActionResultMsg,
		reflect.TypeOf(menu.CoordinatePrompt{}): m.handleCoordinatePromptMsg,
		reflect.TypeOf(menu.OpenWebmap{}):       m.handleOpenWebmapMsg,
		reflect.TypeOf(catalogEventMsg{}):       m.handleCatalogEventMsg,
		reflect.TypeOf(catalogDoneMsg{}):        m.handleCatalogDoneMsg,
		reflect.TypeOf(surfaceEventMsg{}):       m.handleSurfaceEventMsg,
		reflect.TypeOf(surfaceDoneMsg{}):        m.handleSurfaceDoneMsg,
		reflect.TypeOf(previewLoadedMsg{}):      m.handlePreviewLoadedMsg,
		reflect.TypeOf(spinner.TickMsg{}):       m.handleSpinnerTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	if !m.loaderVisible() {
		return nil
	}
	var cmd tea.Cmd
	m.loadSpinner, cmd = m.loadSpinner.Update(tick)
	return cmd
}

func (m *Model) loaderVisible() bool {
	if m.doc == nil {
		return false
	}
	return !m.doc.Loader().Hidden()
}
