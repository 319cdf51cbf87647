package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/menu"
)

var errTest = errors.New("boom")

func TestWithPromptResetsStateAndReturnsCommand(t *testing.T) {
	m := NewModel(ModelOptions{Verbose: true})
	m.loading = true
	m.pendingID = "test"
	m.pendingLabel = "label"
	m.errMsg = "previous"
	m.setInfo("old info")

	cmd := m.withPrompt(func() promptResult {
		return promptResult{Cmd: tea.Quit, Info: "executed"}
	})

	if m.loading {
		t.Fatalf("expected loading cleared")
	}
	if m.pendingID != "" || m.pendingLabel != "" {
		t.Fatalf("expected pending fields cleared, got %q %q", m.pendingID, m.pendingLabel)
	}
	if m.errMsg != "" {
		t.Fatalf("expected error cleared, got %q", m.errMsg)
	}
	if m.infoMsg != "executed" {
		t.Fatalf("expected info message set, got %q", m.infoMsg)
	}
	if cmd == nil {
		t.Fatalf("expected command returned")
	}
	if msg := cmd(); msg == nil {
		t.Fatalf("expected command to emit a message")
	} else if _, ok := msg.(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message, got %T", msg)
	}
}

func TestWithPromptHandlesError(t *testing.T) {
	m := NewModel(ModelOptions{})

	cmd := m.withPrompt(func() promptResult {
		return promptResult{Err: errTest}
	})

	if cmd != nil {
		t.Fatalf("expected no command on error")
	}
	if m.errMsg != errTest.Error() {
		t.Fatalf("expected error message %q, got %q", errTest.Error(), m.errMsg)
	}
	if m.infoMsg != "" {
		t.Fatalf("expected info cleared on error, got %q", m.infoMsg)
	}
}

func TestCoordinatePromptRaisesForm(t *testing.T) {
	m := NewModel(ModelOptions{})
	m.enterMenuMode()
	cmd := m.handleCoordinatePromptMsg(menu.CoordinatePrompt{Action: "view:goto"})
	if cmd != nil {
		t.Fatalf("expected no follow-up command, got %v", cmd)
	}
	if m.coordForm == nil {
		t.Fatalf("expected coordinate form active")
	}
	if m.mode != ModeCoordinateForm {
		t.Fatalf("expected form mode, got %v", m.mode)
	}
	if m.formReturn != ModeMenu {
		t.Fatalf("expected form to return to menu mode, got %v", m.formReturn)
	}
}

func TestOpenWebmapWithoutCatalog(t *testing.T) {
	m := NewModel(ModelOptions{})
	cmd := m.handleOpenWebmapMsg(menu.OpenWebmap{ID: "parks-01"})
	if cmd != nil {
		t.Fatalf("expected no command, got %v", cmd)
	}
	if m.errMsg != "no catalog loaded" {
		t.Fatalf("unexpected error message %q", m.errMsg)
	}
}

func TestOpenWebmapUnknownID(t *testing.T) {
	m := NewModel(ModelOptions{})
	m.catalog = catalogFixture()
	m.handleOpenWebmapMsg(menu.OpenWebmap{ID: "ghost"})
	if !strings.Contains(m.errMsg, "ghost not found in catalog") {
		t.Fatalf("unexpected error message %q", m.errMsg)
	}
}

func TestOpenWebmapWithoutSurface(t *testing.T) {
	m := NewModel(ModelOptions{})
	m.catalog = catalogFixture()
	m.handleOpenWebmapMsg(menu.OpenWebmap{ID: "parks-01"})
	if m.errMsg != "surface stopped" {
		t.Fatalf("unexpected error message %q", m.errMsg)
	}
}

func TestOpenWebmapStartsLoadAndEntersMapMode(t *testing.T) {
	surface := engine.NewSurface(engine.SurfaceOptions{})
	defer surface.Stop()
	doc, svc, coord := newViewerFixture()
	defer coord.Close()

	m := NewModel(ModelOptions{Service: svc, Coordinator: coord, Surface: surface, Document: doc})
	m.catalog = catalogFixture()
	m.enterMenuMode()

	cmd := m.handleOpenWebmapMsg(menu.OpenWebmap{ID: "parks-01", Title: "Parks"})
	if cmd == nil {
		t.Fatalf("expected spinner command")
	}
	if m.mode != ModeMap {
		t.Fatalf("expected map mode after open, got %v", m.mode)
	}
	if m.infoMsg != "Opening Parks" {
		t.Fatalf("unexpected info %q", m.infoMsg)
	}
	if doc.Loader().Hidden() {
		t.Fatalf("fresh loader should start visible")
	}

	select {
	case evt := <-surface.Events():
		if evt.Kind != engine.KindViewReady {
			t.Fatalf("expected view-ready event first, got %v", evt.Kind)
		}
		if evt.View == nil || evt.View.Map() == nil || evt.View.Map().Basemap != "topo" {
			t.Fatalf("event should carry the opened map, got %#v", evt.View)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for view-ready event")
	}
}

func TestOpenWebmapReplacesSpentLoader(t *testing.T) {
	surface := engine.NewSurface(engine.SurfaceOptions{})
	defer surface.Stop()
	doc, svc, coord := newViewerFixture()
	defer coord.Close()

	m := NewModel(ModelOptions{Service: svc, Coordinator: coord, Surface: surface, Document: doc})
	m.catalog = catalogFixture()

	doc.Loader().Hide()
	if !doc.Loader().Hidden() {
		t.Fatalf("setup: loader should be hidden")
	}

	m.handleOpenWebmapMsg(menu.OpenWebmap{ID: "parks-01"})
	if doc.Loader().Hidden() {
		t.Fatalf("open should install a fresh visible loader")
	}
}
