package ui

import (
	"fmt"
	"testing"

	"github.com/geoterm/mapview-control/internal/menu"
)

func TestNewModelStartsOnMap(t *testing.T) {
	m := NewModel(ModelOptions{})
	if m.mode != ModeMap {
		t.Fatalf("expected map mode at start, got %v", m.mode)
	}
	if len(m.stack) != 1 || m.stack[0].ID != "root" {
		t.Fatalf("expected root level, got %#v", m.stack)
	}
}

func TestMenuHeaderRootLevel(t *testing.T) {
	m := NewModel(ModelOptions{})
	got := m.menuHeader()
	want := defaultRootTitle
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMenuHeaderNestedLevels(t *testing.T) {
	m := NewModel(ModelOptions{})
	m.stack = append(m.stack, newLevel("webmap", "webmap", nil, nil))
	got := m.menuHeader()
	want := "webmap"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMenuHeaderDeepLevels(t *testing.T) {
	m := NewModel(ModelOptions{})
	m.stack = append(m.stack, newLevel("marker", "marker", nil, nil))
	m.stack = append(m.stack, newLevel("marker:focus", "Focus", nil, nil))
	got := m.menuHeader()
	want := "marker→focus"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	m.stack = m.stack[:1]
	m.stack = append(m.stack, newLevel("view", "view", nil, nil))
	m.stack = append(m.stack, newLevel("view:goto", "Go To Coordinates…", nil, nil))
	got = m.menuHeader()
	want = "view→goto"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRootMenuOverrideSetsInitialLevel(t *testing.T) {
	m := NewModel(ModelOptions{RootMenu: "view"})
	if got := m.stack[0].ID; got != "view" {
		t.Fatalf("expected root id view, got %s", got)
	}
	if m.rootMenuID != "view" {
		t.Fatalf("expected rootMenuID to be view, got %s", m.rootMenuID)
	}
	if header := m.menuHeader(); header != "view" {
		t.Fatalf("expected header view, got %s", header)
	}
	if len(m.stack[0].Items) == 0 {
		t.Fatalf("expected view menu items to be preloaded")
	}
}

func TestRootMenuOverrideIncludesRootInHeaderBreadcrumb(t *testing.T) {
	m := NewModel(ModelOptions{RootMenu: "view"})
	m.stack = append(m.stack, newLevel("view:goto", "goto", nil, nil))
	if header := m.menuHeader(); header != "view→goto" {
		t.Fatalf("expected breadcrumb view→goto, got %s", header)
	}
}

func TestInvalidRootMenuFallsBackToDefault(t *testing.T) {
	m := NewModel(ModelOptions{RootMenu: "does-not-exist"})
	if got := m.stack[0].ID; got != "root" {
		t.Fatalf("expected default root id, got %s", got)
	}
	if m.rootMenuID != "" {
		t.Fatalf("expected empty rootMenuID, got %s", m.rootMenuID)
	}
	if m.errMsg == "" {
		t.Fatalf("expected error message for invalid root menu")
	}
}

func TestApplyNodeSettingsMarksLayerMultiSelect(t *testing.T) {
	m := NewModel(ModelOptions{})
	lvl := newLevel("layer", "layer", []menu.Item{{ID: "trails"}}, nil)
	m.applyNodeSettings(lvl)
	if !lvl.MultiSelect {
		t.Fatalf("layer level should allow multi-select")
	}
	if lvl.Node == nil || lvl.Node.ID != "layer" {
		t.Fatalf("expected registry node attached, got %#v", lvl.Node)
	}
}

func TestLevelToggleSelection(t *testing.T) {
	lvl := newLevel("test", "Test", []menu.Item{{ID: "a"}, {ID: "b"}}, nil)
	lvl.MultiSelect = true
	lvl.Cursor = 0
	lvl.ToggleCurrentSelection()
	if len(lvl.Selected) != 1 || !lvl.IsSelected("a") {
		t.Fatalf("expected first item selected, got %#v", lvl.Selected)
	}
	lvl.Cursor = 1
	lvl.ToggleCurrentSelection()
	if len(lvl.Selected) != 2 {
		t.Fatalf("expected two selections, got %#v", lvl.Selected)
	}
	lvl.ToggleCurrentSelection()
	if lvl.IsSelected("b") {
		t.Fatalf("expected deselection of second item")
	}
}

func TestLevelCursorPaging(t *testing.T) {
	items := make([]menu.Item, 12)
	for i := range items {
		items[i] = menu.Item{ID: fmt.Sprintf("item-%d", i)}
	}
	lvl := newLevel("test", "Test", items, nil)
	lvl.Cursor = 0
	if !lvl.MoveCursorPageDown(5) || lvl.Cursor != 5 {
		t.Fatalf("expected cursor at 5, got %d", lvl.Cursor)
	}
	if !lvl.MoveCursorPageDown(5) || lvl.Cursor != 10 {
		t.Fatalf("expected cursor at 10, got %d", lvl.Cursor)
	}
	if !lvl.MoveCursorPageDown(5) || lvl.Cursor != 11 {
		t.Fatalf("expected cursor at end, got %d", lvl.Cursor)
	}
	if lvl.MoveCursorPageDown(5) {
		t.Fatalf("expected no movement past end")
	}
	if !lvl.MoveCursorPageUp(5) || lvl.Cursor != 6 {
		t.Fatalf("expected cursor at 6, got %d", lvl.Cursor)
	}
	if !lvl.MoveCursorPageUp(5) || lvl.Cursor != 1 {
		t.Fatalf("expected cursor at 1, got %d", lvl.Cursor)
	}
	if !lvl.MoveCursorPageUp(5) || lvl.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", lvl.Cursor)
	}
	if lvl.MoveCursorPageUp(5) {
		t.Fatalf("expected no movement past start")
	}
	lvl.Cursor = 2
	if !lvl.MoveCursorPageDown(0) || lvl.Cursor != len(items)-1 {
		t.Fatalf("expected cursor jump to end with unknown page size, got %d", lvl.Cursor)
	}
}

func TestLevelCursorHomeEnd(t *testing.T) {
	lvl := newLevel("test", "Test", []menu.Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil)
	lvl.Cursor = 1
	if !lvl.MoveCursorHome() || lvl.Cursor != 0 {
		t.Fatalf("expected home to set cursor to 0, got %d", lvl.Cursor)
	}
	if lvl.MoveCursorHome() {
		t.Fatalf("expected no movement when already at home")
	}
	if !lvl.MoveCursorEnd() || lvl.Cursor != 2 {
		t.Fatalf("expected end to set cursor to last item, got %d", lvl.Cursor)
	}
	if lvl.MoveCursorEnd() {
		t.Fatalf("expected no movement when already at end")
	}
	empty := newLevel("empty", "Empty", nil, nil)
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty menu")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected empty menu cursor reset to 0, got %d", empty.Cursor)
	}
	if empty.MoveCursorEnd() {
		t.Fatalf("expected no movement for empty menu on end")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected empty menu cursor stay at 0, got %d", empty.Cursor)
	}
}
