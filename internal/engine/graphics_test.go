package engine

import "testing"

func TestGraphicsCollectionAddAndRemoveAll(t *testing.T) {
	c := &GraphicsCollection{}
	if c.Len() != 0 {
		t.Fatalf("expected empty collection")
	}

	g := NewGraphic(Point{Lon: 1, Lat: 2}, map[string]interface{}{"title": "x"}, nil)
	c.Add(g)
	c.Add(nil)
	if c.Len() != 1 {
		t.Fatalf("expected 1 graphic, got %d", c.Len())
	}

	items := c.Items()
	if len(items) != 1 || items[0] != g {
		t.Fatalf("unexpected items snapshot: %v", items)
	}

	if removed := c.RemoveAll(); removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty collection after RemoveAll")
	}
	if removed := c.RemoveAll(); removed != 0 {
		t.Fatalf("expected 0 removed on empty collection, got %d", removed)
	}
}

func TestGraphicsCollectionNilSafe(t *testing.T) {
	var c *GraphicsCollection
	c.Add(NewGraphic(Point{}, nil, nil))
	if c.Len() != 0 || c.RemoveAll() != 0 || c.Items() != nil {
		t.Fatalf("nil collection must behave as empty")
	}
}

func TestNewGraphicAssignsID(t *testing.T) {
	a := NewGraphic(Point{}, nil, nil)
	b := NewGraphic(Point{}, nil, nil)
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct graphic ids, got %q and %q", a.ID, b.ID)
	}
}

func TestPopupTemplateResolve(t *testing.T) {
	tpl := &PopupTemplate{
		Title:   "{title}",
		Content: "Lon: {lon}\nLat: {lat}",
	}
	title, content := tpl.Resolve(map[string]interface{}{
		"title": "Camp",
		"lon":   -117.2,
		"lat":   34.0,
	})
	if title != "Camp" {
		t.Fatalf("unexpected title: %q", title)
	}
	if content != "Lon: -117.2\nLat: 34" {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestPopupTemplateResolveLeavesUnknownPlaceholders(t *testing.T) {
	tpl := &PopupTemplate{Title: "{title}", Content: "{missing}"}
	title, content := tpl.Resolve(map[string]interface{}{"title": "X"})
	if title != "X" {
		t.Fatalf("unexpected title: %q", title)
	}
	if content != "{missing}" {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestPopupTemplateResolveNil(t *testing.T) {
	var tpl *PopupTemplate
	title, content := tpl.Resolve(map[string]interface{}{"title": "X"})
	if title != "" || content != "" {
		t.Fatalf("nil template must resolve empty, got %q / %q", title, content)
	}
}
