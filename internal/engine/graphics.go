package engine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Point is a longitude/latitude pair in degrees.
type Point struct {
	Lon float64
	Lat float64
}

func (p Point) String() string {
	return fmt.Sprintf("%.4f, %.4f", p.Lon, p.Lat)
}

// PopupTemplate formats a graphic's attributes for display. Placeholders of
// the form {name} in Title and Content are substituted from the attribute map.
type PopupTemplate struct {
	Title   string
	Content string
}

// Resolve substitutes attribute values into the template. Placeholders with
// no matching attribute are left verbatim.
func (t *PopupTemplate) Resolve(attrs map[string]interface{}) (title, content string) {
	if t == nil {
		return "", ""
	}
	if len(attrs) == 0 {
		return t.Title, t.Content
	}
	pairs := make([]string, 0, len(attrs)*2)
	for key, value := range attrs {
		pairs = append(pairs, "{"+key+"}", fmt.Sprint(value))
	}
	r := strings.NewReplacer(pairs...)
	return r.Replace(t.Title), r.Replace(t.Content)
}

// Graphic is a drawable annotation anchored at a point.
type Graphic struct {
	ID         string
	Geometry   Point
	Attributes map[string]interface{}
	Template   *PopupTemplate
}

// NewGraphic builds a graphic with a fresh identifier.
func NewGraphic(geometry Point, attrs map[string]interface{}, template *PopupTemplate) *Graphic {
	return &Graphic{
		ID:         uuid.NewString(),
		Geometry:   geometry,
		Attributes: attrs,
		Template:   template,
	}
}

// GraphicsCollection holds a view's annotation graphics. Safe for concurrent
// use; reads return copies.
type GraphicsCollection struct {
	mu    sync.Mutex
	items []*Graphic
}

// Add appends a graphic to the collection. Nil graphics are ignored.
func (c *GraphicsCollection) Add(g *Graphic) {
	if c == nil || g == nil {
		return
	}
	c.mu.Lock()
	c.items = append(c.items, g)
	c.mu.Unlock()
}

// RemoveAll empties the collection and reports how many graphics were removed.
func (c *GraphicsCollection) RemoveAll() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	removed := len(c.items)
	c.items = nil
	c.mu.Unlock()
	return removed
}

// Items returns a snapshot of the collection.
func (c *GraphicsCollection) Items() []*Graphic {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	dup := make([]*Graphic, len(c.items))
	copy(dup, c.items)
	return dup
}

// Len reports the number of graphics in the collection.
func (c *GraphicsCollection) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
