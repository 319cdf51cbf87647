// Package document models the queryable UI element registry the view state
// service mutates. Elements are located by fixed keys; a missing element is
// an expected transient during startup and every accessor degrades to nil
// rather than erroring.
package document

import "sync"

// Fixed lookup keys for the singleton elements.
const (
	HeaderKey = "app-header"
	LoaderKey = "app-loader"
)

// HeaderContent is the full presentation state of the header element. The
// five fields are always written together.
type HeaderContent struct {
	Heading     string
	Description string
	Thumbnail   string
	Href        string
	Label       string
}

// Header is the singleton page header element.
type Header struct {
	mu      sync.Mutex
	content HeaderContent
}

// Update replaces all header fields at once. Partial writes cannot occur.
func (h *Header) Update(content HeaderContent) {
	if h == nil {
		return
	}
	h.mu.Lock()
	h.content = content
	h.mu.Unlock()
}

// Content returns a snapshot of the header state.
func (h *Header) Content() HeaderContent {
	if h == nil {
		return HeaderContent{}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.content
}

// Loader is the singleton loading indicator element. Visibility moves one
// way, visible to hidden, for the lifetime of the element.
type Loader struct {
	mu     sync.Mutex
	hidden bool
}

// Hide marks the loader hidden and reports whether the call changed state.
func (l *Loader) Hide() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.hidden {
		return false
	}
	l.hidden = true
	return true
}

// Hidden reports whether the loader has been dismissed.
func (l *Loader) Hidden() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hidden
}

// Document is the element registry. A nil document answers every query with
// nil.
type Document struct {
	mu       sync.Mutex
	elements map[string]interface{}
}

// New builds a document with the header and loader elements registered, the
// way a fully assembled page presents itself.
func New() *Document {
	d := NewBare()
	d.Register(HeaderKey, &Header{})
	d.Register(LoaderKey, &Loader{})
	return d
}

// NewBare builds a document with no elements registered.
func NewBare() *Document {
	return &Document{elements: make(map[string]interface{})}
}

// Register attaches an element under the given key, replacing any existing
// registration.
func (d *Document) Register(key string, element interface{}) {
	if d == nil || key == "" {
		return
	}
	d.mu.Lock()
	if d.elements == nil {
		d.elements = make(map[string]interface{})
	}
	d.elements[key] = element
	d.mu.Unlock()
}

// Remove detaches the element under the given key.
func (d *Document) Remove(key string) {
	if d == nil {
		return
	}
	d.mu.Lock()
	delete(d.elements, key)
	d.mu.Unlock()
}

// Query returns the element registered under key, or nil.
func (d *Document) Query(key string) interface{} {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elements[key]
}

// Header returns the header element, or nil when absent.
func (d *Document) Header() *Header {
	el, _ := d.Query(HeaderKey).(*Header)
	return el
}

// Loader returns the loader element, or nil when absent.
func (d *Document) Loader() *Loader {
	el, _ := d.Query(LoaderKey).(*Loader)
	return el
}
