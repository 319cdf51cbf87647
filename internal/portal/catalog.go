package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/jsonc"
	"golang.org/x/sync/errgroup"

	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/logging/events"
)

// Item is the catalog metadata block of a web-map document.
type Item struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Snippet      string    `json:"snippet"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	ItemPageURL  string    `json:"itemPageUrl"`
	Owner        string    `json:"owner"`
	Modified     time.Time `json:"modified"`
}

// LayerRef describes one operational layer of a web-map document. Visible
// defaults to true when omitted.
type LayerRef struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Kind    string `json:"kind"`
	Visible *bool  `json:"visible"`
}

// ViewState is the initial viewpoint of a web-map document.
type ViewState struct {
	Center []float64 `json:"center"`
	Zoom   float64   `json:"zoom"`
}

// Document is one parsed web-map definition. Files are JSON with comments
// allowed (JSONC).
type Document struct {
	Path              string     `json:"-"`
	Item              *Item      `json:"item"`
	Basemap           string     `json:"basemap"`
	InitialState      *ViewState `json:"initialState"`
	PopupsDisabled    bool       `json:"popupsDisabled"`
	OperationalLayers []LayerRef `json:"operationalLayers"`
}

// ID returns the document's portal item id, falling back to the file stem for
// documents without an item block.
func (d *Document) ID() string {
	if d == nil {
		return ""
	}
	if d.Item != nil && d.Item.ID != "" {
		return d.Item.ID
	}
	return fileStem(d.Path)
}

// Title returns the document's display title, falling back to the file stem.
func (d *Document) Title() string {
	if d == nil {
		return ""
	}
	if d.Item != nil && d.Item.Title != "" {
		return d.Item.Title
	}
	return fileStem(d.Path)
}

// ToMap builds the engine map this document describes.
func (d *Document) ToMap() *engine.Map {
	if d == nil {
		return nil
	}
	m := &engine.Map{
		Basemap:        d.Basemap,
		PopupsDisabled: d.PopupsDisabled,
	}
	if d.Item != nil {
		m.Item = &engine.PortalItem{
			ID:           d.Item.ID,
			Title:        d.Item.Title,
			Snippet:      d.Item.Snippet,
			ThumbnailURL: d.Item.ThumbnailURL,
			ItemPageURL:  d.Item.ItemPageURL,
			Owner:        d.Item.Owner,
			Modified:     d.Item.Modified,
		}
	}
	if d.InitialState != nil {
		if len(d.InitialState.Center) >= 2 {
			m.InitialCenter = engine.Point{
				Lon: d.InitialState.Center[0],
				Lat: d.InitialState.Center[1],
			}
		}
		m.InitialZoom = d.InitialState.Zoom
	}
	for _, ref := range d.OperationalLayers {
		visible := true
		if ref.Visible != nil {
			visible = *ref.Visible
		}
		m.Layers = append(m.Layers, engine.Layer{
			ID:      ref.ID,
			Title:   ref.Title,
			Kind:    ref.Kind,
			Visible: visible,
		})
	}
	return m
}

// Catalog is the set of web-map documents found in a portal directory,
// ordered by title.
type Catalog struct {
	Dir       string
	Documents []*Document
}

// Len reports the number of documents in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Documents)
}

// Find returns the document with the given id, or nil.
func (c *Catalog) Find(id string) *Document {
	if c == nil || id == "" {
		return nil
	}
	for _, doc := range c.Documents {
		if doc.ID() == id {
			return doc
		}
	}
	return nil
}

// ParseDocument decodes one web-map document.
func ParseDocument(path string, data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	doc.Path = path
	return &doc, nil
}

// IsDocumentPath reports whether the path names a web-map document.
func IsDocumentPath(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(name, ".webmap.json") || strings.HasSuffix(name, ".webmap.jsonc")
}

// LoadDir loads every web-map document under dir in parallel. Unparseable
// documents are skipped with a diagnostic; a missing directory is an error.
func LoadDir(ctx context.Context, dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("portal dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !IsDocumentPath(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	var (
		mu      sync.Mutex
		docs    []*Document
		skipped int
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				events.Portal.DocumentError(path, err)
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			doc, err := ParseDocument(path, data)
			if err != nil {
				events.Portal.DocumentError(path, err)
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool {
		a, b := docs[i].Title(), docs[j].Title()
		if a == b {
			return docs[i].ID() < docs[j].ID()
		}
		return a < b
	})

	events.Portal.Loaded(dir, len(docs), skipped)
	return &Catalog{Dir: dir, Documents: docs}, nil
}

// ResolveDir picks the portal directory. An explicit value wins, then the
// MAPVIEW_PORTAL_DIR environment variable, then a maps/ directory under the
// working directory when one exists, finally the working directory itself.
func ResolveDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envDir := os.Getenv("MAPVIEW_PORTAL_DIR"); envDir != "" {
		return envDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	maps := filepath.Join(wd, "maps")
	if info, err := os.Stat(maps); err == nil && info.IsDir() {
		return maps, nil
	}
	return wd, nil
}

func fileStem(path string) string {
	name := filepath.Base(path)
	for _, suffix := range []string{".webmap.json", ".webmap.jsonc"} {
		if strings.HasSuffix(strings.ToLower(name), suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
