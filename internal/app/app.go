package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/geoterm/mapview-control/internal/document"
	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/portal"
	"github.com/geoterm/mapview-control/internal/ui"
	"github.com/geoterm/mapview-control/internal/viewer"
)

// Config describes user-provided application options.
type Config struct {
	PortalDir    string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	RootMenu     string
	LegacyEvents bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	dir, err := portal.ResolveDir(cfg.PortalDir)
	if err != nil {
		return fmt.Errorf("resolve portal dir: %w", err)
	}
	if _, err := portal.LoadDir(context.Background(), dir); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	doc := document.New()
	service := viewer.NewService(doc)
	coordinator := viewer.NewCoordinator(service)
	defer coordinator.Close()

	surface := engine.NewSurface(engine.SurfaceOptions{LegacyEvents: cfg.LegacyEvents})
	defer surface.Stop()

	watcher := portal.NewWatcher(dir, 1500*time.Millisecond)
	defer watcher.Stop()

	model := ui.NewModel(ui.ModelOptions{
		Service:     service,
		Coordinator: coordinator,
		Surface:     surface,
		Catalog:     watcher,
		Document:    doc,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		Verbose:     cfg.Verbose,
		RootMenu:    cfg.RootMenu,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
