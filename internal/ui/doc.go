// Package ui contains the Bubble Tea program that fronts the map viewer.
// The package is structured so the Model type focuses on message
// orchestration, while dedicated helpers own navigation, input, rendering,
// and state updates.
//
// Modes:
//   - The program starts on the full-screen map (internal/ui/mapview.go),
//     which renders the header element, the loading indicator, a marker
//     canvas, and the popup and layer panels.
//   - Enter raises the menu overlay; escape at the menu root drops back to
//     the map. Coordinate prompts (go-to and marker drop) run as a form
//     mode layered over whichever mode raised them.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Key presses route to the active coordinate form when one is open;
//     every other message passes through a typed handler registry so each
//     tea.Msg is handled by a focused function (for example, navigation for
//     key presses or surface events for view lifecycle).
//   - Navigation helpers (internal/ui/navigation.go) manage the stack of
//     menu levels, cursor movement, and the map-mode key bindings.
//     Filter/input helpers (internal/ui/input.go) keep all text entry
//     concerns isolated from the Bubble Tea event loop.
//
// State ownership:
//   - Menu level state lives in internal/ui/state.Level, which tracks items,
//     filtering, selection, and viewport calculations.
//   - Webmap, layer, and marker stores are provided by internal/state and
//     kept in sync by the dispatcher so menu loaders always see the current
//     catalog and view data.
//   - Command execution is handled through the internal/ui/command package,
//     letting actions run asynchronously via the central command bus.
//
// Backend interactions:
//   - A portal.Watcher streams catalog reloads and an engine.Surface streams
//     view lifecycle events. Update waits on both channels and hands events
//     to applyCatalogEvent and applySurfaceEvent; the latter also runs the
//     view-ready choreography through the viewer coordinator before the
//     stores refresh.
//   - Asynchronous menu loaders run via tea.Cmd values returned by helper
//     functions (e.g., loadMenuCmd). When a loader completes, the typed
//     handler for categoryLoadedMsg pushes the new level onto the stack.
//
// This separation keeps Model.Update compact and makes it easier to test
// independent concerns (navigation, filtering, surface sync) without needing
// to reason about the entire TUI at once.
package ui
