// Package viewer owns the active map-view reference and the lifecycle
// coordination around it.
//
// Two collaborators share the work:
//   - Service holds at most one view handle and exposes the operations that
//     depend on it: header derivation from the loaded map's portal item,
//     loader dismissal, camera navigation, and marker annotation. Every
//     operation checks its collaborators for presence first and degrades to a
//     no-op when the handle, the map metadata chain, or the target document
//     element is absent. Absence is an expected startup transient, never a
//     fault.
//   - Coordinator bridges the surface's readiness notification into the
//     service. On each ready notification it extracts the handle (detail
//     payload first, target payload second), stores it, refreshes the header,
//     and dismisses the loader through three redundant paths: immediately, on
//     the view's first layer-view creation, and after a fixed timeout. The
//     paths are independent and each re-checks loader visibility, so late
//     firings are harmless.
//
// Deferred dismissal paths run off the Bubble Tea loop (timer goroutines,
// engine event callbacks), so Service guards its slot with a mutex and the
// one-shot subscription keeps a fired flag. Coordinator.Close cancels
// whatever has not fired when the program shuts down.
package viewer
