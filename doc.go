// Package mapoverlay injects an independently rendered 3D scene into a web
// map's own rendering context, frame by frame, so the scene stays correctly
// positioned, scaled, and oriented while the map pans, zooms, and tilts.
//
// # Overview
//
// The host map renderer owns the context and the frame loop; the overlay
// receives both. Each host draw callback runs the same strict sequence:
// the shared-state arbiter resets the context to a documented baseline, the
// view synchronizer composes and freezes the embedded camera's projection
// from the host-supplied transform, the embedded engine renders, and the
// arbiter hands the context back with the engine's cached state assumptions
// discarded.
//
// # Quick start
//
//	ov, err := mapoverlay.New(mapoverlay.Config{
//	    Container: "map",
//	    Anchor:    geo.Coord(48.8584, 2.2945),
//	    Engine:    myEngineFactory,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Host adapter glue delivers lifecycle events:
//	ov.Attach(host)
//	ov.ContextReady(ctx)
//
//	// Consumers populate the scene once it exists:
//	<-ov.WhenReady()
//	ov.Scene().Add(building)
//
// # Architecture
//
//   - geo: geographic ⇄ local-Cartesian coordinate math
//   - orient: up-axis reconciliation and winding fix-up support
//   - glstate: shared-context state arbitration
//   - viewsync: per-frame frozen-projection composition
//   - scene3d: embedded engine, scene, camera, meshes, raycasting
//   - host: adapters for push-matrix and pull-transformer map hosts
//   - route: path distance caching and interpolation
//
// # Coordinate system
//
// The local frame is anchored at a single geographic coordinate: X east,
// Y up, Z south, in meters. It is a flat approximation valid at overlay
// scales and degenerate near the poles.
package mapoverlay

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
