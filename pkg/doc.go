// Package pkg provides the core libraries for anchor, a declarative
// auto-layout engine.
//
// # Overview
//
// Anchor describes the geometry of a view hierarchy as algebraic
// constraints between view attributes ("a.leading == b.trailing + 8") and
// hands them to a host toolkit's solver. The pkg directory is organized
// into three areas:
//
//  1. Engine - building, checking and activating constraints
//  2. Composition - docking recipes, grids and scenes built on the engine
//  3. Artifacts - overlays, snapshots, caching and the HTTP API
//
// # Architecture
//
// The typical data flow through anchor:
//
//	scene.toml
//	    ↓
//	[scene] package (decode, validate, build)
//	    ↓
//	[dock] / [grid] packages (recipes and packed cells)
//	    ↓
//	[constraint] package (compatibility checks, activation)
//	    ↓
//	[host] toolkit solver
//	    ↓
//	[overlay] / [snapshot] artifacts
//
// # Quick Start
//
// Build a scene against the in-memory host:
//
//	sc, _ := scene.Load("panel.toml")
//	res, _ := scene.Build(sc)
//	defer res.Close()
//	res.Report.Render(os.Stdout)
//
// Or drive the engine directly:
//
//	eng := constraint.New(memory.New(), constraint.WithLogger(logger))
//	_, err := eng.At(box).Leading().Eq(eng.At(root).LeadingPadding())
//
// # Main Packages
//
// ## Engine
//
// [attribute] - The catalog of geometric attributes, their axis and kind,
// and the three-letter compatibility code used to validate comparisons.
//
// [constraint] - Expressions, comparisons, guides and the engine that turns
// them into host constraints. Incompatible comparisons fail with
// [errors.ErrCodeIncompatible] before anything reaches the host.
//
// [host] - The boundary to the UI toolkit. [host/memory] implements it in
// process for the CLI, the API and tests.
//
// ## Composition
//
// [dock] - Named recipes (top, bottom, center, fill...) that pin a view to
// its superview with a chosen fit.
//
// [grid] - Packs a container's subviews into a grid of equal square cells
// from a slot-notation packing pattern.
//
// [scene] - TOML scene files: views, docks, grids and free constraints,
// built into a [scene.Report] of per-statement outcomes.
//
// ## Artifacts
//
// [overlay] - A diagnostic picture of the active constraints as text or
// Graphviz DOT.
//
// [snapshot] - Serialisable captures of a built scene, with memory and
// MongoDB stores.
//
// [cache] - Content-addressed caching of plans, reports and overlays on
// disk or in Redis.
//
// [api] - HTTP handlers exposing the above.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/grid/...         # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [attribute]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/attribute
// [constraint]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/constraint
// [host]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/host
// [host/memory]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/host/memory
// [dock]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/dock
// [grid]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/grid
// [scene]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/scene
// [scene.Report]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/scene#Report
// [overlay]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/overlay
// [snapshot]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/snapshot
// [cache]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/cache
// [api]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/errors
// [errors.ErrCodeIncompatible]: https://pkg.go.dev/github.com/matzehuels/anchor/pkg/errors#ErrCodeIncompatible
package pkg
