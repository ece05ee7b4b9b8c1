// Package pkg provides the core libraries for treelayout, a layout engine
// and renderer for rooted, ordered trees such as syntax trees.
//
// # Overview
//
// A tree goes in, positions come out, and a drawer turns the positions into
// an artifact. The pkg directory is organized into these areas:
//
//  1. [tree] - Arena-backed rooted, ordered tree with stable node IDs
//  2. [layout] - The two-pass layout algorithm (extent, then span)
//  3. [render] - Drawer protocol, sinks (SVG, JSON, text, DOT, Graphviz) and styles
//  4. [layouter] - Facade that runs layout and drives a drawer
//  5. [pipeline] - Options, validation and the cached render runner
//  6. [cache] - File, Redis and MongoDB artifact caches
//
// # Architecture
//
// The typical data flow:
//
//	JSON/YAML document
//	         ↓
//	    [io] package (decode into a tree)
//	         ↓
//	    [layout] package (compute positions)
//	         ↓
//	    [layouter] package (edges, nodes, finalize)
//	         ↓
//	    SVG/PNG/PDF/JSON/text/DOT output
//
// # Quick Start
//
// Build a tree and draw it as SVG:
//
//	import (
//	    "github.com/matzehuels/treelayout/pkg/layouter"
//	    "github.com/matzehuels/treelayout/pkg/render/sink"
//	    "github.com/matzehuels/treelayout/pkg/tree"
//	)
//
//	t := tree.New[tree.Label]()
//	s, _ := t.SetRoot(tree.Label{Text: "S"})
//	t.AddChild(s, tree.Label{Text: "NP"})
//	t.AddChild(s, tree.Label{Text: "VP"})
//
//	art, err := layouter.New(t, layouter.WithDrawer(sink.NewSVG())).Write()
//
// Or let the pipeline pick the drawer, cache the result and write a file:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Render(ctx, t, pipeline.Options{Drawer: "svg", Output: "tree.svg"})
//
// # Supporting Packages
//
// [errors] - Coded errors shared by the CLI and the HTTP server.
//
// [observability] - Hooks for layout, render, cache and HTTP events, with a
// Prometheus implementation.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
//
// Redis and MongoDB cache tests run when TREELAYOUT_TEST_REDIS_URL and
// TREELAYOUT_TEST_MONGO_URI are set.
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/tree
// [layout]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/render
// [layouter]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/layouter
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/treelayout/pkg/buildinfo
package pkg
