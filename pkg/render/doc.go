// Package render defines the drawing contract between the layout engine and
// output formats.
//
// # Drawers
//
// A [Drawer] receives positioned edges and nodes and produces an [Artifact].
// The layouter calls it in a fixed order:
//
//  1. DrawEdge for every parent/child pair
//  2. DrawNode for every node, in document order
//  3. Finalize, exactly once
//
// Edges are issued first so that formats without z-ordering still paint
// nodes on top. Concrete drawers live in the [sink] subpackage; visual
// styles for SVG live in [styles].
//
// # Format Conversion
//
// [Convert], [ToPDF] and [ToPNG] turn SVG artifacts into other formats using
// the external rsvg-convert tool (from librsvg).
//
//	a, err := render.Convert(svgArtifact, "png", 2.0)
//
// [sink]: github.com/matzehuels/treelayout/pkg/render/sink
// [styles]: github.com/matzehuels/treelayout/pkg/render/styles
package render
