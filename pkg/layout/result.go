package layout

import (
	"math"

	"github.com/matzehuels/treelayout/pkg/tree"
)

// Position is the center of a node in drawing coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Span is the interval a subtree was allotted along the breadth axis
// (X for TopDown, Y for LeftRight).
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Width returns the length of the span.
func (s Span) Width() float64 { return s.End - s.Start }

// Mid returns the midpoint of the span.
func (s Span) Mid() float64 { return (s.Start + s.End) / 2 }

// Placement is the computed geometry of a single node.
type Placement struct {
	Node     tree.NodeID // Node being placed
	Parent   tree.NodeID // tree.NoNode for the root
	Depth    int         // 0 for the root
	Extent   float64     // Subtree footprint along the breadth axis
	Span     Span        // Interval allotted to the subtree
	Position Position    // Final node center
}

// Edge connects a parent to one of its children.
type Edge struct {
	Parent, Child tree.NodeID
	From, To      Position
}

// Bounds is the axis-aligned box around a set of positions.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal size of the box.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical size of the box.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Result is the output of [Compute]. Placements are in pre-order (document
// order) and edges follow the pre-order of their child node.
//
// The zero value is the empty layout.
type Result struct {
	Placements []Placement
	Edges      []Edge
	Config     Config

	index map[tree.NodeID]int
}

// Len returns the number of placed nodes.
func (r Result) Len() int { return len(r.Placements) }

// Placement returns the placement of id.
func (r Result) Placement(id tree.NodeID) (Placement, bool) {
	i, ok := r.index[id]
	if !ok {
		return Placement{}, false
	}
	return r.Placements[i], true
}

// Position returns the position of id.
func (r Result) Position(id tree.NodeID) (Position, bool) {
	p, ok := r.Placement(id)
	return p.Position, ok
}

// Bounds returns the box around all node centers. It reports false for an
// empty layout.
func (r Result) Bounds() (Bounds, bool) {
	if len(r.Placements) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range r.Placements {
		b.MinX = min(b.MinX, p.Position.X)
		b.MinY = min(b.MinY, p.Position.Y)
		b.MaxX = max(b.MaxX, p.Position.X)
		b.MaxY = max(b.MaxY, p.Position.Y)
	}
	return b, true
}
