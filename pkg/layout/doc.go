// Package layout assigns planar coordinates to the nodes of a rooted,
// ordered tree.
//
// # Overview
//
// [Compute] is a pure function from a tree snapshot and a [Config] to a
// [Result]. It performs no I/O, never mutates the tree, and keeps no state
// between calls, so independent trees can be laid out concurrently.
//
// The algorithm reserves a contiguous span for every subtree, sized by the
// subtree's extent, and packs sibling spans left to right with a fixed gap.
// Subtrees therefore never overlap, whatever the shape of the tree, at the
// cost of some compactness: a wide subtree pushes its siblings further away
// than strictly necessary. A parent is centered between its first and last
// child rather than over its whole span.
//
// # Usage
//
//	r := layout.Compute(t, layout.DefaultConfig())
//	for _, p := range r.Placements {
//	    fmt.Println(p.Node, p.Position.X, p.Position.Y)
//	}
//
// # Orientation
//
// [TopDown] maps the breadth axis to X and depth to Y. [LeftRight] swaps
// the two without changing the algorithm.
package layout
