// Package tree provides a rooted, ordered tree stored in an arena.
//
// # Overview
//
// Nodes live in a single contiguous slice and are addressed by [NodeID]
// indices. Each node keeps its children as an ordered index list and its
// parent as a plain index used only for lookup. Ownership rests with the
// [Tree]; there are no pointer cycles between nodes.
//
// Child order is significant: it is the left-to-right order used by the
// layout engine in pkg/layout.
//
// # Basic Usage
//
//	t := tree.New[tree.Label]()
//	root, _ := t.SetRoot(tree.Label{Text: "S"})
//	np, _ := t.AddChild(root, tree.Label{Text: "NP"})
//	_, _ = t.AddChild(np, tree.Label{Text: "John", Emphasis: true})
//
// # Visualize Capability
//
// Node data used for rendering implements [Visualizer]. Emphasis is opt-in
// through the optional [Emphasizer] interface; [Emphasized] reports false for
// data types that do not implement it. The layout engine never consults
// either interface, so labels and emphasis cannot change geometry.
//
// A Tree is not safe for concurrent mutation. Concurrent readers are fine as
// long as nobody adds nodes while they read.
package tree
