// Package layouter ties a tree, the layout engine and a drawer together.
//
// # Overview
//
// A [Layouter] owns nothing but configuration. Each call to [Layouter.Write]
// computes a fresh layout, replays it into a new drawer and persists the
// result:
//
//  1. Compute positions with [layout.Compute]
//  2. Issue DrawEdge for every parent/child edge
//  3. Issue DrawNode for every node, with the label and emphasis read from
//     the node's data
//  4. Finalize the drawer
//  5. Write the artifact to a file, a writer, or nowhere
//
// Files are written to a temporary sibling first and renamed into place, so
// a failed write never leaves a partial file behind.
//
// # Usage
//
//	t := tree.New[tree.Label]()
//	root, _ := t.SetRoot(tree.Label{Text: "S"})
//	t.AddChild(root, tree.Label{Text: "NP", Emphasis: true})
//
//	_, err := layouter.New(t, layouter.WithFilePath("tree.svg")).Write()
//
// Without [WithFilePath] or [WithWriter] the artifact is only returned.
//
// # Errors
//
// Write reports DRAWER_FAILURE when the drawer rejects a call and
// IO_FAILURE when the artifact cannot be persisted (see [errors.Code]).
//
// [layout.Compute]: github.com/matzehuels/treelayout/pkg/layout#Compute
// [errors.Code]: github.com/matzehuels/treelayout/pkg/errors#Code
package layouter
