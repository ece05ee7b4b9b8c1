// Package sink provides the built-in [render.Drawer] implementations.
//
//   - [SVG]: the default vector output, styled by [styles.Style]
//   - [JSON]: node and edge coordinates for other tools
//   - [Text]: a character-grid drawing for terminals
//   - [DOT]: Graphviz source with pinned node positions
//   - [Graphviz]: the DOT output rendered in-process to SVG or PNG
//
// Every drawer is single-use. After Finalize the drawer rejects further
// calls with [render.ErrFinalized].
//
//	d := sink.NewSVG(sink.WithStyle(styles.Text{}), sink.WithMargin(20))
//	_ = d.DrawEdge(from, to)
//	_ = d.DrawNode(to, "leaf", false)
//	artifact, err := d.Finalize()
//
// [render.Drawer]: github.com/matzehuels/treelayout/pkg/render#Drawer
// [render.ErrFinalized]: github.com/matzehuels/treelayout/pkg/render#ErrFinalized
// [styles.Style]: github.com/matzehuels/treelayout/pkg/render/styles#Style
package sink
