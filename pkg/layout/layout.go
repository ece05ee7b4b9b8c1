package layout

import "github.com/matzehuels/treelayout/pkg/tree"

// Tree is the read-only view of a rooted, ordered tree consumed by [Compute].
// *tree.Tree[T] satisfies it for every T.
type Tree interface {
	Root() (tree.NodeID, bool)
	Children(id tree.NodeID) []tree.NodeID
}

// Compute assigns a position to every node of t.
//
// The layout is computed in two linear passes over the tree's own child
// order. A bottom-up pass gives every subtree an extent of
//
//	max(NodeWidth, sum(child extents) + HorizontalGap*(children-1))
//
// and a top-down pass hands each child a contiguous slice of its parent's
// span, left to right, separated by HorizontalGap. A leaf sits at the
// midpoint of its slice; a parent sits at the midpoint between its first and
// last child, not over its own span. Depth maps to VerticalGap steps.
//
// The root's span starts at -NodeWidth/2, so a single node lands on the
// origin and the leftmost leaf at breadth 0.
//
// Sibling spans never overlap, so no relaxation pass is needed. Compute never
// mutates t, runs in O(n) time and space, and returns the empty Result for an
// empty tree. Zero spacing fields in cfg are filled from [DefaultConfig].
func Compute(t Tree, cfg Config) Result {
	cfg = cfg.WithDefaults()
	root, ok := t.Root()
	if !ok {
		return Result{Config: cfg}
	}

	ws := collect(t, root)
	ws.measure(t, cfg)
	ws.place(t, cfg)
	return ws.result(cfg)
}

// workspace holds per-node working state indexed by pre-order position.
type workspace struct {
	order   []tree.NodeID
	parent  []int
	depth   []int
	extent  []float64
	span    []Span
	breadth []float64
	index   map[tree.NodeID]int
}

func collect(t Tree, root tree.NodeID) *workspace {
	ws := &workspace{index: make(map[tree.NodeID]int)}
	type frame struct {
		id     tree.NodeID
		parent int
		depth  int
	}
	stack := []frame{{root, -1, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ws.index[f.id] = len(ws.order)
		ws.order = append(ws.order, f.id)
		ws.parent = append(ws.parent, f.parent)
		ws.depth = append(ws.depth, f.depth)

		self := len(ws.order) - 1
		children := t.Children(f.id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{children[i], self, f.depth + 1})
		}
	}
	n := len(ws.order)
	ws.extent = make([]float64, n)
	ws.span = make([]Span, n)
	ws.breadth = make([]float64, n)
	return ws
}

// measure is the bottom-up extent pass. Walking pre-order backwards visits
// every child before its parent.
func (ws *workspace) measure(t Tree, cfg Config) {
	for i := len(ws.order) - 1; i >= 0; i-- {
		children := t.Children(ws.order[i])
		if len(children) == 0 {
			ws.extent[i] = cfg.NodeWidth
			continue
		}
		sum := cfg.HorizontalGap * float64(len(children)-1)
		for _, c := range children {
			sum += ws.extent[ws.index[c]]
		}
		ws.extent[i] = max(cfg.NodeWidth, sum)
	}
}

// place is the top-down span pass followed by bottom-up re-centering.
func (ws *workspace) place(t Tree, cfg Config) {
	start := -cfg.NodeWidth / 2
	ws.span[0] = Span{Start: start, End: start + ws.extent[0]}

	for i, id := range ws.order {
		cursor := ws.span[i].Start
		for _, c := range t.Children(id) {
			ci := ws.index[c]
			ws.span[ci] = Span{Start: cursor, End: cursor + ws.extent[ci]}
			cursor += ws.extent[ci] + cfg.HorizontalGap
		}
	}

	for i := len(ws.order) - 1; i >= 0; i-- {
		children := t.Children(ws.order[i])
		if len(children) == 0 {
			ws.breadth[i] = ws.span[i].Mid()
			continue
		}
		first := ws.breadth[ws.index[children[0]]]
		last := ws.breadth[ws.index[children[len(children)-1]]]
		ws.breadth[i] = (first + last) / 2
	}
}

func (ws *workspace) result(cfg Config) Result {
	n := len(ws.order)
	r := Result{
		Placements: make([]Placement, n),
		Edges:      make([]Edge, 0, n-1),
		Config:     cfg,
		index:      ws.index,
	}
	for i, id := range ws.order {
		p := Placement{
			Node:     id,
			Parent:   tree.NoNode,
			Depth:    ws.depth[i],
			Extent:   ws.extent[i],
			Span:     ws.span[i],
			Position: orient(cfg, ws.breadth[i], ws.depth[i]),
		}
		if pi := ws.parent[i]; pi >= 0 {
			p.Parent = ws.order[pi]
			r.Edges = append(r.Edges, Edge{
				Parent: p.Parent,
				Child:  id,
				From:   r.Placements[pi].Position,
				To:     p.Position,
			})
		}
		r.Placements[i] = p
	}
	return r
}

func orient(cfg Config, breadth float64, depth int) Position {
	level := float64(depth) * cfg.VerticalGap
	if cfg.Orientation == LeftRight {
		return Position{X: level, Y: breadth}
	}
	return Position{X: breadth, Y: level}
}
