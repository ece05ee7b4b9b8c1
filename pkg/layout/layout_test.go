package layout

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/treelayout/pkg/tree"
)

const eps = 1e-9

type label string

func (l label) Visualize() string { return string(l) }

// refTree builds R → (C1 → (G1, G2), C2).
func refTree(t *testing.T) (*tree.Tree[label], map[string]tree.NodeID) {
	t.Helper()
	tr := tree.New[label]()
	ids := map[string]tree.NodeID{}
	ids["R"], _ = tr.SetRoot("R")
	ids["C1"], _ = tr.AddChild(ids["R"], "C1")
	ids["C2"], _ = tr.AddChild(ids["R"], "C2")
	ids["G1"], _ = tr.AddChild(ids["C1"], "G1")
	ids["G2"], _ = tr.AddChild(ids["C1"], "G2")
	return tr, ids
}

// randomTree builds a tree with n nodes where each new node picks a random
// existing parent. The generator is seeded so trees are reproducible.
func randomTree(seed uint64, n int) *tree.Tree[label] {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	tr := tree.New[label]()
	if n == 0 {
		return tr
	}
	_, _ = tr.SetRoot("r")
	for i := 1; i < n; i++ {
		// Bias toward recent nodes to get deep as well as wide trees.
		lo := max(0, i-1-rng.IntN(8))
		parent := tree.NodeID(lo + rng.IntN(i-lo))
		_, _ = tr.AddChild(parent, "n")
	}
	return tr
}

func TestComputeReferenceScenario(t *testing.T) {
	const w, g, h = 40.0, 20.0, 60.0
	tr, ids := refTree(t)

	r := Compute(tr, Config{NodeWidth: w, HorizontalGap: g, VerticalGap: h})

	c1x := (w + g) / 2
	// C1's span ends at 2w+g-w/2; C2's span starts one gap later and C2 sits
	// half a node width into it.
	c2x := (2*w + g - w/2) + g + w/2
	want := map[string]Position{
		"G1": {X: 0, Y: 2 * h},
		"G2": {X: w + g, Y: 2 * h},
		"C1": {X: c1x, Y: h},
		"C2": {X: c2x, Y: h},
		"R":  {X: (c1x + c2x) / 2, Y: 0},
	}
	for name, wantPos := range want {
		got, ok := r.Position(ids[name])
		if !ok {
			t.Fatalf("no position for %s", name)
		}
		if diff := cmp.Diff(wantPos, got); diff != "" {
			t.Errorf("%s position mismatch (-want +got):\n%s", name, diff)
		}
	}

	// With w=40, g=20 the numbers are easy to check by hand.
	if p, _ := r.Position(ids["C2"]); p.X != 120 {
		t.Errorf("C2.X = %v, want 120", p.X)
	}
	if p, _ := r.Position(ids["R"]); p.X != 75 {
		t.Errorf("R.X = %v, want 75", p.X)
	}
}

func TestComputeEmpty(t *testing.T) {
	r := Compute(tree.New[label](), DefaultConfig())
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	if len(r.Edges) != 0 {
		t.Errorf("edges = %d, want 0", len(r.Edges))
	}
	if _, ok := r.Bounds(); ok {
		t.Error("Bounds() should report false for an empty layout")
	}
	if _, ok := r.Position(0); ok {
		t.Error("Position(0) should report false for an empty layout")
	}
}

func TestComputeSingleNode(t *testing.T) {
	tr := tree.New[label]()
	root, _ := tr.SetRoot("only")

	r := Compute(tr, DefaultConfig())
	if r.Len() != 1 || len(r.Edges) != 0 {
		t.Fatalf("Len() = %d, edges = %d, want 1, 0", r.Len(), len(r.Edges))
	}
	p, _ := r.Position(root)
	if p != (Position{}) {
		t.Errorf("single node at %+v, want origin", p)
	}
	pl, _ := r.Placement(root)
	if pl.Extent != DefaultNodeWidth {
		t.Errorf("leaf extent = %v, want %v", pl.Extent, DefaultNodeWidth)
	}
	if pl.Parent != tree.NoNode {
		t.Errorf("root parent = %v, want NoNode", pl.Parent)
	}
}

func TestComputeCounts(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 50, 500} {
		tr := randomTree(uint64(n), n)
		r := Compute(tr, DefaultConfig())
		if r.Len() != n {
			t.Errorf("n=%d: Len() = %d", n, r.Len())
		}
		if want := max(n-1, 0); len(r.Edges) != want {
			t.Errorf("n=%d: edges = %d, want %d", n, len(r.Edges), want)
		}
	}
}

func TestComputeDepthInvariant(t *testing.T) {
	cfg := Config{NodeWidth: 30, HorizontalGap: 5, VerticalGap: 45}
	for seed := range uint64(20) {
		tr := randomTree(seed, 200)
		r := Compute(tr, cfg)
		for _, p := range r.Placements {
			if want := float64(tr.Depth(p.Node)) * cfg.VerticalGap; p.Position.Y != want {
				t.Fatalf("seed %d: node %d Y = %v, want %v", seed, p.Node, p.Position.Y, want)
			}
			if p.Depth != tr.Depth(p.Node) {
				t.Fatalf("seed %d: node %d Depth = %d, want %d", seed, p.Node, p.Depth, tr.Depth(p.Node))
			}
		}
	}
}

func TestComputeSiblingSpansDisjoint(t *testing.T) {
	cfg := Config{NodeWidth: 24, HorizontalGap: 8, VerticalGap: 40}
	for seed := range uint64(20) {
		tr := randomTree(seed, 300)
		r := Compute(tr, cfg)
		tr.WalkPreOrder(func(id tree.NodeID, _ int) bool {
			children := tr.Children(id)
			for i := 1; i < len(children); i++ {
				prev, _ := r.Placement(children[i-1])
				next, _ := r.Placement(children[i])
				if gap := next.Span.Start - prev.Span.End; gap < cfg.HorizontalGap-eps {
					t.Fatalf("seed %d: siblings %d,%d separated by %v, want >= %v",
						seed, children[i-1], children[i], gap, cfg.HorizontalGap)
				}
			}
			return true
		})
	}
}

func TestComputeNoOverlapWithinLevel(t *testing.T) {
	cfg := Config{NodeWidth: 24, HorizontalGap: 8, VerticalGap: 40}
	for seed := range uint64(20) {
		r := Compute(randomTree(seed, 300), cfg)
		levels := map[int][]float64{}
		for _, p := range r.Placements {
			levels[p.Depth] = append(levels[p.Depth], p.Position.X)
		}
		for depth, xs := range levels {
			slices.Sort(xs)
			for i := 1; i < len(xs); i++ {
				if d := xs[i] - xs[i-1]; d < cfg.NodeWidth+cfg.HorizontalGap-eps {
					t.Fatalf("seed %d depth %d: neighbours %v apart, want >= %v",
						seed, depth, d, cfg.NodeWidth+cfg.HorizontalGap)
				}
			}
		}
	}
}

func TestComputeNodesInsideSpan(t *testing.T) {
	cfg := DefaultConfig()
	for seed := range uint64(10) {
		r := Compute(randomTree(seed, 150), cfg)
		for _, p := range r.Placements {
			lo := p.Span.Start + cfg.NodeWidth/2
			hi := p.Span.End - cfg.NodeWidth/2
			if p.Position.X < lo-eps || p.Position.X > hi+eps {
				t.Fatalf("seed %d: node %d at %v outside [%v, %v]", seed, p.Node, p.Position.X, lo, hi)
			}
			if math.Abs(p.Span.Width()-p.Extent) > eps {
				t.Fatalf("seed %d: node %d span width %v != extent %v", seed, p.Node, p.Span.Width(), p.Extent)
			}
		}
	}
}

func TestComputeRecentersOverChildren(t *testing.T) {
	// Asymmetric: the first child carries a wide subtree, the second is a leaf.
	//
	//        r
	//       / \
	//      a   b
	//    / | | \
	//   c  d e  f
	tr := tree.New[label]()
	r, _ := tr.SetRoot("r")
	a, _ := tr.AddChild(r, "a")
	b, _ := tr.AddChild(r, "b")
	for _, n := range []label{"c", "d", "e", "f"} {
		_, _ = tr.AddChild(a, n)
	}

	res := Compute(tr, DefaultConfig())
	pa, _ := res.Position(a)
	pb, _ := res.Position(b)
	pr, _ := res.Position(r)
	if want := (pa.X + pb.X) / 2; pr.X != want {
		t.Errorf("root X = %v, want midpoint of children %v", pr.X, want)
	}
	rootPl, _ := res.Placement(r)
	if pr.X == rootPl.Span.Mid() {
		t.Error("root should not be centered over its own span in an asymmetric tree")
	}

	for seed := range uint64(10) {
		rt := randomTree(seed, 200)
		rr := Compute(rt, DefaultConfig())
		rt.WalkPreOrder(func(id tree.NodeID, _ int) bool {
			children := rt.Children(id)
			if len(children) == 0 {
				return true
			}
			first, _ := rr.Position(children[0])
			last, _ := rr.Position(children[len(children)-1])
			self, _ := rr.Position(id)
			if want := (first.X + last.X) / 2; self.X != want {
				t.Fatalf("seed %d: node %d X = %v, want %v", seed, id, self.X, want)
			}
			return true
		})
	}
}

func TestComputeLeftRight(t *testing.T) {
	tr, _ := refTree(t)
	td := Compute(tr, Config{NodeWidth: 40, HorizontalGap: 20, VerticalGap: 60})
	lr := Compute(tr, Config{NodeWidth: 40, HorizontalGap: 20, VerticalGap: 60, Orientation: LeftRight})

	for i := range td.Placements {
		a, b := td.Placements[i].Position, lr.Placements[i].Position
		if a.X != b.Y || a.Y != b.X {
			t.Errorf("node %d: top-down %+v, left-right %+v, want swapped axes", td.Placements[i].Node, a, b)
		}
	}
}

func TestComputeEdges(t *testing.T) {
	tr, ids := refTree(t)
	r := Compute(tr, DefaultConfig())

	want := [][2]tree.NodeID{
		{ids["R"], ids["C1"]},
		{ids["C1"], ids["G1"]},
		{ids["C1"], ids["G2"]},
		{ids["R"], ids["C2"]},
	}
	var got [][2]tree.NodeID
	for _, e := range r.Edges {
		got = append(got, [2]tree.NodeID{e.Parent, e.Child})
		from, _ := r.Position(e.Parent)
		to, _ := r.Position(e.Child)
		if e.From != from || e.To != to {
			t.Errorf("edge %d→%d coordinates %v→%v, want %v→%v", e.Parent, e.Child, e.From, e.To, from, to)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeDeterministic(t *testing.T) {
	tr := randomTree(7, 400)
	a := Compute(tr, DefaultConfig())
	b := Compute(tr, DefaultConfig())
	if diff := cmp.Diff(a, b, cmpopts.IgnoreUnexported(Result{})); diff != "" {
		t.Errorf("layouts differ (-first +second):\n%s", diff)
	}
}

func TestComputeDeepTree(t *testing.T) {
	tr := tree.New[label]()
	id, _ := tr.SetRoot("0")
	for range 50000 {
		id, _ = tr.AddChild(id, "n")
	}
	r := Compute(tr, DefaultConfig())
	p, _ := r.Position(id)
	if p.X != 0 {
		t.Errorf("chain leaf X = %v, want 0", p.X)
	}
	if want := 50000 * DefaultVerticalGap; p.Y != want {
		t.Errorf("chain leaf Y = %v, want %v", p.Y, want)
	}
}

func TestBounds(t *testing.T) {
	tr, _ := refTree(t)
	r := Compute(tr, Config{NodeWidth: 40, HorizontalGap: 20, VerticalGap: 60})
	b, ok := r.Bounds()
	if !ok {
		t.Fatal("Bounds() reported empty")
	}
	want := Bounds{MinX: 0, MinY: 0, MaxX: 120, MaxY: 120}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
	if b.Width() != 120 || b.Height() != 120 {
		t.Errorf("size = %vx%v, want 120x120", b.Width(), b.Height())
	}
}
