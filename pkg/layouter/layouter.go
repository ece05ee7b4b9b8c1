package layouter

import (
	"time"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/render"
	"github.com/matzehuels/treelayout/pkg/tree"
)

// Layouter renders a tree whose node data can describe itself.
// It is safe to call Write repeatedly as long as the drawer is supplied by
// [WithDrawerFunc] or left at the default.
type Layouter[T tree.Visualizer] struct {
	tree *tree.Tree[T]
	cfg  config
}

// New returns a Layouter for t. A nil tree is treated as empty.
func New[T tree.Visualizer](t *tree.Tree[T], opts ...Option) *Layouter[T] {
	if t == nil {
		t = tree.New[T]()
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Layouter[T]{tree: t, cfg: cfg}
}

// Layout computes the positions without drawing anything.
func (l *Layouter[T]) Layout() (layout.Result, error) {
	if err := l.cfg.layout.Validate(); err != nil {
		return layout.Result{}, invalidConfig(l.cfg.layout, err)
	}

	start := time.Now()
	l.cfg.hooks.OnLayoutStart(l.cfg.ctx, l.tree.Len())
	r := layout.Compute(l.tree, l.cfg.layout)
	l.cfg.hooks.OnLayoutComplete(l.cfg.ctx, r.Len(), time.Since(start))

	l.cfg.logger.Debug("computed layout", "nodes", r.Len(), "edges", len(r.Edges))
	return r, nil
}

// Write lays out the tree, draws it and persists the artifact.
//
// Edges are drawn before nodes, and nodes in document order. An empty tree
// is not an error: the drawer is finalized with nothing drawn.
func (l *Layouter[T]) Write() (render.Artifact, error) {
	r, err := l.Layout()
	if err != nil {
		return render.Artifact{}, err
	}

	d := l.cfg.newDrawer()
	start := time.Now()
	l.cfg.hooks.OnRenderStart(l.cfg.ctx, d.Name())

	a, err := l.draw(d, r)
	if err == nil {
		err = l.persist(a)
	}
	l.cfg.hooks.OnRenderComplete(l.cfg.ctx, d.Name(), a.Len(), time.Since(start), err)
	if err != nil {
		return render.Artifact{}, err
	}

	l.cfg.logger.Debug("rendered tree", "drawer", d.Name(), "format", a.Format, "bytes", a.Len())
	return a, nil
}

func (l *Layouter[T]) draw(d render.Drawer, r layout.Result) (render.Artifact, error) {
	for _, e := range r.Edges {
		if err := d.DrawEdge(e.From, e.To); err != nil {
			return render.Artifact{}, errors.WrapDrawer(d.Name(), err, "draw edge %d-%d", e.Parent, e.Child)
		}
	}
	for _, p := range r.Placements {
		data := l.tree.Data(p.Node)
		if err := d.DrawNode(p.Position, data.Visualize(), tree.Emphasized(data)); err != nil {
			return render.Artifact{}, errors.WrapDrawer(d.Name(), err, "draw node %d", p.Node)
		}
	}
	a, err := d.Finalize()
	if err != nil {
		return render.Artifact{}, errors.WrapDrawer(d.Name(), err, "finalize")
	}
	return a, nil
}

func invalidConfig(c layout.Config, err error) error {
	code := errors.ErrCodeInvalidInput
	if c.Orientation != layout.TopDown && c.Orientation != layout.LeftRight {
		code = errors.ErrCodeInvalidOrientation
	}
	return errors.Wrap(code, err, "layout config")
}
