package pipeline

import (
	"context"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/layouter"
	"github.com/matzehuels/treelayout/pkg/observability"
	"github.com/matzehuels/treelayout/pkg/render"
	"github.com/matzehuels/treelayout/pkg/render/sink"
	"github.com/matzehuels/treelayout/pkg/render/styles"
	"github.com/matzehuels/treelayout/pkg/tree"
)

// NewDrawer returns a fresh drawer for validated options. When the requested
// format differs from what the drawer emits natively, the drawer's output is
// converted on Finalize.
func NewDrawer(opts Options) (render.Drawer, error) {
	var d render.Drawer
	switch opts.Drawer {
	case DrawerSVG:
		style, err := styles.ByName(opts.Style)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidStyle, err, "style")
		}
		d = sink.NewSVG(
			sink.WithStyle(style),
			sink.WithRadius(opts.Radius),
			sink.WithMargin(opts.Margin),
			sink.WithFontSize(opts.FontSize),
		)
	case DrawerJSON:
		d = sink.NewJSON()
	case DrawerText:
		d = sink.NewText()
	case DrawerDOT:
		d = sink.NewDOT()
	case DrawerGraphviz:
		if opts.Format == FormatPNG {
			return sink.NewGraphviz(FormatPNG), nil
		}
		d = sink.NewGraphviz(FormatSVG)
	default:
		return nil, errors.New(errors.ErrCodeInvalidDrawer, "invalid drawer: %q", opts.Drawer)
	}

	if opts.Format != "" && opts.Format != opts.NativeFormat() {
		return &converting{Drawer: d, format: opts.Format, scale: opts.Scale}, nil
	}
	return d, nil
}

// converting converts the wrapped drawer's artifact on Finalize.
type converting struct {
	render.Drawer
	format string
	scale  float64
}

func (c *converting) Finalize() (render.Artifact, error) {
	a, err := c.Drawer.Finalize()
	if err != nil {
		return render.Artifact{}, err
	}
	return render.Convert(a, c.format, c.scale)
}

// Render lays out and draws t without caching or persisting. Options are
// validated first.
func Render(ctx context.Context, t *tree.Tree[tree.Label], opts Options, hooks observability.RenderHooks) (render.Artifact, error) {
	if err := opts.Validate(); err != nil {
		return render.Artifact{}, err
	}
	cfg, err := opts.LayoutConfig()
	if err != nil {
		return render.Artifact{}, err
	}
	d, err := NewDrawer(opts)
	if err != nil {
		return render.Artifact{}, err
	}

	return layouter.New(t,
		layouter.WithConfig(cfg),
		layouter.WithDrawer(d),
		layouter.WithLogger(opts.Logger),
		layouter.WithHooks(hooks),
		layouter.WithContext(ctx),
	).Write()
}
