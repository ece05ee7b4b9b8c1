package layouter

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/observability"
	"github.com/matzehuels/treelayout/pkg/render"
	"github.com/matzehuels/treelayout/pkg/render/sink"
)

// Option configures a [Layouter].
type Option func(*config)

type config struct {
	layout    layout.Config
	newDrawer func() render.Drawer
	path      string
	writer    io.Writer
	logger    *log.Logger
	hooks     observability.RenderHooks
	ctx       context.Context
}

func defaultConfig() config {
	return config{
		layout:    layout.DefaultConfig(),
		newDrawer: func() render.Drawer { return sink.NewSVG() },
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
		hooks:     observability.NoopRenderHooks{},
		ctx:       context.Background(),
	}
}

// WithConfig sets the layout spacing and orientation. Zero spacing fields
// fall back to the defaults.
func WithConfig(c layout.Config) Option { return func(o *config) { o.layout = c } }

// WithDrawer uses d for the next Write. Drawers are single-use, so a second
// Write with the same drawer fails with DRAWER_FAILURE; use [WithDrawerFunc]
// to write repeatedly.
func WithDrawer(d render.Drawer) Option {
	return func(o *config) {
		if d != nil {
			o.newDrawer = func() render.Drawer { return d }
		}
	}
}

// WithDrawerFunc builds a fresh drawer for every Write.
func WithDrawerFunc(fn func() render.Drawer) Option {
	return func(o *config) {
		if fn != nil {
			o.newDrawer = fn
		}
	}
}

// WithFilePath persists artifacts to path, replacing any existing file.
// It overrides an earlier [WithWriter].
func WithFilePath(path string) Option {
	return func(o *config) { o.path, o.writer = path, nil }
}

// WithWriter persists artifacts to w. It overrides an earlier [WithFilePath].
func WithWriter(w io.Writer) Option {
	return func(o *config) { o.writer, o.path = w, "" }
}

// WithLogger sets the logger for progress messages (default: discard).
func WithLogger(l *log.Logger) Option {
	return func(o *config) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHooks reports layout and render events to h.
func WithHooks(h observability.RenderHooks) Option {
	return func(o *config) { o.hooks = observability.RenderOrNoop(h) }
}

// WithContext sets the context passed to hooks. Write is not cancellable.
func WithContext(ctx context.Context) Option {
	return func(o *config) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}
