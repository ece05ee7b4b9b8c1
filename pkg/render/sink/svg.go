package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/render"
	"github.com/matzehuels/treelayout/pkg/render/styles"
)

// SVG defaults, in user units.
const (
	DefaultRadius   = 15.0
	DefaultMargin   = 10.0
	DefaultFontSize = 12.0
)

// SVGOption configures an [SVG] drawer.
type SVGOption func(*SVG)

// WithStyle selects the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption { return func(d *SVG) { d.style = s } }

// WithRadius sets the node radius used for markers and bounds.
func WithRadius(r float64) SVGOption { return func(d *SVG) { d.radius = r } }

// WithMargin sets the blank border around the drawing.
func WithMargin(m float64) SVGOption { return func(d *SVG) { d.margin = m } }

// WithFontSize sets the label font size.
func WithFontSize(s float64) SVGOption { return func(d *SVG) { d.fontSize = s } }

// SVG is the default [render.Drawer]. It buffers edges and nodes in separate
// layers so edges are always painted beneath nodes, and sizes the viewport
// from the extents of the nodes it was given.
type SVG struct {
	style    styles.Style
	radius   float64
	margin   float64
	fontSize float64

	edges bytes.Buffer
	nodes bytes.Buffer
	box   bounds
	done  bool
}

// NewSVG returns an empty SVG drawer.
func NewSVG(opts ...SVGOption) *SVG {
	d := &SVG{
		style:    styles.Simple{},
		radius:   DefaultRadius,
		margin:   DefaultMargin,
		fontSize: DefaultFontSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.style == nil {
		d.style = styles.Simple{}
	}
	return d
}

func (d *SVG) Name() string { return "svg" }

func (d *SVG) DrawEdge(from, to layout.Position) error {
	if d.done {
		return render.ErrFinalized
	}
	d.style.RenderEdge(&d.edges, styles.Edge{
		X1: from.X, Y1: from.Y,
		X2: to.X, Y2: to.Y,
		Inset: d.radius,
	})
	return nil
}

func (d *SVG) DrawNode(p layout.Position, label string, emphasized bool) error {
	if d.done {
		return render.ErrFinalized
	}
	d.box.add(p.X-d.radius, p.Y-d.radius)
	d.box.add(p.X+d.radius, p.Y+d.radius)
	d.style.RenderNode(&d.nodes, styles.Node{
		Label:      label,
		CX:         p.X,
		CY:         p.Y,
		R:          d.radius,
		FontSize:   d.fontSize,
		Emphasized: emphasized,
	})
	return nil
}

// Finalize assembles the document. A drawer that saw no nodes yields a
// zero-sized viewport.
func (d *SVG) Finalize() (render.Artifact, error) {
	if d.done {
		return render.Artifact{}, render.ErrFinalized
	}
	d.done = true

	var x, y, w, h float64
	if !d.box.empty() {
		x, y = d.box.minX-d.margin, d.box.minY-d.margin
		w, h = d.box.width()+2*d.margin, d.box.height()+2*d.margin
	}

	var buf bytes.Buffer
	buf.Grow(d.edges.Len() + d.nodes.Len() + 512)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		num(x), num(y), num(w), num(h), num(w), num(h))
	d.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="white"/>`+"\n",
		num(x), num(y), num(w), num(h))
	buf.Write(d.edges.Bytes())
	buf.Write(d.nodes.Bytes())
	buf.WriteString("</svg>\n")

	d.edges.Reset()
	d.nodes.Reset()
	return render.Artifact{Format: "svg", MediaType: render.MediaSVG, Data: buf.Bytes()}, nil
}

// bounds is a running axis-aligned box. The zero value is empty.
type bounds struct {
	minX, minY, maxX, maxY float64
	set                    bool
}

func (b *bounds) add(x, y float64) {
	if !b.set {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.set = true
		return
	}
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func (b *bounds) empty() bool     { return !b.set }
func (b *bounds) width() float64  { return b.maxX - b.minX }
func (b *bounds) height() float64 { return b.maxY - b.minY }

// num formats f with the fewest digits that round-trip, without exponents.
func num(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
