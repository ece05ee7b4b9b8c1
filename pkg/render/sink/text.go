package sink

import (
	"math"
	"strings"

	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/render"
)

// Text cell defaults: with the default layout spacing adjacent leaves land
// twelve columns apart and levels three rows apart.
const (
	DefaultCellWidth  = 5.0
	DefaultCellHeight = 20.0
)

// TextOption configures a [Text] drawer.
type TextOption func(*Text)

// WithCellSize sets how many layout units one character cell covers.
func WithCellSize(w, h float64) TextOption {
	return func(d *Text) {
		if w > 0 {
			d.cellW = w
		}
		if h > 0 {
			d.cellH = h
		}
	}
}

// Text renders the drawing onto a character grid. Edges are rasterized with
// line characters and labels are written over them; emphasized labels are
// wrapped in asterisks.
type Text struct {
	cellW, cellH float64

	edges []textEdge
	nodes []textNode
	done  bool
}

type textEdge struct{ from, to layout.Position }

type textNode struct {
	pos   layout.Position
	label []rune
}

// NewText returns an empty text drawer.
func NewText(opts ...TextOption) *Text {
	d := &Text{cellW: DefaultCellWidth, cellH: DefaultCellHeight}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Text) Name() string { return "text" }

func (d *Text) DrawEdge(from, to layout.Position) error {
	if d.done {
		return render.ErrFinalized
	}
	d.edges = append(d.edges, textEdge{from, to})
	return nil
}

func (d *Text) DrawNode(p layout.Position, label string, emphasized bool) error {
	if d.done {
		return render.ErrFinalized
	}
	if emphasized {
		label = "*" + label + "*"
	}
	d.nodes = append(d.nodes, textNode{pos: p, label: []rune(label)})
	return nil
}

// Finalize rasterizes everything. Lines carry no trailing spaces and the
// output ends with a newline unless nothing was drawn.
func (d *Text) Finalize() (render.Artifact, error) {
	if d.done {
		return render.Artifact{}, render.ErrFinalized
	}
	d.done = true
	a := render.Artifact{Format: "txt", MediaType: render.MediaText}
	if len(d.nodes) == 0 {
		return a, nil
	}

	var box bounds
	for _, n := range d.nodes {
		box.add(n.pos.X, n.pos.Y)
	}
	cell := func(p layout.Position) (int, int) {
		return int(math.Round((p.X - box.minX) / d.cellW)), int(math.Round((p.Y - box.minY) / d.cellH))
	}

	// Shift right so the leftmost label starts at column 0.
	shift := 0
	for _, n := range d.nodes {
		c, _ := cell(n.pos)
		shift = max(shift, len(n.label)/2-c)
	}

	g := newGrid()
	for _, e := range d.edges {
		c1, r1 := cell(e.from)
		c2, r2 := cell(e.to)
		g.line(c1+shift, r1, c2+shift, r2)
	}
	for _, n := range d.nodes {
		c, r := cell(n.pos)
		g.write(c+shift-len(n.label)/2, r, n.label)
	}
	a.Data = []byte(g.String())
	return a, nil
}

// grid is a sparse, growable character canvas.
type grid struct {
	rows [][]rune
}

func newGrid() *grid { return &grid{} }

func (g *grid) set(col, row int, r rune) {
	if col < 0 || row < 0 {
		return
	}
	for len(g.rows) <= row {
		g.rows = append(g.rows, nil)
	}
	line := g.rows[row]
	for len(line) <= col {
		line = append(line, ' ')
	}
	line[col] = r
	g.rows[row] = line
}

func (g *grid) write(col, row int, s []rune) {
	for i, r := range s {
		g.set(col+i, row, r)
	}
}

// line connects two cells without touching the rows (or, for edges within
// a row, the columns) of its endpoints, which belong to node labels.
func (g *grid) line(c1, r1, c2, r2 int) {
	ch := lineRune(c2-c1, r2-r1)
	if r1 == r2 {
		for c := min(c1, c2) + 1; c < max(c1, c2); c++ {
			g.set(c, r1, ch)
		}
		return
	}
	step := sign(r2 - r1)
	for r := r1 + step; r != r2; r += step {
		t := float64(r-r1) / float64(r2-r1)
		g.set(c1+int(math.Round(t*float64(c2-c1))), r, ch)
	}
}

func (g *grid) String() string {
	var sb strings.Builder
	for _, line := range g.rows {
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func lineRune(dc, dr int) rune {
	switch {
	case dc == 0:
		return '|'
	case dr == 0:
		return '-'
	case (dc > 0) == (dr > 0):
		return '\\'
	default:
		return '/'
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
