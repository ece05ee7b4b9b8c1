package sink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/render"
)

// DOT emits a Graphviz document with every node pinned to its computed
// position, so neato reproduces the layout instead of computing its own.
type DOT struct {
	edges []textEdge
	nodes []dotNode
	done  bool
}

type dotNode struct {
	pos        layout.Position
	label      string
	emphasized bool
}

// NewDOT returns an empty DOT drawer.
func NewDOT() *DOT { return &DOT{} }

func (d *DOT) Name() string { return "dot" }

func (d *DOT) DrawEdge(from, to layout.Position) error {
	if d.done {
		return render.ErrFinalized
	}
	d.edges = append(d.edges, textEdge{from, to})
	return nil
}

func (d *DOT) DrawNode(p layout.Position, label string, emphasized bool) error {
	if d.done {
		return render.ErrFinalized
	}
	d.nodes = append(d.nodes, dotNode{p, label, emphasized})
	return nil
}

func (d *DOT) Finalize() (render.Artifact, error) {
	if d.done {
		return render.Artifact{}, render.ErrFinalized
	}
	d.done = true
	return render.Artifact{Format: "dot", MediaType: render.MediaDOT, Data: d.document()}, nil
}

// document resolves edge endpoints back to node names by position. Endpoints
// with no matching node become invisible points.
func (d *DOT) document() []byte {
	var buf bytes.Buffer
	buf.WriteString("graph T {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("\n")

	names := make(map[layout.Position]string, len(d.nodes))
	for i, n := range d.nodes {
		name := "n" + strconv.Itoa(i)
		if _, dup := names[n.pos]; !dup {
			names[n.pos] = name
		}
		attrs := "label=" + dotQuote(n.label) + ", pos=" + dotQuote(pinned(n.pos))
		if n.emphasized {
			attrs += ", fillcolor=\"#ffd966\", fontname=\"Helvetica-Bold\""
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", name, attrs)
	}

	extra := 0
	nameOf := func(p layout.Position) string {
		if n, ok := names[p]; ok {
			return n
		}
		name := "p" + strconv.Itoa(extra)
		extra++
		names[p] = name
		fmt.Fprintf(&buf, "  %s [shape=point, style=invis, pos=%s];\n", name, dotQuote(pinned(p)))
		return name
	}

	if len(d.edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range d.edges {
		from, to := nameOf(e.from), nameOf(e.to)
		fmt.Fprintf(&buf, "  %s -- %s;\n", from, to)
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

// pinned formats p as a fixed neato position. Graphviz's y axis points up.
func pinned(p layout.Position) string {
	return num(p.X) + "," + num(-p.Y) + "!"
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)

// dotQuote returns s as a DOT double-quoted string. Only backslash, quote and
// line breaks are escaped; invalid UTF-8 becomes U+FFFD.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(strings.ToValidUTF8(s, "\uFFFD")) + `"`
}
