package styles

import (
	"bytes"
	"fmt"
)

const (
	simpleStroke       = "#333"
	simpleFill         = "white"
	simpleEmphasisFill = "#ffd966"
	simpleFont         = "Helvetica, Arial, sans-serif"
)

// Simple draws every node as a circle with a centered label. Emphasized
// nodes get a highlight fill and a bold label.
type Simple struct{}

func (Simple) Name() string { return "simple" }

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderEdge(buf *bytes.Buffer, e Edge) {
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1.5"/>`+"\n",
		e.X1, e.Y1, e.X2, e.Y2, simpleStroke)
}

func (Simple) RenderNode(buf *bytes.Buffer, n Node) {
	fill, weight := simpleFill, "normal"
	if n.Emphasized {
		fill, weight = simpleEmphasisFill, "bold"
	}
	fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		n.CX, n.CY, n.R, fill, simpleStroke)
	writeLabel(buf, n, simpleFont, weight)
}

func writeLabel(buf *bytes.Buffer, n Node, font, weight string) {
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%.1f" font-weight="%s">%s</text>`+"\n",
		n.CX, n.CY, font, n.FontSize, weight, EscapeXML(n.Label))
}
