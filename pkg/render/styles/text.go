package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
)

const textFont = "Courier, monospace"

// Text draws labels only, in a monospace font, with edges stopping short of
// each label. Emphasized labels are bold.
type Text struct{}

func (Text) Name() string { return "text" }

func (Text) RenderDefs(buf *bytes.Buffer) {}

func (Text) RenderEdge(buf *bytes.Buffer, e Edge) {
	x1, y1, x2, y2 := Inset(e)
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" stroke-width="1"/>`+"\n",
		x1, y1, x2, y2)
}

func (Text) RenderNode(buf *bytes.Buffer, n Node) {
	weight := "normal"
	if n.Emphasized {
		weight = "bold"
	}
	writeLabel(buf, n, textFont, weight)
}

// Inset returns the endpoints of e pulled toward each other by e.Inset.
// Edges shorter than twice the inset collapse to their midpoint.
func Inset(e Edge) (x1, y1, x2, y2 float64) {
	dx, dy := e.X2-e.X1, e.Y2-e.Y1
	length := math.Hypot(dx, dy)
	if e.Inset <= 0 || length == 0 {
		return e.X1, e.Y1, e.X2, e.Y2
	}
	if 2*e.Inset >= length {
		mx, my := e.X1+dx/2, e.Y1+dy/2
		return mx, my, mx, my
	}
	ux, uy := dx/length*e.Inset, dy/length*e.Inset
	return e.X1 + ux, e.Y1 + uy, e.X2 - ux, e.Y2 - uy
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
