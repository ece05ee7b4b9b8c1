package sink

import (
	"encoding/json"

	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/render"
)

// JSON records the drawing as a machine-readable document, useful for
// feeding positions to other renderers.
type JSON struct {
	out  jsonOutput
	box  bounds
	done bool
}

type jsonOutput struct {
	Nodes  []jsonNode  `json:"nodes"`
	Edges  []jsonEdge  `json:"edges"`
	Bounds *jsonBounds `json:"bounds,omitempty"`
}

type jsonNode struct {
	Label      string  `json:"label"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Emphasized bool    `json:"emphasized,omitempty"`
}

type jsonEdge struct {
	From layout.Position `json:"from"`
	To   layout.Position `json:"to"`
}

type jsonBounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// NewJSON returns an empty JSON drawer.
func NewJSON() *JSON {
	return &JSON{out: jsonOutput{Nodes: []jsonNode{}, Edges: []jsonEdge{}}}
}

func (d *JSON) Name() string { return "json" }

func (d *JSON) DrawEdge(from, to layout.Position) error {
	if d.done {
		return render.ErrFinalized
	}
	d.out.Edges = append(d.out.Edges, jsonEdge{From: from, To: to})
	return nil
}

func (d *JSON) DrawNode(p layout.Position, label string, emphasized bool) error {
	if d.done {
		return render.ErrFinalized
	}
	d.box.add(p.X, p.Y)
	d.out.Nodes = append(d.out.Nodes, jsonNode{Label: label, X: p.X, Y: p.Y, Emphasized: emphasized})
	return nil
}

// Finalize encodes the recorded nodes and edges. Bounds cover node centers
// and are omitted when there are no nodes.
func (d *JSON) Finalize() (render.Artifact, error) {
	if d.done {
		return render.Artifact{}, render.ErrFinalized
	}
	d.done = true
	if !d.box.empty() {
		d.out.Bounds = &jsonBounds{MinX: d.box.minX, MinY: d.box.minY, MaxX: d.box.maxX, MaxY: d.box.maxY}
	}
	data, err := json.MarshalIndent(d.out, "", "  ")
	if err != nil {
		return render.Artifact{}, err
	}
	return render.Artifact{Format: "json", MediaType: render.MediaJSON, Data: append(data, '\n')}, nil
}
