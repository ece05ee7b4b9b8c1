package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/render"
)

// Graphviz renders the pinned DOT document in-process with the neato engine.
// It needs no external binaries; supported formats are "svg" and "png".
type Graphviz struct {
	dot    *DOT
	format string
}

// NewGraphviz returns a Graphviz drawer producing format. Unknown formats
// are reported by Finalize.
func NewGraphviz(format string) *Graphviz {
	return &Graphviz{dot: NewDOT(), format: format}
}

func (d *Graphviz) Name() string { return "graphviz" }

func (d *Graphviz) DrawEdge(from, to layout.Position) error { return d.dot.DrawEdge(from, to) }

func (d *Graphviz) DrawNode(p layout.Position, label string, emphasized bool) error {
	return d.dot.DrawNode(p, label, emphasized)
}

func (d *Graphviz) Finalize() (render.Artifact, error) {
	src, err := d.dot.Finalize()
	if err != nil {
		return render.Artifact{}, err
	}

	var format graphviz.Format
	switch d.format {
	case "svg", "":
		format = graphviz.SVG
	case "png":
		format = graphviz.PNG
	default:
		return render.Artifact{}, fmt.Errorf("graphviz: unsupported format %q", d.format)
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return render.Artifact{}, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes(src.Data)
	if err != nil {
		return render.Artifact{}, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return render.Artifact{}, fmt.Errorf("render: %w", err)
	}

	out := render.Artifact{Format: string(format), MediaType: render.MediaType(string(format)), Data: buf.Bytes()}
	if format == graphviz.SVG {
		out.Data = normalizeViewBox(out.Data)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based root element with one
// that scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
