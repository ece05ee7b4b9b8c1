package styles

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Style defines the visual appearance of SVG tree drawings.
// Implementations write complete SVG elements into the buffer.
type Style interface {
	// Name is the identifier accepted by [ByName].
	Name() string
	// RenderDefs writes SVG <defs> or <style> content shared by all elements.
	RenderDefs(buf *bytes.Buffer)
	// RenderEdge writes the SVG for a parent/child connector.
	RenderEdge(buf *bytes.Buffer, e Edge)
	// RenderNode writes the SVG for a node and its label.
	RenderNode(buf *bytes.Buffer, n Node)
}

// Node contains all data needed to render a single node.
type Node struct {
	Label      string  // Display text (unescaped)
	CX, CY     float64 // Center
	R          float64 // Radius of the node marker
	FontSize   float64
	Emphasized bool
}

// Edge contains positioning data for a connector between two node centers.
type Edge struct {
	X1, Y1, X2, Y2 float64
	Inset          float64 // Distance to keep clear at both ends (node radius)
}

var registry = map[string]Style{
	"simple": Simple{},
	"text":   Text{},
}

// Names returns the registered style names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// ByName returns the style registered under name. The empty name selects
// [Simple].
func ByName(name string) (Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Simple{}, nil
	}
	if s, ok := registry[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown style %q (available: %s)", name, strings.Join(Names(), ", "))
}
