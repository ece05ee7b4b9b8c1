package styles

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "simple", false},
		{"simple", "simple", false},
		{" Text ", "text", false},
		{"handdrawn", "", true},
	}
	for _, tt := range tests {
		s, err := ByName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ByName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if err == nil && s.Name() != tt.want {
			t.Errorf("ByName(%q) = %q, want %q", tt.name, s.Name(), tt.want)
		}
	}
}

func TestSimpleRenderNode(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		contains []string
	}{
		{
			name: "plain",
			node: Node{Label: "root", CX: 10, CY: 20, R: 15, FontSize: 12},
			contains: []string{
				`<circle cx="10.00" cy="20.00" r="15.00"`,
				`fill="white"`,
				`font-weight="normal">root</text>`,
			},
		},
		{
			name: "emphasized",
			node: Node{Label: "x", R: 15, FontSize: 12, Emphasized: true},
			contains: []string{
				`fill="#ffd966"`,
				`font-weight="bold"`,
			},
		},
		{
			name:     "escaped",
			node:     Node{Label: "a<b&c", R: 1, FontSize: 12},
			contains: []string{`>a&lt;b&amp;c</text>`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Simple{}.RenderNode(&buf, tt.node)
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("RenderNode() missing %q in:\n%s", s, buf.String())
				}
			}
		})
	}
}

func TestTextRenderNode(t *testing.T) {
	var buf bytes.Buffer
	Text{}.RenderNode(&buf, Node{Label: "leaf", FontSize: 12, Emphasized: true})
	out := buf.String()
	if strings.Contains(out, "<circle") {
		t.Errorf("Text style should not draw circles:\n%s", out)
	}
	for _, s := range []string{`font-family="Courier, monospace"`, `font-weight="bold"`, `>leaf</text>`} {
		if !strings.Contains(out, s) {
			t.Errorf("RenderNode() missing %q in:\n%s", s, out)
		}
	}
}

func TestRenderDefsEmpty(t *testing.T) {
	for _, s := range []Style{Simple{}, Text{}} {
		var buf bytes.Buffer
		s.RenderDefs(&buf)
		if buf.Len() != 0 {
			t.Errorf("%s RenderDefs() wrote %d bytes, want 0", s.Name(), buf.Len())
		}
	}
}

func TestInset(t *testing.T) {
	tests := []struct {
		name string
		edge Edge
		want [4]float64
	}{
		{"no inset", Edge{X1: 0, Y1: 0, X2: 0, Y2: 60}, [4]float64{0, 0, 0, 60}},
		{"vertical", Edge{X1: 0, Y1: 0, X2: 0, Y2: 60, Inset: 10}, [4]float64{0, 10, 0, 50}},
		{"diagonal", Edge{X1: 0, Y1: 0, X2: 30, Y2: 40, Inset: 5}, [4]float64{3, 4, 27, 36}},
		{"collapsed", Edge{X1: 0, Y1: 0, X2: 0, Y2: 10, Inset: 8}, [4]float64{0, 5, 0, 5}},
		{"zero length", Edge{X1: 1, Y1: 1, X2: 1, Y2: 1, Inset: 8}, [4]float64{1, 1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x1, y1, x2, y2 := Inset(tt.edge)
			got := [4]float64{x1, y1, x2, y2}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("Inset() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestEscapeXML(t *testing.T) {
	if got, want := EscapeXML(`<"a"&'b'>`), "&lt;&#34;a&#34;&amp;&#39;b&#39;&gt;"; got != want {
		t.Errorf("EscapeXML() = %q, want %q", got, want)
	}
}
