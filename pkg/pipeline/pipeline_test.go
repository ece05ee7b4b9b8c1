package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/layout"
)

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	if opts.Drawer != DefaultDrawer {
		t.Errorf("Drawer = %q, want %q", opts.Drawer, DefaultDrawer)
	}
	if opts.Format != FormatSVG {
		t.Errorf("Format = %q, want %q", opts.Format, FormatSVG)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", opts.Style, DefaultStyle)
	}
	if opts.NodeWidth != layout.DefaultNodeWidth || opts.HorizontalGap != layout.DefaultHorizontalGap || opts.VerticalGap != layout.DefaultVerticalGap {
		t.Errorf("spacing = %v/%v/%v, want layout defaults", opts.NodeWidth, opts.HorizontalGap, opts.VerticalGap)
	}
	if opts.Orientation != "top-down" {
		t.Errorf("Orientation = %q, want top-down", opts.Orientation)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsDefaultsKeepTouchingSiblings(t *testing.T) {
	opts := Options{NodeWidth: 10}
	opts.SetDefaults()
	if opts.HorizontalGap != 0 {
		t.Errorf("HorizontalGap = %v, want 0 when NodeWidth is set", opts.HorizontalGap)
	}
}

func TestOptionsFormatFromOutput(t *testing.T) {
	tests := []struct {
		drawer, output, want string
	}{
		{"svg", "tree.png", FormatPNG},
		{"svg", "tree.PDF", FormatPDF},
		{"svg", "tree.txt", FormatSVG}, // svg drawer cannot produce txt
		{"svg", "", FormatSVG},
		{"text", "tree.out", FormatText},
		{"json", "tree.json", FormatJSON},
		{"dot", "", FormatDOT},
		{"graphviz", "tree.png", FormatPNG},
	}
	for _, tt := range tests {
		opts := Options{Drawer: tt.drawer, Output: tt.output}
		opts.SetDefaults()
		if opts.Format != tt.want {
			t.Errorf("Format for %s drawer, output %q = %q, want %q", tt.drawer, tt.output, opts.Format, tt.want)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want errors.Code
	}{
		{"defaults", Options{}, ""},
		{"text style", Options{Style: "text"}, ""},
		{"left-right", Options{Orientation: "lr"}, ""},
		{"style ignored off svg", Options{Drawer: "text", Style: "nope"}, ""},
		{"drawer case-insensitive", Options{Drawer: "SVG"}, ""},
		{"unknown drawer", Options{Drawer: "canvas"}, errors.ErrCodeInvalidDrawer},
		{"unsupported format", Options{Drawer: "text", Format: "svg"}, errors.ErrCodeInvalidFormat},
		{"unknown style", Options{Style: "handdrawn"}, errors.ErrCodeInvalidStyle},
		{"unknown orientation", Options{Orientation: "diagonal"}, errors.ErrCodeInvalidOrientation},
		{"negative width", Options{NodeWidth: -1}, errors.ErrCodeInvalidInput},
		{"negative radius", Options{Radius: -3}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if got := errors.GetCode(err); got != tt.want {
				t.Errorf("Validate() code = %q, want %q (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestDrawers(t *testing.T) {
	want := []string{"dot", "graphviz", "json", "svg", "text"}
	if diff := cmp.Diff(want, Drawers()); diff != "" {
		t.Errorf("Drawers() mismatch (-want +got):\n%s", diff)
	}
	if got := Formats("svg"); got[0] != FormatSVG {
		t.Errorf("Formats(svg)[0] = %q, want svg", got[0])
	}
	if got := Formats("nope"); len(got) != 0 {
		t.Errorf("Formats(nope) = %v, want empty", got)
	}
}

func TestLayoutConfig(t *testing.T) {
	opts := Options{NodeWidth: 30, HorizontalGap: 5, VerticalGap: 40, Orientation: "left-right"}
	cfg, err := opts.LayoutConfig()
	if err != nil {
		t.Fatalf("LayoutConfig error: %v", err)
	}
	want := layout.Config{NodeWidth: 30, HorizontalGap: 5, VerticalGap: 40, Orientation: layout.LeftRight}
	if cfg != want {
		t.Errorf("LayoutConfig() = %+v, want %+v", cfg, want)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	svg := Options{Style: "simple"}
	svg.SetDefaults()
	text := Options{Style: "text"}
	text.SetDefaults()
	if svg.ArtifactKeyOpts() == text.ArtifactKeyOpts() {
		t.Error("SVG style should be part of the key")
	}

	a := Options{Drawer: "text", Style: "simple"}
	a.SetDefaults()
	b := Options{Drawer: "text", Style: "text"}
	b.SetDefaults()
	if a.ArtifactKeyOpts() != b.ArtifactKeyOpts() {
		t.Error("Style should not affect non-SVG keys")
	}

	// "tb" and "top-down" render identically.
	c := Options{Orientation: "tb"}
	c.SetDefaults()
	d := Options{Orientation: "top-down"}
	d.SetDefaults()
	if c.ArtifactKeyOpts() != d.ArtifactKeyOpts() {
		t.Error("Orientation aliases should share a key")
	}

	// Scale only matters for PNG.
	e := Options{Scale: 1}
	e.SetDefaults()
	if e.ArtifactKeyOpts().Scale != 0 {
		t.Error("Scale should be zero in SVG keys")
	}
}

func TestParseOptions(t *testing.T) {
	data := []byte(`
drawer = "svg"
style = "text"
orientation = "left-right"
node_width = 60
horizontal_gap = 10
vertical_gap = 80
radius = 20
output = "tree.svg"
`)
	got, err := ParseOptions(data)
	if err != nil {
		t.Fatalf("ParseOptions error: %v", err)
	}
	want := Options{
		Drawer:        "svg",
		Style:         "text",
		Orientation:   "left-right",
		NodeWidth:     60,
		HorizontalGap: 10,
		VerticalGap:   80,
		Radius:        20,
		Output:        "tree.svg",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseOptions mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", `node_widht = 3`},
		{"bad syntax", `drawer = `},
		{"wrong type", `node_width = "wide"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOptions([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ParseOptions(%q) error = %v, want INVALID_INPUT", tt.data, err)
			}
		})
	}
}

func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "treelayout.toml")
	if err := os.WriteFile(path, []byte("drawer = \"text\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadOptionsFile(path)
	if err != nil {
		t.Fatalf("LoadOptionsFile error: %v", err)
	}
	if opts.Drawer != "text" {
		t.Errorf("Drawer = %q, want text", opts.Drawer)
	}

	_, err = LoadOptionsFile(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}
