// Package pipeline provides the load → layout → draw → persist pipeline for
// treelayout.
//
// The CLI and the render service both go through this package so that
// option defaults, validation and caching behave identically everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Render(ctx, t, pipeline.Options{Drawer: "svg", Format: "png"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := res.Artifact.Data
//
// Options can be loaded from a TOML file with [LoadOptionsFile] and then
// overridden field by field.
package pipeline

import (
	"io"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treelayout/pkg/cache"
	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/render/sink"
	"github.com/matzehuels/treelayout/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultDrawer is the drawer used when none is requested.
	DefaultDrawer = DrawerSVG

	// DefaultStyle is the SVG style used when none is requested.
	DefaultStyle = "simple"

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// Drawer names.
const (
	DrawerSVG      = "svg"
	DrawerJSON     = "json"
	DrawerText     = "text"
	DrawerDOT      = "dot"
	DrawerGraphviz = "graphviz"
)

// Format names, used as file extensions.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatText = "txt"
	FormatDOT  = "dot"
)

// drawerFormats lists the formats each drawer can produce. The first entry
// is the drawer's native format.
var drawerFormats = map[string][]string{
	DrawerSVG:      {FormatSVG, FormatPNG, FormatPDF},
	DrawerJSON:     {FormatJSON},
	DrawerText:     {FormatText},
	DrawerDOT:      {FormatDOT},
	DrawerGraphviz: {FormatSVG, FormatPNG, FormatPDF},
}

// Drawers returns the supported drawer names in sorted order.
func Drawers() []string {
	names := make([]string, 0, len(drawerFormats))
	for name := range drawerFormats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Formats returns the formats drawer can produce, native format first.
func Formats(drawer string) []string {
	return slices.Clone(drawerFormats[drawer])
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for rendering one tree.
// It supports JSON (server requests) and TOML (config files) serialization.
type Options struct {
	// Layout options
	NodeWidth     float64 `json:"node_width,omitempty" toml:"node_width"`
	HorizontalGap float64 `json:"horizontal_gap,omitempty" toml:"horizontal_gap"`
	VerticalGap   float64 `json:"vertical_gap,omitempty" toml:"vertical_gap"`
	Orientation   string  `json:"orientation,omitempty" toml:"orientation"`

	// Render options
	Drawer   string  `json:"drawer,omitempty" toml:"drawer"`
	Style    string  `json:"style,omitempty" toml:"style"`
	Format   string  `json:"format,omitempty" toml:"format"`
	Margin   float64 `json:"margin,omitempty" toml:"margin"`
	Radius   float64 `json:"radius,omitempty" toml:"radius"`
	FontSize float64 `json:"font_size,omitempty" toml:"font_size"`
	Scale    float64 `json:"scale,omitempty" toml:"scale"`

	// Output is the file the artifact is written to. Empty keeps it in memory.
	Output string `json:"-" toml:"output"`

	// Refresh bypasses cached artifacts (the result is still stored).
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`
}

// SetDefaults fills every unset field. When Format is unset it is taken from
// the Output extension if that names a format the drawer supports, otherwise
// from the drawer's native format.
func (o *Options) SetDefaults() {
	d := layout.DefaultConfig()
	if o.NodeWidth == 0 {
		o.NodeWidth = d.NodeWidth
		if o.HorizontalGap == 0 {
			o.HorizontalGap = d.HorizontalGap
		}
	}
	if o.VerticalGap == 0 {
		o.VerticalGap = d.VerticalGap
	}
	if o.Orientation == "" {
		o.Orientation = layout.TopDown.String()
	}
	if o.Drawer == "" {
		o.Drawer = DefaultDrawer
	}
	o.Drawer = strings.ToLower(o.Drawer)
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Format == "" {
		o.Format = FormatFromPath(o.Output)
		if !slices.Contains(drawerFormats[o.Drawer], o.Format) {
			o.Format = o.NativeFormat()
		}
	}
	o.Format = strings.ToLower(o.Format)
	if o.Margin == 0 {
		o.Margin = sink.DefaultMargin
	}
	if o.Radius == 0 {
		o.Radius = sink.DefaultRadius
	}
	if o.FontSize == 0 {
		o.FontSize = sink.DefaultFontSize
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every field. Errors carry the
// matching INVALID_* code.
func (o *Options) Validate() error {
	o.SetDefaults()

	if _, err := layout.ParseOrientation(o.Orientation); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrientation, err, "orientation")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"node_width", o.NodeWidth},
		{"horizontal_gap", o.HorizontalGap},
		{"vertical_gap", o.VerticalGap},
		{"margin", o.Margin},
		{"radius", o.Radius},
		{"font_size", o.FontSize},
		{"scale", o.Scale},
	} {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be a finite non-negative number, got %v", f.name, f.v)
		}
	}

	formats, ok := drawerFormats[o.Drawer]
	if !ok {
		return errors.New(errors.ErrCodeInvalidDrawer, "invalid drawer: %q (must be one of: %s)", o.Drawer, strings.Join(Drawers(), ", "))
	}
	if !slices.Contains(formats, o.Format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format for %s drawer: %q (must be one of: %s)", o.Drawer, o.Format, strings.Join(formats, ", "))
	}
	if o.Drawer == DrawerSVG {
		if _, err := styles.ByName(o.Style); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStyle, err, "style")
		}
	}
	return nil
}

// NativeFormat returns the format the drawer produces without conversion.
func (o *Options) NativeFormat() string {
	if formats := drawerFormats[o.Drawer]; len(formats) > 0 {
		return formats[0]
	}
	return ""
}

// LayoutConfig returns the layout engine configuration.
func (o *Options) LayoutConfig() (layout.Config, error) {
	orient, err := layout.ParseOrientation(o.Orientation)
	if err != nil {
		return layout.Config{}, errors.Wrap(errors.ErrCodeInvalidOrientation, err, "orientation")
	}
	return layout.Config{
		NodeWidth:     o.NodeWidth,
		HorizontalGap: o.HorizontalGap,
		VerticalGap:   o.VerticalGap,
		Orientation:   orient,
	}, nil
}

// ArtifactKeyOpts returns cache key options for the artifact these options
// produce. Fields that do not affect the drawer's bytes are left zero.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	orient, _ := layout.ParseOrientation(o.Orientation)
	k := cache.ArtifactKeyOpts{
		Format:        o.Format,
		Drawer:        o.Drawer,
		Orientation:   orient.String(),
		NodeWidth:     o.NodeWidth,
		HorizontalGap: o.HorizontalGap,
		VerticalGap:   o.VerticalGap,
	}
	if o.Drawer == DrawerSVG {
		k.Style = o.Style
		k.Radius = o.Radius
		k.Margin = o.Margin
		k.FontSize = o.FontSize
	}
	if o.Format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// FormatFromPath returns the lower-cased extension of path without the dot.
func FormatFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
