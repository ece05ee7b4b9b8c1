package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/pkg/errors"
	treeio "github.com/matzehuels/treelayout/pkg/io"
	"github.com/matzehuels/treelayout/pkg/pipeline"
	"github.com/matzehuels/treelayout/pkg/tree"
)

// stdinPath reads the tree from standard input.
const stdinPath = "-"

// optionFlags binds pipeline options to command flags. Flags override values
// from --config only when given explicitly.
type optionFlags struct {
	config string
	values pipeline.Options
}

// addLayoutFlags registers the spacing and orientation flags.
func (f *optionFlags) addLayoutFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "TOML options file (flags take precedence)")
	fs.Float64Var(&f.values.NodeWidth, "node-width", 0, "footprint of one node along the breadth axis (default 40)")
	fs.Float64Var(&f.values.HorizontalGap, "horizontal-gap", 0, "gap between sibling subtrees (default 20)")
	fs.Float64Var(&f.values.VerticalGap, "vertical-gap", 0, "distance between depth levels (default 60)")
	fs.StringVar(&f.values.Orientation, "orientation", "", "top-down (default) or left-right")
}

// addRenderFlags registers the drawer flags on top of the layout flags.
func (f *optionFlags) addRenderFlags(cmd *cobra.Command) {
	f.addLayoutFlags(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&f.values.Drawer, "drawer", "d", "", "drawer: "+strings.Join(pipeline.Drawers(), ", ")+" (default svg)")
	fs.StringVarP(&f.values.Format, "format", "f", "", "output format (default: from --output extension or the drawer's own)")
	fs.StringVar(&f.values.Style, "style", "", "SVG style: simple (default), text")
	fs.Float64Var(&f.values.Radius, "radius", 0, "SVG node radius (default 15)")
	fs.Float64Var(&f.values.Margin, "margin", 0, "SVG margin around the drawing (default 10)")
	fs.Float64Var(&f.values.FontSize, "font-size", 0, "SVG label font size (default 12)")
	fs.Float64Var(&f.values.Scale, "scale", 0, "PNG resolution multiplier (default 2)")
}

// options returns the config file merged with explicitly set flags.
func (f *optionFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.config != "" {
		var err error
		if opts, err = pipeline.LoadOptionsFile(f.config); err != nil {
			return pipeline.Options{}, err
		}
	}

	fs := cmd.Flags()
	v := f.values
	for name, apply := range map[string]func(){
		"node-width":     func() { opts.NodeWidth = v.NodeWidth },
		"horizontal-gap": func() { opts.HorizontalGap = v.HorizontalGap },
		"vertical-gap":   func() { opts.VerticalGap = v.VerticalGap },
		"orientation":    func() { opts.Orientation = v.Orientation },
		"drawer":         func() { opts.Drawer = v.Drawer },
		"format":         func() { opts.Format = v.Format },
		"style":          func() { opts.Style = v.Style },
		"radius":         func() { opts.Radius = v.Radius },
		"margin":         func() { opts.Margin = v.Margin },
		"font-size":      func() { opts.FontSize = v.FontSize },
		"scale":          func() { opts.Scale = v.Scale },
	} {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			apply()
		}
	}
	return opts, nil
}

// loadTree reads the tree at path, or from stdin when path is "-".
// inputFormat overrides the decoder chosen from the file extension.
func loadTree(cmd *cobra.Command, path, inputFormat string) (*tree.Tree[tree.Label], error) {
	if path != stdinPath {
		if inputFormat == "" {
			return treeio.ImportFile(path)
		}
		decode, err := treeio.DecoderFor(inputFormat)
		if err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		defer f.Close()
		return decode(f)
	}

	if inputFormat == "" {
		inputFormat = "json"
	}
	decode, err := treeio.DecoderFor(inputFormat)
	if err != nil {
		return nil, err
	}
	return decode(cmd.InOrStdin())
}

// defaultOutput derives the output path from the input path: tree.json
// renders to tree.svg, or to tree.layout.json when the names would collide.
// Input from stdin renders to stdout.
func defaultOutput(input, format string) string {
	if input == stdinPath {
		return ""
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if out := base + "." + format; out != input {
		return out
	}
	return base + ".layout." + format
}
