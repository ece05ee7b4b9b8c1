package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags       optionFlags
		output      string
		inputFormat string
		noCache     bool
		refresh     bool
	)

	cmd := &cobra.Command{
		Use:   "render [tree.json|tree.yaml|-]",
		Short: "Draw a tree to SVG, PNG, PDF, JSON, DOT or text",
		Long: `Draw a tree to SVG, PNG, PDF, JSON, DOT or text.

The input is a nested document where every node has a "label", an optional
"emphasize" flag and optional "children":

  {"label": "S", "children": [{"label": "NP"}, {"label": "VP", "emphasize": true}]}

Parse-tree exports using "text" and "is_terminal" are accepted too. Use "-" to
read JSON from stdin; the drawing is then written to stdout unless -o is set.

PNG and PDF output requires rsvg-convert (librsvg) for the svg drawer.
Rendered artifacts are cached locally; see 'treelayout cache'.`,
		Example: `  treelayout render tree.json
  treelayout render tree.yaml -o tree.png --orientation left-right
  treelayout render tree.json -d text -o -
  cat tree.json | treelayout render - -d dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				opts.Output = output
			}
			opts.Refresh = refresh
			return c.runRender(cmd, args[0], inputFormat, opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, '-' for stdout (default: <input>.<format>)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: json, yaml (default: from extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if a cached artifact exists")
	flags.addRenderFlags(cmd)

	return cmd
}

// runRender loads the tree, renders it and reports where it went.
func (c *CLI) runRender(cmd *cobra.Command, input, inputFormat string, opts pipeline.Options, noCache bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	t, err := loadTree(cmd, input, inputFormat)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded tree", "input", input, "nodes", t.Len())

	toStdout := opts.Output == stdinPath || (opts.Output == "" && input == stdinPath)
	if toStdout {
		opts.Output = ""
	}
	opts.Logger = c.Logger
	if err := opts.Validate(); err != nil {
		return err
	}
	if !toStdout && opts.Output == "" {
		opts.Output = defaultOutput(input, opts.Format)
	}

	runner := c.newRunner(noCache)
	defer runner.Close()

	sw := startStopwatch(c.Logger)
	var spin *spinner
	if !toStdout && opts.Format != opts.NativeFormat() {
		spin = startSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Converting to %s...", opts.Format))
	}
	res, err := runner.Render(ctx, t, opts)
	if spin != nil && spin.stop() {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	sw.done("rendered", "nodes", res.Stats.NodeCount, "cached", res.CacheHit)

	if toStdout {
		_, err := cmd.OutOrStdout().Write(res.Artifact.Data)
		return err
	}

	r := newReport(cmd.ErrOrStderr())
	r.ok("Rendered %s with the %s drawer", opts.Format, opts.Drawer)
	r.file(opts.Output)
	r.summary(renderSummary{
		nodes:   res.Stats.NodeCount,
		edges:   res.Stats.EdgeCount,
		bytes:   res.Artifact.Len(),
		elapsed: res.Stats.Duration,
		cached:  res.CacheHit,
	})
	if input != stdinPath {
		r.hint("Preview in the terminal", appName+" preview "+input)
	}
	return nil
}
