package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/pkg/layout"
	"github.com/matzehuels/treelayout/pkg/layouter"
	"github.com/matzehuels/treelayout/pkg/tree"
)

// placementRow is one node of the layout command's output.
type placementRow struct {
	ID     int     `json:"id"`
	Label  string  `json:"label"`
	Parent *int    `json:"parent,omitempty"`
	Depth  int     `json:"depth"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// layoutCommand creates the layout command, which prints node positions
// without drawing anything.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags       optionFlags
		inputFormat string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "layout [tree.json|tree.yaml|-]",
		Short: "Print the computed position of every node",
		Long: `Print the computed position of every node.

Nodes are listed in document order (pre-order). Use --json for machine-readable
output. Positions are the same ones the drawers use.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			t, err := loadTree(cmd, args[0], inputFormat)
			if err != nil {
				return err
			}
			opts.Logger = c.Logger
			opts.SetDefaults()
			cfg, err := opts.LayoutConfig()
			if err != nil {
				return err
			}
			r, err := layouter.New(t, layouter.WithConfig(cfg), layouter.WithLogger(c.Logger)).Layout()
			if err != nil {
				return err
			}

			rows := placementRows(t, r)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			writeLayoutTable(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: json, yaml (default: from extension)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	flags.addLayoutFlags(cmd)

	return cmd
}

func placementRows(t *tree.Tree[tree.Label], r layout.Result) []placementRow {
	rows := make([]placementRow, 0, r.Len())
	for _, p := range r.Placements {
		row := placementRow{
			ID:    int(p.Node),
			Label: t.Data(p.Node).Text,
			Depth: p.Depth,
			X:     p.Position.X,
			Y:     p.Position.Y,
		}
		if p.Parent != tree.NoNode {
			parent := int(p.Parent)
			row.Parent = &parent
		}
		rows = append(rows, row)
	}
	return rows
}

func writeLayoutTable(w io.Writer, rows []placementRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, StyleDim.Render("empty tree"))
		return
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cells := make([][]string, len(rows))
	for i, r := range rows {
		parent := "-"
		if r.Parent != nil {
			parent = strconv.Itoa(*r.Parent)
		}
		cells[i] = []string{
			strconv.Itoa(r.ID),
			r.Label,
			parent,
			strconv.Itoa(r.Depth),
			strconv.FormatFloat(r.X, 'f', -1, 64),
			strconv.FormatFloat(r.Y, 'f', -1, 64),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Label", "Parent", "Depth", "X", "Y").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(w, t.Render())
}
