package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/pkg/pipeline"
)

// previewCommand creates the preview command, an interactive terminal view
// of the text drawer's output.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags       optionFlags
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "preview [tree.json|tree.yaml|-]",
		Short: "Browse a tree drawing in the terminal",
		Long: `Browse a tree drawing in the terminal.

The tree is drawn with the text drawer and shown in a scrollable view.
Keys: arrows or hjkl scroll, pgup/pgdown page, g/G jump, q quits.`,
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
			opts.Drawer = pipeline.DrawerText
			opts.Format = ""
			opts.Logger = c.Logger

			a, err := pipeline.Render(cmd.Context(), t, opts, nil)
			if err != nil {
				return err
			}

			m := newPager(args[0], string(a.Data))
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: json, yaml (default: from extension)")
	flags.addLayoutFlags(cmd)

	return cmd
}

// =============================================================================
// pagerModel - scrollable view of a text drawing
// =============================================================================

// pagerChrome is the number of lines taken by the title and footer.
const pagerChrome = 3

type pagerModel struct {
	title  string
	lines  []string
	wide   int // longest line, in runes
	top    int // first visible line
	left   int // first visible column
	width  int
	height int // visible drawing lines
}

func newPager(title, text string) pagerModel {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if text == "" {
		lines = nil
	}
	wide := 0
	for _, l := range lines {
		wide = max(wide, len([]rune(l)))
	}
	return pagerModel{title: title, lines: lines, wide: wide, width: 80, height: 20}
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.top--
		case "down", "j":
			m.top++
		case "left", "h":
			m.left -= 4
		case "right", "l":
			m.left += 4
		case "pgup", "b":
			m.top -= m.height
		case "pgdown", "f", " ":
			m.top += m.height
		case "home", "g":
			m.top, m.left = 0, 0
		case "end", "G":
			m.top = len(m.lines)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = max(msg.Height-pagerChrome, 1)
	}
	m.clamp()
	return m, nil
}

func (m *pagerModel) clamp() {
	m.top = min(m.top, max(len(m.lines)-m.height, 0))
	m.top = max(m.top, 0)
	m.left = min(m.left, max(m.wide-m.width, 0))
	m.left = max(m.left, 0)
}

func (m pagerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")

	if len(m.lines) == 0 {
		b.WriteString(StyleDim.Render("empty tree"))
		b.WriteString("\n")
	}
	end := min(m.top+m.height, len(m.lines))
	for _, line := range m.lines[m.top:end] {
		r := []rune(line)
		if m.left < len(r) {
			r = r[m.left:min(len(r), m.left+m.width)]
		} else {
			r = nil
		}
		b.WriteString(string(r))
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render(fmt.Sprintf("lines %d-%d of %d  col %d  q quit", min(m.top+1, end), end, len(m.lines), m.left+1)))
	return b.String()
}
