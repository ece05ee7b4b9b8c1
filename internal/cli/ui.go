package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

// Shared styles, also used by the preview pager and layout table.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
)

var (
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFail    = lipgloss.NewStyle().Foreground(colorRed)
	styleNote    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// report writes human-oriented status lines. Commands point it at stderr so
// stdout stays free for artifacts.
type report struct {
	w io.Writer
}

func newReport(w io.Writer) report { return report{w: w} }

func (r report) line(s string) { fmt.Fprintln(r.w, s) }

func (r report) ok(format string, args ...any) {
	r.line(styleOK.Render("✓") + " " + fmt.Sprintf(format, args...))
}

func (r report) fail(format string, args ...any) {
	r.line(styleFail.Render("✗") + " " + fmt.Sprintf(format, args...))
}

func (r report) note(format string, args ...any) {
	r.line(styleNote.Render("›") + " " + fmt.Sprintf(format, args...))
}

func (r report) detail(format string, args ...any) {
	r.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (r report) file(path string) {
	r.line("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// renderSummary is the one-line footer printed after a render.
type renderSummary struct {
	nodes, edges int
	bytes        int
	elapsed      time.Duration
	cached       bool
}

func (s renderSummary) String() string {
	parts := []string{
		fmt.Sprintf("%d nodes", s.nodes),
		fmt.Sprintf("%d edges", s.edges),
		formatBytes(s.bytes),
	}
	status := styleNote.Render("fresh " + s.elapsed.Round(time.Millisecond).String())
	if s.cached {
		status = styleOK.Render("cached")
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	return "  " + strings.Join(append(parts, status), StyleDim.Render(" · "))
}

func (r report) summary(s renderSummary) { r.line(s.String()) }

func (r report) hint(description, command string) {
	r.line("")
	r.line(StyleDim.Render(description+":") + " " + styleCommand.Render(command))
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
