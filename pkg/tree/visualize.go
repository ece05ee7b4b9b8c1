package tree

// Visualizer supplies the display label for a node's data.
type Visualizer interface {
	Visualize() string
}

// Emphasizer is implemented by node data that wants a distinct visual style.
// It is optional: data without it is never emphasized.
type Emphasizer interface {
	Emphasize() bool
}

// Emphasized reports whether v asks to be emphasized.
func Emphasized(v any) bool {
	e, ok := v.(Emphasizer)
	return ok && e.Emphasize()
}

// Label is a ready-made node data type carrying a label and an emphasis flag.
// It is what the loaders in pkg/io produce.
type Label struct {
	Text     string `json:"label" yaml:"label"`
	Emphasis bool   `json:"emphasize,omitempty" yaml:"emphasize,omitempty"`
}

// Visualize returns the label text.
func (l Label) Visualize() string { return l.Text }

// Emphasize returns the emphasis flag.
func (l Label) Emphasize() bool { return l.Emphasis }

var (
	_ Visualizer = Label{}
	_ Emphasizer = Label{}
)
