package render

import (
	"errors"
	"fmt"

	"github.com/matzehuels/treelayout/pkg/layout"
)

// ErrFinalized is returned by a [Drawer] that has already produced its artifact.
var ErrFinalized = errors.New("drawer already finalized")

// Drawer turns positioned edges and nodes into an output artifact.
//
// A Drawer is single-use: the layouter issues every DrawEdge call, then every
// DrawNode call, then exactly one Finalize. Implementations may buffer or
// stream. After Finalize all methods return [ErrFinalized].
//
// Drawers are not safe for concurrent use.
type Drawer interface {
	// Name identifies the drawer in errors and logs (e.g. "svg").
	Name() string
	// DrawEdge records a connector between a parent and a child center.
	DrawEdge(from, to layout.Position) error
	// DrawNode records a node centered at p.
	DrawNode(p layout.Position, label string, emphasized bool) error
	// Finalize completes the drawing and returns its bytes.
	Finalize() (Artifact, error)
}

// Artifact is the finished output of a [Drawer].
type Artifact struct {
	Format    string // File extension without dot: "svg", "json", "txt", ...
	MediaType string // MIME type for HTTP responses
	Data      []byte
}

// String returns a short description, not the payload.
func (a Artifact) String() string {
	return fmt.Sprintf("%s artifact (%d bytes)", a.Format, len(a.Data))
}

// Len returns the payload size in bytes.
func (a Artifact) Len() int { return len(a.Data) }

// Media types for the built-in formats.
const (
	MediaSVG  = "image/svg+xml"
	MediaPNG  = "image/png"
	MediaPDF  = "application/pdf"
	MediaJSON = "application/json"
	MediaText = "text/plain; charset=utf-8"
	MediaDOT  = "text/vnd.graphviz"
)

// MediaType returns the media type for a format name, or
// application/octet-stream if the format is unknown.
func MediaType(format string) string {
	switch format {
	case "svg":
		return MediaSVG
	case "png":
		return MediaPNG
	case "pdf":
		return MediaPDF
	case "json":
		return MediaJSON
	case "txt":
		return MediaText
	case "dot":
		return MediaDOT
	}
	return "application/octet-stream"
}
