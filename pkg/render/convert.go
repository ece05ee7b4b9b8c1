package render

import (
	"bytes"
	"fmt"
	"os/exec"
)

// Converter names the external tool used by [ToPDF] and [ToPNG].
const Converter = "rsvg-convert"

// Convert returns a rendered into format. Converting to the artifact's own
// format is a no-op; otherwise the source must be SVG and the target "png"
// or "pdf".
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func Convert(a Artifact, format string, scale float64) (Artifact, error) {
	if format == a.Format {
		return a, nil
	}
	if a.Format != "svg" {
		return Artifact{}, fmt.Errorf("cannot convert %s to %s: only svg sources are supported", a.Format, format)
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case "pdf":
		data, err = ToPDF(a.Data)
	case "png":
		data, err = ToPNG(a.Data, scale)
	default:
		return Artifact{}, fmt.Errorf("cannot convert svg to %s", format)
	}
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Format: format, MediaType: MediaType(format), Data: data}, nil
}

// ToPDF converts SVG bytes to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG. A scale of 2.0 doubles the resolution;
// zero or negative scales fall back to 1.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath(Converter); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command(Converter, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", Converter, err, errBuf.String())
	}
	return out.Bytes(), nil
}
