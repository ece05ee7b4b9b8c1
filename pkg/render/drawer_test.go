package render

import (
	"os/exec"
	"strings"
	"testing"
)

func TestArtifactString(t *testing.T) {
	a := Artifact{Format: "svg", MediaType: MediaSVG, Data: []byte("<svg/>")}
	if got, want := a.String(), "svg artifact (6 bytes)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if a.Len() != 6 {
		t.Errorf("Len() = %d, want 6", a.Len())
	}
}

func TestMediaType(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"svg", MediaSVG},
		{"png", MediaPNG},
		{"pdf", MediaPDF},
		{"json", MediaJSON},
		{"txt", MediaText},
		{"dot", MediaDOT},
		{"bmp", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := MediaType(tt.format); got != tt.want {
			t.Errorf("MediaType(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestConvertSameFormat(t *testing.T) {
	a := Artifact{Format: "json", MediaType: MediaJSON, Data: []byte("{}")}
	got, err := Convert(a, "json", 1)
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	if string(got.Data) != "{}" {
		t.Errorf("Convert() changed data: %q", got.Data)
	}
}

func TestConvertRejects(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		target string
		substr string
	}{
		{"non-svg source", "json", "png", "only svg"},
		{"unknown target", "svg", "gif", "cannot convert svg to gif"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(Artifact{Format: tt.src}, tt.target, 1)
			if err == nil {
				t.Fatal("Convert() expected error")
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("Convert() error = %q, want substring %q", err, tt.substr)
			}
		})
	}
}

func TestToPNG(t *testing.T) {
	if _, err := exec.LookPath(Converter); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10" height="10"><rect width="10" height="10" fill="white"/></svg>`)
	png, err := ToPNG(svg, 1)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Errorf("ToPNG() did not return a PNG header")
	}
}
