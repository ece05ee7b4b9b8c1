package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	tests := []struct {
		name string
		in   Info
		want Info
	}{
		{
			"unstamped",
			Info{"dev", "none", "unknown"},
			Info{"v0.3.0", "abc123", "2026-01-02T03:04:05Z"},
		},
		{
			"stamped wins",
			Info{"v1.0.0", "deadbeef", "2026-10-01"},
			Info{"v1.0.0", "deadbeef", "2026-10-01"},
		},
	}
	for _, tt := range tests {
		if got := fill(tt.in, bi); got != tt.want {
			t.Errorf("%s: fill() = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestFillDevelModule(t *testing.T) {
	got := fill(Info{"dev", "none", "unknown"}, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if got.Version != "dev" {
		t.Errorf("Version = %q, want dev", got.Version)
	}
}

func TestTemplate(t *testing.T) {
	if tmpl := Template(); !strings.HasPrefix(tmpl, "{{.Name}} version: ") {
		t.Errorf("Template() = %q", tmpl)
	}
}
