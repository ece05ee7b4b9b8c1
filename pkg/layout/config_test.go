package layout

import (
	"errors"
	"math"
	"testing"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"", TopDown, false},
		{"top-down", TopDown, false},
		{"TB", TopDown, false},
		{"left-right", LeftRight, false},
		{" lr ", LeftRight, false},
		{"diagonal", TopDown, true},
	}
	for _, tt := range tests {
		got, err := ParseOrientation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOrientation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOrientation(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrientationText(t *testing.T) {
	var o Orientation
	if err := o.UnmarshalText([]byte("left-right")); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if o != LeftRight {
		t.Errorf("UnmarshalText = %v, want %v", o, LeftRight)
	}
	b, _ := o.MarshalText()
	if string(b) != "left-right" {
		t.Errorf("MarshalText = %q, want %q", b, "left-right")
	}
	if err := o.UnmarshalText([]byte("sideways")); err == nil {
		t.Error("UnmarshalText should reject unknown orientation")
	}
	if s := Orientation(9).String(); s != "Orientation(9)" {
		t.Errorf("String() = %q", s)
	}
}

func TestWithDefaults(t *testing.T) {
	if got := (Config{}).WithDefaults(); got != DefaultConfig() {
		t.Errorf("zero config = %+v, want %+v", got, DefaultConfig())
	}
	got := Config{NodeWidth: 10}.WithDefaults()
	if got.HorizontalGap != 0 {
		t.Errorf("explicit node width should keep zero gap, got %v", got.HorizontalGap)
	}
	if got.VerticalGap != DefaultVerticalGap {
		t.Errorf("VerticalGap = %v, want %v", got.VerticalGap, DefaultVerticalGap)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"zero", Config{}, false},
		{"negative width", Config{NodeWidth: -1}, true},
		{"nan gap", Config{HorizontalGap: math.NaN()}, true},
		{"inf vertical", Config{VerticalGap: math.Inf(1)}, true},
		{"bad orientation", Config{Orientation: 7}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}
