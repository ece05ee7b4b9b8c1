package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Default spacing, in user units (pixels for the SVG drawer).
const (
	DefaultNodeWidth     = 40.0
	DefaultHorizontalGap = 20.0
	DefaultVerticalGap   = 60.0
)

// ErrInvalidConfig is wrapped by [Config.Validate] failures.
var ErrInvalidConfig = errors.New("invalid layout config")

// Orientation selects how the two computed axes map onto the drawing.
type Orientation int

const (
	// TopDown places the root at the top; depth grows along +Y.
	TopDown Orientation = iota
	// LeftRight places the root at the left; depth grows along +X.
	LeftRight
)

// String returns the canonical name used by ParseOrientation.
func (o Orientation) String() string {
	switch o {
	case TopDown:
		return "top-down"
	case LeftRight:
		return "left-right"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation accepts "top-down" (or "tb") and "left-right" (or "lr"),
// case-insensitively. The empty string yields TopDown.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "top-down", "topdown", "tb":
		return TopDown, nil
	case "left-right", "leftright", "lr":
		return LeftRight, nil
	}
	return TopDown, fmt.Errorf("unknown orientation %q (must be 'top-down' or 'left-right')", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler so orientations can be
// read from TOML, YAML and JSON configuration.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Config controls the spacing of a layout. All nodes share the same
// NodeWidth footprint along the breadth axis.
type Config struct {
	NodeWidth     float64     `json:"node_width" toml:"node_width"`
	HorizontalGap float64     `json:"horizontal_gap" toml:"horizontal_gap"`
	VerticalGap   float64     `json:"vertical_gap" toml:"vertical_gap"`
	Orientation   Orientation `json:"orientation" toml:"orientation"`
}

// DefaultConfig returns the default spacing in top-down orientation.
func DefaultConfig() Config {
	return Config{
		NodeWidth:     DefaultNodeWidth,
		HorizontalGap: DefaultHorizontalGap,
		VerticalGap:   DefaultVerticalGap,
		Orientation:   TopDown,
	}
}

// WithDefaults returns a copy of c with zero spacing fields replaced by the
// defaults. A zero HorizontalGap is kept only if NodeWidth is also set, so
// Config{NodeWidth: 10} means "touching siblings" rather than "use defaults".
func (c Config) WithDefaults() Config {
	if c.NodeWidth == 0 {
		c.NodeWidth = DefaultNodeWidth
		if c.HorizontalGap == 0 {
			c.HorizontalGap = DefaultHorizontalGap
		}
	}
	if c.VerticalGap == 0 {
		c.VerticalGap = DefaultVerticalGap
	}
	return c
}

// Validate reports negative or non-finite spacing and unknown orientations.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"node_width", c.NodeWidth},
		{"horizontal_gap", c.HorizontalGap},
		{"vertical_gap", c.VerticalGap},
	} {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidConfig, f.name, f.v)
		}
	}
	if c.Orientation != TopDown && c.Orientation != LeftRight {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Orientation)
	}
	return nil
}
