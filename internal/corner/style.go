package corner

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// HistStyle selects how diagonal histograms are drawn.
type HistStyle int

const (
	// HistStep draws only the stepped outline.
	HistStep HistStyle = iota
	// HistBar fills under the stepped outline.
	HistBar
)

// Style enumerates the recognized rendering options. The zero value is
// not useful; start from DefaultStyle.
type Style struct {
	// Color is the hex color for histogram outlines and scatter dots.
	Color string
	// TruthColor is the hex color for truth reference lines.
	TruthColor string
	// MarkerSize is the scatter dot diameter in pixels.
	MarkerSize float64
	// Hist selects step or bar histograms.
	Hist HistStyle
	// Density normalizes diagonal histograms to unit area.
	Density bool
	// PinYMax pins diagonal y-limits to the precomputed maxima; when
	// false each frame's y-limit follows its own histogram peak.
	PinYMax bool
	// PanelSize is the edge length of one grid cell in pixels.
	PanelSize int
}

func DefaultStyle() Style {
	return Style{
		Color:      "#000000",
		TruthColor: "#4682b4",
		MarkerSize: 2.0,
		Hist:       HistStep,
		Density:    true,
		PinYMax:    true,
		PanelSize:  240,
	}
}

func (s Style) validate() error {
	if _, err := parseColor(s.Color); err != nil {
		return err
	}
	if _, err := parseColor(s.TruthColor); err != nil {
		return err
	}
	if s.MarkerSize <= 0 {
		return fmt.Errorf("marker size must be positive, got %g", s.MarkerSize)
	}
	if s.PanelSize < 32 {
		return fmt.Errorf("panel size must be at least 32px, got %d", s.PanelSize)
	}
	return nil
}

func parseColor(hex string) (drawing.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return drawing.Color{}, fmt.Errorf("bad color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}, nil
}
