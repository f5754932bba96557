package viz

import (
	"strings"
	"testing"
)

func TestSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	if c.cells[0][0] != 0x2801 {
		t.Errorf("top-left dot = %U, want U+2801", c.cells[0][0])
	}
	c.Set(1, 3)
	if c.cells[0][0] != 0x2801|0x80 {
		t.Errorf("bottom-right dot not merged: %U", c.cells[0][0])
	}

	// Out of range is a no-op.
	c.Set(-1, 0)
	c.Set(100, 100)
}

func TestClear(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(2, 2)
	c.Clear()
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r > 0x2800 && r != '\n' }) {
		t.Error("clear left dots behind")
	}
}

func TestPlot_Corners(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Plot([]float64{0, 1}, []float64{0, 1}, 0, 1, 0, 1)

	// (0,0) maps to the bottom-left dot, (1,1) to the top-right.
	if c.cells[4][0] == 0x2800 {
		t.Error("bottom-left corner not set")
	}
	if c.cells[0][9] == 0x2800 {
		t.Error("top-right corner not set")
	}
}

func TestPlot_SkipsOutOfRange(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Plot([]float64{-5, 10}, []float64{0.5, 0.5}, 0, 1, 0, 1)
	for _, row := range c.cells {
		for _, cell := range row {
			if cell != 0x2800 {
				t.Fatal("out-of-range points were plotted")
			}
		}
	}
}

func TestFramed(t *testing.T) {
	c := NewCanvas(8, 2)
	out := c.Framed("p0 p1")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("framed output has %d lines, want 4", len(lines))
	}
	if !strings.Contains(lines[0], "p0 p1") {
		t.Errorf("title missing from border: %q", lines[0])
	}
}
