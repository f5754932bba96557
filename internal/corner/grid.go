// Package corner models a D x D corner-plot grid: 1D marginal
// histograms on the diagonal, pairwise scatter panels in the lower
// triangle, nothing above it. The grid is built once with fixed axis
// extents and bin edges, then mutated frame by frame.
package corner

import (
	"fmt"

	"github.com/bfarr/prism/internal/cube"
	"github.com/bfarr/prism/internal/hist"
)

// Bar is one drawn histogram bin.
type Bar struct {
	Left   float64
	Right  float64
	Height float64
}

type histPanel struct {
	xlim     hist.Extent
	edges    []float64
	ymax     float64 // pinned cap
	ylim     float64 // current upper y-limit
	bars     []Bar
	truth    float64
	hasTruth bool
	label    string
}

type scatterPanel struct {
	xlim hist.Extent
	ylim hist.Extent
	// x and y are allocated once at build time and overwritten in
	// place each frame, so the renderer always sees the same series.
	x []float64
	y []float64
}

// PreconditionError reports an update against a panel that was never
// built.
type PreconditionError struct {
	Row, Col int
}

func (e PreconditionError) Error() string {
	return fmt.Sprintf("precondition violation: panel (%d, %d) has no artists; grid was not built", e.Row, e.Col)
}

// Grid is the mutable axes grid for one animation. It is single-use:
// build once, then update with any frame index in any order.
type Grid struct {
	dim     int
	walkers int
	style   Style
	binning *hist.Binning
	diag    []*histPanel
	lower   [][]*scatterPanel // lower[row][col], col < row
}

// NewGrid builds the grid from the cube's first timestep, with axis
// extents and bin edges fixed for the lifetime of the animation.
func NewGrid(c *cube.SampleCube, b *hist.Binning, labels []string, truths []float64, style Style) (*Grid, error) {
	if err := style.validate(); err != nil {
		return nil, err
	}
	if err := c.ValidateLabels(labels); err != nil {
		return nil, err
	}
	if err := c.ValidateTruths(truths); err != nil {
		return nil, err
	}

	_, walkers, dim := c.Shape()
	g := &Grid{
		dim:     dim,
		walkers: walkers,
		style:   style,
		binning: b,
		diag:    make([]*histPanel, dim),
		lower:   make([][]*scatterPanel, dim),
	}

	for row := 0; row < dim; row++ {
		p := &histPanel{
			xlim:  b.Extents[row],
			edges: b.Edges[row],
			ymax:  b.YMax[row],
		}
		if labels != nil {
			p.label = labels[row]
		}
		if truths != nil {
			p.truth = truths[row]
			p.hasTruth = true
		}
		g.diag[row] = p

		g.lower[row] = make([]*scatterPanel, row)
		for col := 0; col < row; col++ {
			g.lower[row][col] = &scatterPanel{
				xlim: b.Extents[col],
				ylim: b.Extents[row],
				x:    make([]float64, walkers),
				y:    make([]float64, walkers),
			}
		}
	}

	if err := g.Update(0, c); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) Dim() int { return g.dim }

// Update redraws the grid for one frame. It is stateless across calls:
// every histogram is rebuilt from scratch on the fixed edges and every
// scatter series is overwritten in place, so repeated or out-of-order
// calls leave no residue from other frames.
func (g *Grid) Update(frame int, c *cube.SampleCube) error {
	steps, walkers, dim := c.Shape()
	if frame < 0 || frame >= steps {
		return fmt.Errorf("frame %d out of range [0, %d)", frame, steps)
	}
	if dim != g.dim || walkers != g.walkers {
		return cube.DimensionError{What: "cube parameters", Got: dim, Want: g.dim}
	}

	col := make([]float64, walkers)

	for d := 0; d < dim; d++ {
		p := g.diag[d]
		if p == nil {
			return PreconditionError{Row: d, Col: d}
		}
		c.Column(col, frame, d)

		var heights []float64
		if g.style.Density {
			heights = hist.Density(col, p.edges, p.xlim.Max)
		} else {
			counts := hist.Counts(col, p.edges, p.xlim.Max)
			heights = make([]float64, len(counts))
			for i, n := range counts {
				heights[i] = float64(n)
			}
		}

		// Drop every previously drawn bar before appending; the
		// x-limits and edges stay untouched.
		p.bars = p.bars[:0]
		for i, e := range p.edges {
			right := p.xlim.Max
			if i+1 < len(p.edges) {
				right = p.edges[i+1]
			}
			p.bars = append(p.bars, Bar{Left: e, Right: right, Height: heights[i]})
		}

		if g.style.PinYMax {
			p.ylim = p.ymax
		} else {
			p.ylim = hist.Peak(heights)
		}
	}

	for row := 1; row < dim; row++ {
		for colIdx := 0; colIdx < row; colIdx++ {
			p := g.lower[row][colIdx]
			if p == nil || len(p.x) == 0 {
				return PreconditionError{Row: row, Col: colIdx}
			}
			c.Column(p.x, frame, colIdx)
			c.Column(p.y, frame, row)
		}
	}

	return nil
}

// Bars exposes the current diagonal bars for one parameter.
func (g *Grid) Bars(d int) []Bar { return g.diag[d].bars }

// ScatterData exposes the current scatter series for panel (row, col).
func (g *Grid) ScatterData(row, col int) (x, y []float64) {
	p := g.lower[row][col]
	return p.x, p.y
}

// YLim exposes the current upper y-limit of a diagonal panel.
func (g *Grid) YLim(d int) float64 { return g.diag[d].ylim }
