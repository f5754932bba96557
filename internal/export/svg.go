package export

import (
	"fmt"
	"strings"

	"github.com/bfarr/prism/internal/cube"
	"github.com/bfarr/prism/internal/hist"
)

// SVG renders one frame of the chain as a standalone corner-plot SVG:
// stepped density outlines on the diagonal, point clouds below it.
func SVG(c *cube.SampleCube, b *hist.Binning, truths []float64, frame, cell int) (string, error) {
	steps, _, dim := c.Shape()
	if frame < 0 || frame >= steps {
		return "", fmt.Errorf("frame %d out of range [0, %d)", frame, steps)
	}
	if err := c.ValidateTruths(truths); err != nil {
		return "", err
	}
	if cell < 40 {
		cell = 40
	}

	size := dim * cell
	pad := 4.0
	inner := float64(cell) - 2*pad

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, size, size, size, size))

	// x maps a data value into panel-local coordinates.
	toX := func(v float64, e hist.Extent) float64 {
		return pad + (v-e.Min)/e.Width()*inner
	}

	for row := 0; row < dim; row++ {
		ex := b.Extents[row]
		dens := hist.Density(c.ColumnCopy(frame, row), b.Edges[row], ex.Max)
		ymax := 1.1 * hist.Peak(dens)
		if ymax <= 0 {
			ymax = 1
		}
		toY := func(h float64) float64 {
			return pad + (1-h/ymax)*inner
		}

		sb.WriteString(fmt.Sprintf("<g transform=\"translate(%d,%d)\">\n", row*cell, row*cell))
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#cccccc"/>`+"\n",
			pad, pad, inner, inner))

		var path strings.Builder
		path.WriteString(fmt.Sprintf("M%.1f,%.1f", toX(b.Edges[row][0], ex), toY(0)))
		for i, h := range dens {
			left := b.Edges[row][i]
			right := ex.Max
			if i+1 < len(b.Edges[row]) {
				right = b.Edges[row][i+1]
			}
			path.WriteString(fmt.Sprintf(" L%.1f,%.1f L%.1f,%.1f", toX(left, ex), toY(h), toX(right, ex), toY(h)))
		}
		path.WriteString(fmt.Sprintf(" L%.1f,%.1f", toX(ex.Max, ex), toY(0)))
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#000000" stroke-width="1" d="%s"/>`+"\n", path.String()))

		if truths != nil {
			tx := toX(truths[row], ex)
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#4682b4"/>`+"\n",
				tx, pad, tx, pad+inner))
		}
		sb.WriteString("</g>\n")

		for col := 0; col < row; col++ {
			ecol := b.Extents[col]
			xs := c.ColumnCopy(frame, col)
			ys := c.ColumnCopy(frame, row)

			sb.WriteString(fmt.Sprintf("<g transform=\"translate(%d,%d)\">\n", col*cell, row*cell))
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#cccccc"/>`+"\n",
				pad, pad, inner, inner))

			for i := range xs {
				px := toX(xs[i], ecol)
				py := pad + (1-(ys[i]-ex.Min)/ex.Width())*inner
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1" fill="#000000"/>`+"\n", px, py))
			}

			if truths != nil {
				tx := toX(truths[col], ecol)
				ty := pad + (1-(truths[row]-ex.Min)/ex.Width())*inner
				sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#4682b4"/>`+"\n",
					tx, pad, tx, pad+inner))
				sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#4682b4"/>`+"\n",
					pad, ty, pad+inner, ty))
			}
			sb.WriteString("</g>\n")
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}
