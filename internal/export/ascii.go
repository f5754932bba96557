// Package export renders single corner-plot frames outside the
// animation pipeline: asciigraph/braille terminal previews and SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/bfarr/prism/internal/cube"
	"github.com/bfarr/prism/internal/hist"
	"github.com/bfarr/prism/internal/viz"
)

// Terminal renders one frame of the chain as text: an asciigraph
// density curve per parameter and a braille point cloud per parameter
// pair.
func Terminal(c *cube.SampleCube, b *hist.Binning, labels []string, frame, width int) (string, error) {
	steps, _, dim := c.Shape()
	if frame < 0 || frame >= steps {
		return "", fmt.Errorf("frame %d out of range [0, %d)", frame, steps)
	}
	if err := c.ValidateLabels(labels); err != nil {
		return "", err
	}
	if width < 20 {
		width = 20
	}

	name := func(d int) string {
		if labels != nil {
			return labels[d]
		}
		return fmt.Sprintf("p%d", d)
	}

	var sb strings.Builder

	for d := 0; d < dim; d++ {
		dens := hist.Density(c.ColumnCopy(frame, d), b.Edges[d], b.Extents[d].Max)
		graph := asciigraph.Plot(dens,
			asciigraph.Height(8),
			asciigraph.Width(width),
			asciigraph.Caption(fmt.Sprintf("%s (frame %d)", name(d), frame)),
		)
		sb.WriteString(graph)
		sb.WriteString("\n\n")
	}

	for row := 1; row < dim; row++ {
		for col := 0; col < row; col++ {
			canvas := viz.NewCanvas(width/2, 10)
			canvas.Plot(
				c.ColumnCopy(frame, col), c.ColumnCopy(frame, row),
				b.Extents[col].Min, b.Extents[col].Max,
				b.Extents[row].Min, b.Extents[row].Max,
			)
			sb.WriteString(canvas.Framed(fmt.Sprintf("%s vs %s", name(row), name(col))))
			sb.WriteByte('\n')
		}
	}

	return sb.String(), nil
}
