package corner

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const axisFontSize = 7.0

// Render rasterizes the grid's current state into a single RGBA frame.
// Each panel is drawn as its own chart and composited into a
// (dim*PanelSize) square image; axis labels appear only on the outer
// edges of the grid.
func (g *Grid) Render() (image.Image, error) {
	stroke, err := parseColor(g.style.Color)
	if err != nil {
		return nil, err
	}
	truthStroke, err := parseColor(g.style.TruthColor)
	if err != nil {
		return nil, err
	}

	cell := g.style.PanelSize
	out := image.NewRGBA(image.Rect(0, 0, g.dim*cell, g.dim*cell))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for row := 0; row < g.dim; row++ {
		ch := g.histChart(row, stroke, truthStroke)
		if err := g.composite(out, ch, row, row); err != nil {
			return nil, fmt.Errorf("histogram panel %d: %w", row, err)
		}

		for col := 0; col < row; col++ {
			ch := g.scatterChart(row, col, stroke, truthStroke)
			if err := g.composite(out, ch, row, col); err != nil {
				return nil, fmt.Errorf("scatter panel (%d, %d): %w", row, col, err)
			}
		}
	}

	return out, nil
}

func (g *Grid) composite(dst *image.RGBA, ch chart.Chart, row, col int) error {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return err
	}
	cell := g.style.PanelSize
	r := image.Rect(col*cell, row*cell, (col+1)*cell, (row+1)*cell)
	draw.Draw(dst, r, img, image.Point{}, draw.Src)
	return nil
}

func (g *Grid) histChart(d int, stroke, truthStroke drawing.Color) chart.Chart {
	p := g.diag[d]

	histStyle := chart.Style{
		StrokeColor: stroke,
		StrokeWidth: 1.0,
	}
	if g.style.Hist == HistBar {
		histStyle.FillColor = stroke.WithAlpha(64)
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			XValues: stepX(p.bars),
			YValues: stepY(p.bars),
			Style:   histStyle,
		},
	}

	ylim := p.ylim
	if ylim <= 0 {
		ylim = 1
	}
	if p.hasTruth {
		series = append(series, vline(p.truth, 0, ylim, truthStroke))
	}

	return chart.Chart{
		Width:  g.style.PanelSize,
		Height: g.style.PanelSize,
		Background: chart.Style{
			Padding: chart.Box{Top: 4, Left: 4, Right: 4, Bottom: 4},
		},
		XAxis: g.xAxis(d, d),
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: 0, Max: ylim},
		},
		Series: series,
	}
}

func (g *Grid) scatterChart(row, col int, stroke, truthStroke drawing.Color) chart.Chart {
	p := g.lower[row][col]

	xs, ys := p.x, p.y
	if len(xs) == 1 {
		// go-chart refuses to size a one-point series.
		xs = []float64{xs[0], xs[0]}
		ys = []float64{ys[0], ys[0]}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotColor:    stroke,
				DotWidth:    g.style.MarkerSize,
			},
		},
	}

	if g.diag[col].hasTruth {
		series = append(series, vline(g.diag[col].truth, p.ylim.Min, p.ylim.Max, truthStroke))
	}
	if g.diag[row].hasTruth {
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{p.xlim.Min, p.xlim.Max},
			YValues: []float64{g.diag[row].truth, g.diag[row].truth},
			Style:   chart.Style{StrokeColor: truthStroke, StrokeWidth: 1.0},
		})
	}

	return chart.Chart{
		Width:  g.style.PanelSize,
		Height: g.style.PanelSize,
		Background: chart.Style{
			Padding: chart.Box{Top: 4, Left: 4, Right: 4, Bottom: 4},
		},
		XAxis:  g.xAxis(row, col),
		YAxis:  g.yAxis(row, col),
		Series: series,
	}
}

func (g *Grid) xAxis(row, col int) chart.XAxis {
	ax := chart.XAxis{
		Style: chart.Hidden(),
		Range: &chart.ContinuousRange{
			Min: g.binning.Extents[col].Min,
			Max: g.binning.Extents[col].Max,
		},
	}
	if row == g.dim-1 {
		ax.Style = chart.Style{FontSize: axisFontSize}
		ax.Name = g.diag[col].label
		ax.NameStyle = chart.Style{FontSize: axisFontSize}
	}
	return ax
}

func (g *Grid) yAxis(row, col int) chart.YAxis {
	ax := chart.YAxis{
		Style: chart.Hidden(),
		Range: &chart.ContinuousRange{
			Min: g.binning.Extents[row].Min,
			Max: g.binning.Extents[row].Max,
		},
	}
	if col == 0 {
		ax.Style = chart.Style{FontSize: axisFontSize}
		ax.Name = g.diag[row].label
		ax.NameStyle = chart.Style{FontSize: axisFontSize}
	}
	return ax
}

func vline(x, y0, y1 float64, stroke drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		XValues: []float64{x, x},
		YValues: []float64{y0, y1},
		Style:   chart.Style{StrokeColor: stroke, StrokeWidth: 1.0},
	}
}

// stepX and stepY trace the stepped outline of a histogram: up from
// zero at the first left edge, across each bin at its height, back to
// zero at the closing boundary.
func stepX(bars []Bar) []float64 {
	if len(bars) == 0 {
		return []float64{0, 1}
	}
	xs := make([]float64, 0, 2*len(bars)+2)
	xs = append(xs, bars[0].Left)
	for _, b := range bars {
		xs = append(xs, b.Left, b.Right)
	}
	xs = append(xs, bars[len(bars)-1].Right)
	return xs
}

func stepY(bars []Bar) []float64 {
	if len(bars) == 0 {
		return []float64{0, 0}
	}
	ys := make([]float64, 0, 2*len(bars)+2)
	ys = append(ys, 0)
	for _, b := range bars {
		ys = append(ys, b.Height, b.Height)
	}
	ys = append(ys, 0)
	return ys
}
