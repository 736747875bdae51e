package perfplot

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// defaultBarWidth is the bar width in data units along X.
const defaultBarWidth = 0.8

// XYBars draws one bar per point, centred on X and rising from zero to Y.
// Unlike plotter.BarChart, which places bars at consecutive integer
// positions, the bars sit at arbitrary X values; duplicate X values overlap.
type XYBars struct {
	X, Y []float64

	// Width is the bar width in data units.
	Width float64

	Color color.Color
	draw.LineStyle
}

// NewXYBars returns bars at positions 'xs' with heights 'ys'.
func NewXYBars(xs, ys []float64) (*XYBars, error) {
	if len(xs) != len(ys) {
		return nil, errors.Errorf("bar positions and heights differ in length: %d != %d", len(xs), len(ys))
	}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) || math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			return nil, errors.Errorf("bar %d has non-finite value (%v, %v)", i, xs[i], ys[i])
		}
	}
	return &XYBars{
		X:         append([]float64(nil), xs...),
		Y:         append([]float64(nil), ys...),
		Width:     defaultBarWidth,
		Color:     color.RGBA{R: 31, G: 119, B: 180, A: 255},
		LineStyle: plotter.DefaultLineStyle,
	}, nil
}

// Plot implements the plot.Plotter interface.
func (b *XYBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	half := b.Width / 2

	for i := range b.X {
		x0, x1 := trX(b.X[i]-half), trX(b.X[i]+half)
		y0, y1 := trY(0), trY(b.Y[i])

		pts := []vg.Point{{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}}
		if poly := c.ClipPolygonXY(pts); len(poly) > 0 {
			c.FillPolygon(b.Color, poly)
		}
		outline := c.ClipLinesXY(append(pts, pts[0]))
		c.StrokeLines(b.LineStyle, outline...)
	}
}

// DataRange implements the plot.DataRanger interface. The Y range always
// includes zero, the base of every bar.
func (b *XYBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(b.X) == 0 {
		return 0, 0, 0, 0
	}
	half := b.Width / 2
	xmin = floats.Min(b.X) - half
	xmax = floats.Max(b.X) + half
	ymin = math.Min(0, floats.Min(b.Y))
	ymax = math.Max(0, floats.Max(b.Y))
	return xmin, xmax, ymin, ymax
}
