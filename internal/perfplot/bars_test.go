package perfplot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"pgregory.net/rapid"
)

func TestNewXYBarsValidation(t *testing.T) {
	chk := require.New(t)

	_, err := NewXYBars([]float64{1, 2}, []float64{1})
	chk.ErrorContains(err, "differ in length")

	_, err = NewXYBars([]float64{math.NaN()}, []float64{1})
	chk.ErrorContains(err, "non-finite")

	_, err = NewXYBars([]float64{1}, []float64{math.Inf(1)})
	chk.ErrorContains(err, "non-finite")
}

func TestXYBarsEmptyRange(t *testing.T) {
	chk := require.New(t)
	bars, err := NewXYBars(nil, nil)
	chk.NoError(err)

	xmin, xmax, ymin, ymax := bars.DataRange()
	chk.Zero(xmin)
	chk.Zero(xmax)
	chk.Zero(ymin)
	chk.Zero(ymax)
}

func TestXYBarsDataRangeProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")
		xs := rapid.SliceOfN(rapid.Float64Range(-1e3, 1e3), n, n).Draw(t, "xs")
		ys := rapid.SliceOfN(rapid.Float64Range(-1e3, 1e3), n, n).Draw(t, "ys")

		bars, err := NewXYBars(xs, ys)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		xmin, xmax, ymin, ymax := bars.DataRange()
		if ymin > 0 || ymax < 0 {
			t.Fatalf("y range [%v, %v] excludes the bar base", ymin, ymax)
		}
		for i := range xs {
			if xs[i]-defaultBarWidth/2 < xmin || xs[i]+defaultBarWidth/2 > xmax {
				t.Fatalf("bar %d at %v outside x range [%v, %v]", i, xs[i], xmin, xmax)
			}
			if ys[i] < ymin || ys[i] > ymax {
				t.Fatalf("bar %d height %v outside y range [%v, %v]", i, ys[i], ymin, ymax)
			}
		}
	})
}

func TestXYBarsDraws(t *testing.T) {
	chk := require.New(t)
	bars, err := NewXYBars([]float64{0.5, 1.2, 1.2}, []float64{1, 4, 2})
	chk.NoError(err)

	p := plot.New()
	p.Add(bars)
	img := vgimg.New(4*vg.Inch, 3*vg.Inch)
	chk.NotPanics(func() { p.Draw(draw.New(img)) })
}
