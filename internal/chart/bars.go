// internal/chart/bars.go
package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// bars is a plot.Plotter drawing filled bars centered on X with a width in
// data units. plotter.BarChart sizes bars in canvas units, which cannot
// express a cluster width relative to the axis.
type bars struct {
	xys   plotter.XYs
	width float64
	color color.Color
}

var (
	_ plot.Plotter     = (*bars)(nil)
	_ plot.DataRanger  = (*bars)(nil)
	_ plot.Thumbnailer = (*bars)(nil)
)

func (b *bars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	half := b.width / 2
	for _, xy := range b.xys {
		x0, x1 := trX(xy.X-half), trX(xy.X+half)
		y0, y1 := trY(0), trY(xy.Y)
		pts := []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		c.FillPolygon(b.color, c.ClipPolygonXY(pts))
	}
}

func (b *bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(b.xys) == 0 {
		return 0, 0, 0, 0
	}
	xmin, xmax = b.xys[0].X-b.width/2, b.xys[0].X+b.width/2
	for _, xy := range b.xys {
		xmin = min(xmin, xy.X-b.width/2)
		xmax = max(xmax, xy.X+b.width/2)
		ymax = max(ymax, xy.Y)
	}
	return xmin, xmax, 0, ymax
}

// Thumbnail draws the legend swatch.
func (b *bars) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Min.X, Y: c.Max.Y},
	}
	c.FillPolygon(b.color, pts)
}
