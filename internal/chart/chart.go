// internal/chart/chart.go

// Package chart renders percentile rows as PNG bar charts.
package chart

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/mwiater/benchpct/internal/group"
	"github.com/mwiater/benchpct/internal/reporterrors"
	"github.com/mwiater/benchpct/internal/stats"
)

const (
	percentileSuptitle = "Benchmark Comparison by Percentile"
	groupSuptitle      = "Benchmark Percentile Comparison"
)

// Options controls one Render call.
type Options struct {
	// Field is the measured field, used for the y axis label.
	Field string
	// Percentiles selects the panels (ByPercentile) or clusters (ByGroup).
	Percentiles []float64
	// Mode defaults to DefaultByPercentile when nil.
	Mode  Mode
	Style Style
}

// figure is a laid-out chart: its panels top to bottom and its size.
// legend entries, when present, are drawn in a strip right of the panels.
type figure struct {
	title  string
	width  vg.Length
	height vg.Length
	panels []*plot.Plot
	legend []legendEntry
}

type legendEntry struct {
	label string
	thumb plot.Thumbnailer
}

// Render draws rows into a PNG at path. groups is the partition of rows used
// for coloring (ByPercentile) or paneling (ByGroup); when empty it is derived
// with group.Classify. Empty input still produces a valid image.
func Render(path string, rows []stats.Row, groups []group.Group, opts Options) error {
	if err := opts.Style.validate(); err != nil {
		return err
	}
	if len(groups) == 0 {
		groups = group.Classify(rows)
	}
	mode := opts.Mode
	if mode == nil {
		mode = DefaultByPercentile()
	}

	var (
		fig *figure
		err error
	)
	switch m := mode.(type) {
	case ByPercentile:
		fig, err = byPercentile(m, rows, groups, opts)
	case ByGroup:
		fig, err = byGroup(m, groups, opts)
	default:
		return errors.WithStack(&reporterrors.ErrInvalidConfig{Field: "plot_mode", Value: mode, Message: "unknown mode"})
	}
	if err != nil {
		return err
	}
	return fig.save(path, opts.Style)
}

func byPercentile(m ByPercentile, rows []stats.Row, groups []group.Group, opts Options) (*figure, error) {
	pal, err := colors(opts.Style.GroupPalette, len(groups), opts.Style.BarAlpha)
	if err != nil {
		return nil, err
	}
	groupOf := make(map[string]int, len(rows))
	for gi, g := range groups {
		for _, r := range g.Rows {
			groupOf[r.Case] = gi
		}
	}

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = group.ShortName(r.Case)
	}
	ymax := scale(rows, opts.Percentiles, m.Headroom)
	labelFormat := fmt.Sprintf("%%.%df", opts.Style.LabelPrecision)

	fig := &figure{
		title:  percentileSuptitle,
		width:  vg.Length(math.Max(12, 0.8*float64(len(rows)))) * vg.Inch,
		height: vg.Length(math.Max(4*float64(len(opts.Percentiles)), 8)) * vg.Inch,
	}

	for pi, p := range opts.Percentiles {
		pl := newPanel(fmt.Sprintf("P%.1f Percentile", p), opts.Field)
		series := make([]*bars, len(groups))
		for gi := range groups {
			series[gi] = &bars{width: 0.8, color: pal[gi]}
		}
		var labels plotter.XYLabels
		for i, r := range rows {
			v, ok := r.Value(p)
			if !ok {
				continue
			}
			s := series[groupOf[r.Case]]
			s.xys = append(s.xys, plotter.XY{X: float64(i), Y: v})
			labels.XYs = append(labels.XYs, plotter.XY{X: float64(i), Y: v + ymax*0.005})
			labels.Labels = append(labels.Labels, fmt.Sprintf(labelFormat, v))
		}
		for gi, s := range series {
			pl.Add(s)
			if pi == 0 && len(groups) > 1 {
				fig.legend = append(fig.legend, legendEntry{label: groups[gi].Key, thumb: s})
			}
		}
		if err := addLabels(pl, labels); err != nil {
			return nil, err
		}

		setTicks(pl, names, true)
		pl.X.Min, pl.X.Max = -0.5, math.Max(float64(len(rows))-0.5, 0.5)
		pl.Y.Min, pl.Y.Max = 0, ymax
		fig.panels = append(fig.panels, pl)
	}
	return fig, nil
}

func byGroup(m ByGroup, groups []group.Group, opts Options) (*figure, error) {
	fig := &figure{
		title:  groupSuptitle,
		width:  14 * vg.Inch,
		height: vg.Length(math.Max(3.5*float64(len(groups)), 6)) * vg.Inch,
	}

	ticks := make([]string, len(opts.Percentiles))
	for i, p := range opts.Percentiles {
		ticks[i] = fmt.Sprintf("P%.1f", p)
	}

	for _, g := range groups {
		n := len(g.Rows)
		pal, err := colors(opts.Style.CasePalette, n, opts.Style.BarAlpha)
		if err != nil {
			return nil, err
		}
		width := math.Min(m.ClusterFraction/float64(n), m.MaxBarWidth)
		// Clusters sit at 0..len(percentiles)-1; bar j is shifted so the
		// cluster is centered on its tick.
		shift := width * float64(n-1) / 2

		pl := newPanel("Benchmark Percentiles: "+g.Key, opts.Field)
		for j, r := range g.Rows {
			s := &bars{width: width, color: pal[j]}
			for pi, p := range opts.Percentiles {
				if v, ok := r.Value(p); ok {
					s.xys = append(s.xys, plotter.XY{X: float64(pi) + float64(j)*width - shift, Y: v})
				}
			}
			pl.Add(s)
			pl.Legend.Add(r.Case, s)
		}

		setTicks(pl, ticks, false)
		pl.X.Min, pl.X.Max = -0.5, math.Max(float64(len(opts.Percentiles))-0.5, 0.5)
		pl.Y.Min, pl.Y.Max = 0, scale(g.Rows, opts.Percentiles, m.Headroom)
		fig.panels = append(fig.panels, pl)
	}
	return fig, nil
}

// scale is max(values)*headroom, or 1 when there is nothing positive to show.
func scale(rows []stats.Row, percentiles []float64, h float64) float64 {
	top := 0.0
	for _, r := range rows {
		for _, p := range percentiles {
			if v, ok := r.Value(p); ok {
				top = math.Max(top, v)
			}
		}
	}
	if top <= 0 {
		return 1
	}
	return top * headroom(h)
}

func newPanel(title, field string) *plot.Plot {
	pl := plot.New()
	pl.Title.Text = title
	pl.Y.Label.Text = field + " (ns)"
	pl.Legend.Top = true
	pl.Legend.Padding = vg.Millimeter
	pl.Add(plotter.NewGrid())
	return pl
}

func setTicks(pl *plot.Plot, names []string, rotate bool) {
	ticks := make([]plot.Tick, len(names))
	for i, name := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	pl.X.Tick.Marker = plot.ConstantTicks(ticks)
	if rotate {
		pl.X.Tick.Label.Rotation = math.Pi / 4
		pl.X.Tick.Label.XAlign = text.XRight
		pl.X.Tick.Label.YAlign = text.YCenter
	}
}

func addLabels(pl *plot.Plot, xyl plotter.XYLabels) error {
	if len(xyl.XYs) == 0 {
		return nil
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return errors.Wrap(err, "value labels")
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YBottom
		labels.TextStyle[i].Font.Size = vg.Points(7)
	}
	pl.Add(labels)
	return nil
}

func (f *figure) save(path string, st Style) error {
	if len(f.panels) == 0 {
		f.panels = []*plot.Plot{emptyPanel()}
	}

	img := vgimg.NewWith(
		vgimg.UseWH(f.width, f.height),
		vgimg.UseDPI(st.DPI),
		vgimg.UseBackgroundColor(st.Background),
	)
	dc := draw.New(img)

	heading := plot.New().Title.TextStyle
	heading.Font.Size = vg.Points(16)
	heading.XAlign = text.XCenter
	heading.YAlign = text.YTop
	pad := vg.Points(8)
	dc.FillText(heading, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - pad}, f.title)
	body := draw.Crop(dc, 0, 0, 0, -(heading.Font.Size + 2*pad))
	body = f.drawLegend(body)

	grid := make([][]*plot.Plot, len(f.panels))
	for i, p := range f.panels {
		grid[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{
		Rows:      len(grid),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	canvases := plot.Align(grid, tiles, body)
	for i := range grid {
		grid[i][0].Draw(canvases[i][0])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WithStack(&reporterrors.ErrRender{Path: path, Err: err})
	}
	out, err := os.Create(path)
	if err != nil {
		return errors.WithStack(&reporterrors.ErrRender{Path: path, Err: err})
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(out); err != nil {
		_ = out.Close()
		return errors.WithStack(&reporterrors.ErrRender{Path: path, Err: err})
	}
	if err := out.Close(); err != nil {
		return errors.WithStack(&reporterrors.ErrRender{Path: path, Err: err})
	}
	return nil
}

// drawLegend draws the figure legend along the right edge of c, top aligned,
// and returns the canvas left for the panels.
func (f *figure) drawLegend(c draw.Canvas) draw.Canvas {
	if len(f.legend) == 0 {
		return c
	}
	lg := plot.New().Legend
	lg.Top = true
	lg.Left = true
	lg.Padding = vg.Millimeter

	for _, e := range f.legend {
		lg.Add(e.label, e.thumb)
	}
	w := lg.Rectangle(c).Size().X + 4*vg.Millimeter
	if limit := (c.Max.X - c.Min.X) / 3; w > limit {
		w = limit
	}
	lg.Draw(draw.Crop(c, (c.Max.X-c.Min.X)-w+2*vg.Millimeter, 0, 0, -4*vg.Millimeter))
	return draw.Crop(c, 0, -w, 0, 0)
}

func emptyPanel() *plot.Plot {
	pl := plot.New()
	pl.Title.Text = "No data"
	pl.X.Min, pl.X.Max = 0, 1
	pl.Y.Min, pl.Y.Max = 0, 1
	pl.HideAxes()
	return pl
}

// PanelCount reports how many panels Render draws for the given input.
func PanelCount(mode Mode, groups []group.Group, percentiles []float64) int {
	var n int
	switch mode.(type) {
	case ByGroup:
		n = len(groups)
	default:
		n = len(percentiles)
	}
	return max(n, 1)
}

