package chart

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/mwiater/benchpct/internal/group"
	"github.com/mwiater/benchpct/internal/reporterrors"
	"github.com/mwiater/benchpct/internal/stats"
)

var pcts = []float64{50, 99}

func chartRows() []stats.Row {
	return []stats.Row{
		{Case: "femtolog_info_literal", Percentiles: pcts, Values: []float64{12, 30}},
		{Case: "femtolog_info_format", Percentiles: pcts, Values: []float64{18, 41}},
		{Case: "spdlog_info_literal", Percentiles: pcts, Values: []float64{35, 90}},
		{Case: "baseline", Percentiles: pcts, Values: []float64{1, 2}},
	}
}

// lowRes keeps test images small.
func lowRes() Style {
	st := DefaultStyle()
	st.DPI = 20
	return st
}

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRender_ByPercentile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "percentiles.png")
	rows := chartRows()

	err := Render(path, rows, group.Classify(rows), Options{Field: "real_time", Percentiles: pcts, Style: lowRes()})
	require.NoError(t, err)

	// 12in x 8in at 20 dpi.
	w, h := decodeSize(t, path)
	assert.InDelta(t, 240, w, 1)
	assert.InDelta(t, 160, h, 1)
}

func TestRender_ByPercentileWidensForManyCases(t *testing.T) {
	t.Parallel()
	var rows []stats.Row
	for i := 0; i < 20; i++ {
		rows = append(rows, stats.Row{Case: "case_" + string(rune('a'+i)), Percentiles: pcts, Values: []float64{float64(i), float64(2 * i)}})
	}
	path := filepath.Join(t.TempDir(), "wide.png")

	require.NoError(t, Render(path, rows, nil, Options{Field: "cpu_time", Percentiles: pcts, Style: lowRes()}))

	// max(12, 0.8*20) = 16in.
	w, _ := decodeSize(t, path)
	assert.InDelta(t, 320, w, 1)
}

func TestByPercentile_LegendSitsOutsidePanels(t *testing.T) {
	t.Parallel()
	rows := chartRows()
	groups := group.Classify(rows)

	fig, err := byPercentile(DefaultByPercentile(), rows, groups, Options{Field: "real_time", Percentiles: pcts, Style: lowRes()})
	require.NoError(t, err)
	var labels []string
	for _, e := range fig.legend {
		labels = append(labels, e.label)
	}
	assert.Equal(t, group.Keys(groups), labels)
	for _, pl := range fig.panels {
		assert.Zero(t, pl.Legend.Rectangle(draw.New(vgimg.New(4*vg.Inch, 3*vg.Inch))).Size().X, "panel %q carries a legend", pl.Title.Text)
	}

	single := rows[:2]
	fig, err = byPercentile(DefaultByPercentile(), single, group.Classify(single), Options{Field: "real_time", Percentiles: pcts, Style: lowRes()})
	require.NoError(t, err)
	assert.Empty(t, fig.legend)

	path := filepath.Join(t.TempDir(), "legend.png")
	require.NoError(t, Render(path, rows, groups, Options{Field: "real_time", Percentiles: pcts, Style: lowRes()}))
	w, h := decodeSize(t, path)
	assert.InDelta(t, 240, w, 1)
	assert.InDelta(t, 160, h, 1)
}

func TestRender_ByGroup(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "groups.png")
	rows := chartRows()
	groups := group.Classify(rows)
	require.Len(t, groups, 3)

	err := Render(path, rows, groups, Options{Field: "real_time", Percentiles: pcts, Mode: DefaultByGroup(), Style: lowRes()})
	require.NoError(t, err)

	// 14in x max(3.5*3, 6)in.
	w, h := decodeSize(t, path)
	assert.InDelta(t, 280, w, 1)
	assert.InDelta(t, 210, h, 1)
}

func TestRender_EmptyInputIsValidImage(t *testing.T) {
	t.Parallel()
	for _, mode := range []Mode{DefaultByPercentile(), DefaultByGroup()} {
		path := filepath.Join(t.TempDir(), ModeName(mode)+".png")
		require.NoError(t, Render(path, nil, nil, Options{Field: "real_time", Percentiles: pcts, Mode: mode, Style: lowRes()}))
		w, h := decodeSize(t, path)
		assert.Positive(t, w)
		assert.Positive(t, h)
	}
}

func TestRender_NoPercentiles(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "none.png")
	require.NoError(t, Render(path, chartRows(), nil, Options{Field: "real_time", Style: lowRes()}))
	_, _ = decodeSize(t, path)
}

func TestRender_UnwritablePath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := Render(filepath.Join(blocker, "chart.png"), chartRows(), nil, Options{Field: "real_time", Percentiles: pcts, Style: lowRes()})
	var renderErr *reporterrors.ErrRender
	require.True(t, errors.As(err, &renderErr), "got %v", err)
	assert.Equal(t, filepath.Join(blocker, "chart.png"), renderErr.Path)
}

func TestRender_InvalidStyle(t *testing.T) {
	t.Parallel()
	st := lowRes()
	st.DPI = 0
	err := Render(filepath.Join(t.TempDir(), "x.png"), nil, nil, Options{Style: st})
	var cfgErr *reporterrors.ErrInvalidConfig
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "dpi", cfgErr.Field)

	st = lowRes()
	st.GroupPalette = "NoSuchPalette"
	err = Render(filepath.Join(t.TempDir(), "x.png"), chartRows(), nil, Options{Percentiles: pcts, Style: st})
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "palette", cfgErr.Field)
}

func TestScale(t *testing.T) {
	rows := chartRows()
	assert.InDelta(t, 90*1.15, scale(rows, pcts, 1.15), 1e-9)
	assert.InDelta(t, 35*1.1, scale(rows, []float64{50}, 1.1), 1e-9)
	assert.Equal(t, 1.0, scale(nil, pcts, 1.15))
	assert.Equal(t, 1.0, scale(rows, nil, 1.15))
}

func TestColors_CyclesPastPaletteSize(t *testing.T) {
	cs, err := colors("Set2", 10, 1)
	require.NoError(t, err)
	require.Len(t, cs, 10)
	assert.Equal(t, cs[0], cs[8])

	cs, err = colors("Paired", 2, 1)
	require.NoError(t, err)
	assert.Len(t, cs, 2)

	cs, err = colors("Set2", 0, 1)
	require.NoError(t, err)
	assert.Empty(t, cs)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("group")
	require.NoError(t, err)
	assert.Equal(t, DefaultByGroup(), m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, DefaultByPercentile(), m)

	_, err = ParseMode("pie")
	var cfgErr *reporterrors.ErrInvalidConfig
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "plot_mode", cfgErr.Field)
}

func TestPanelCount(t *testing.T) {
	groups := group.Classify(chartRows())
	assert.Equal(t, 2, PanelCount(DefaultByPercentile(), groups, pcts))
	assert.Equal(t, 3, PanelCount(DefaultByGroup(), groups, pcts))
	assert.Equal(t, 1, PanelCount(DefaultByGroup(), nil, pcts))
}
