// internal/chart/style.go
package chart

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"

	"github.com/mwiater/benchpct/internal/reporterrors"
)

// Style holds the visual settings of a chart. It is passed to Render by
// value; nothing in this package keeps theme state between calls.
type Style struct {
	DPI            int
	Background     color.Color
	GroupPalette   string
	CasePalette    string
	BarAlpha       float64
	LabelPrecision int
}

// DefaultStyle returns the settings used when none are configured.
func DefaultStyle() Style {
	return Style{
		DPI:            200,
		Background:     color.White,
		GroupPalette:   "Set2",
		CasePalette:    "Paired",
		BarAlpha:       0.9,
		LabelPrecision: 1,
	}
}

func (s Style) validate() error {
	if s.DPI <= 0 {
		return errors.WithStack(&reporterrors.ErrInvalidConfig{Field: "dpi", Value: s.DPI, Message: "must be positive"})
	}
	if s.BarAlpha <= 0 || s.BarAlpha > 1 {
		return errors.WithStack(&reporterrors.ErrInvalidConfig{Field: "bar_alpha", Value: s.BarAlpha, Message: "must be in (0, 1]"})
	}
	if s.LabelPrecision < 0 {
		return errors.WithStack(&reporterrors.ErrInvalidConfig{Field: "label_precision", Value: s.LabelPrecision, Message: "must not be negative"})
	}
	return nil
}

// colors returns n colors from the named qualitative brewer palette, cycling
// when n exceeds the palette's largest variant.
func colors(name string, n int, alpha float64) ([]color.Color, error) {
	if n <= 0 {
		return nil, nil
	}
	size := max(n, 3)
	var (
		pal palette.Palette
		err error
	)
	for ; size >= 3; size-- {
		pal, err = brewer.GetPalette(brewer.TypeQualitative, name, size)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, errors.WithStack(&reporterrors.ErrInvalidConfig{Field: "palette", Value: name, Message: err.Error()})
	}

	base := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = withAlpha(base[i%len(base)], alpha)
	}
	return out, nil
}

func withAlpha(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(alpha*255 + 0.5)
	return n
}
