// Package plot renders the season Gini/correlation chart.
package plot

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Plot errors.
var (
	// ErrUnsupportedFormat is returned for output paths without a known image extension.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrNoData is returned when series are empty or have mismatched lengths.
	ErrNoData = errors.New("no chart data")
)

// Format is an output image encoding.
type Format string

// Supported formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
)

// Chart labels.
const (
	XAxisName           = "Season"
	GiniAxisName        = "Gini Coefficient"
	CorrelationAxisName = "Payroll-Win% Correlation"
)

// giniPadding is the fraction of the Gini data range added above and below.
const giniPadding = 0.03

// Series colors.
var (
	giniColor        = drawing.Color{R: 255, G: 0, B: 0, A: 255}
	correlationColor = drawing.Color{R: 0, G: 179, B: 179, A: 255}
)

// Options controls figure geometry.
type Options struct {
	Title    string
	WidthIn  float64 // inches
	HeightIn float64 // inches
	DPI      float64
}

// DefaultOptions returns a 6.5 x 5.5 inch canvas at 150 DPI.
func DefaultOptions() Options {
	return Options{
		WidthIn:  6.5,
		HeightIn: 5.5,
		DPI:      150,
	}
}

// Figure is a two-axis line chart of Gini (left) and correlation (right) by season.
// A Figure owns its chart state; nothing is shared between figures.
type Figure struct {
	graph chart.Chart
}

// NewFigure builds a figure from parallel season, Gini and correlation series.
func NewFigure(seasons, gini, correlation []float64, opts Options) (*Figure, error) {
	if len(seasons) == 0 || len(seasons) != len(gini) || len(seasons) != len(correlation) {
		return nil, fmt.Errorf("%w: %d seasons, %d gini, %d correlation values",
			ErrNoData, len(seasons), len(gini), len(correlation))
	}
	if opts.DPI <= 0 || opts.WidthIn <= 0 || opts.HeightIn <= 0 {
		defaults := DefaultOptions()
		opts.WidthIn, opts.HeightIn, opts.DPI = defaults.WidthIn, defaults.HeightIn, defaults.DPI
	}

	minSeason, maxSeason := bounds(seasons)
	giniMin, giniMax := paddedRange(gini, giniPadding)

	f := &Figure{}
	f.graph = chart.Chart{
		Title:  opts.Title,
		Width:  int(math.Round(opts.WidthIn * opts.DPI)),
		Height: int(math.Round(opts.HeightIn * opts.DPI)),
		DPI:    opts.DPI,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:           XAxisName,
			ValueFormatter: chart.IntValueFormatter,
			Range:          &chart.ContinuousRange{Min: minSeason, Max: maxSeason},
			TickStyle:      chart.Style{TextRotationDegrees: 45},
		},
		YAxis: chart.YAxis{
			Name:  GiniAxisName,
			Range: &chart.ContinuousRange{Min: giniMin, Max: giniMax},
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.3f")
			},
		},
		YAxisSecondary: chart.YAxis{
			Name:  CorrelationAxisName,
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.1f")
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    GiniAxisName,
				YAxis:   chart.YAxisPrimary,
				Style:   chart.Style{StrokeColor: giniColor, StrokeWidth: 2},
				XValues: seasons,
				YValues: gini,
			},
			chart.ContinuousSeries{
				Name:    CorrelationAxisName,
				YAxis:   chart.YAxisSecondary,
				Style:   chart.Style{StrokeColor: correlationColor, StrokeWidth: 2},
				XValues: seasons,
				YValues: correlation,
			},
		},
	}
	f.graph.Elements = []chart.Renderable{
		chart.Legend(&f.graph, chart.Style{FontSize: 6}),
	}

	return f, nil
}

// Size returns the canvas size in pixels.
func (f *Figure) Size() (width, height int) {
	return f.graph.Width, f.graph.Height
}

// GiniRange returns the left axis range.
func (f *Figure) GiniRange() (lo, hi float64) {
	return f.graph.YAxis.Range.GetMin(), f.graph.YAxis.Range.GetMax()
}

// Render encodes the figure to w.
func (f *Figure) Render(w io.Writer, format Format) error {
	switch format {
	case FormatPNG:
		return f.graph.Render(chart.PNG, w)
	case FormatSVG:
		return f.graph.Render(chart.SVG, w)
	case FormatJPEG:
		var buf bytes.Buffer
		if err := f.graph.Render(chart.PNG, &buf); err != nil {
			return err
		}
		img, err := png.Decode(&buf)
		if err != nil {
			return fmt.Errorf("decode rendered chart: %w", err)
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save renders the figure in the format implied by path's extension and writes it.
// Rendering completes in memory before the file is created.
func (f *Figure) Save(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := f.Render(&buf, format); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer out.Close()

	if _, err := buf.WriteTo(out); err != nil {
		return fmt.Errorf("write chart file: %w", err)
	}
	return out.Close()
}

// FormatFromPath maps a file extension to an output format.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// bounds returns the min and max of values.
func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// paddedRange widens the data range by frac of its span on each side.
// A flat series gets a fixed +/-0.01 so the axis is never degenerate.
func paddedRange(values []float64, frac float64) (lo, hi float64) {
	lo, hi = bounds(values)
	pad := (hi - lo) * frac
	if pad == 0 {
		pad = 0.01
	}
	return lo - pad, hi + pad
}
