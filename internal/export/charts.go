package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/stats"
)

const (
	chartWidth  = 1200
	chartHeight = 700
)

// Bin is one histogram bucket covering [Low, High).
type Bin struct {
	Low, High float64
	Count     int
}

// Histogram buckets xs into Sturges' number of equal-width bins. The last bin
// is closed on the right.
func Histogram(xs []float64) []Bin {
	if len(xs) == 0 {
		return nil
	}
	lo, hi := floats.Min(xs), floats.Max(xs)
	if lo == hi {
		return []Bin{{Low: lo, High: hi, Count: len(xs)}}
	}
	k := int(math.Ceil(math.Log2(float64(len(xs))))) + 1
	width := (hi - lo) / float64(k)
	bins := make([]Bin, k)
	for i := range bins {
		bins[i].Low = lo + float64(i)*width
		bins[i].High = lo + float64(i+1)*width
	}
	for _, x := range xs {
		i := int((x - lo) / width)
		if i >= k {
			i = k - 1
		}
		bins[i].Count++
	}
	return bins
}

// HistogramPNG renders the histogram of xs as a bar chart.
func HistogramPNG(title string, xs []float64) ([]byte, error) {
	bins := Histogram(xs)
	if len(bins) == 0 {
		return nil, stats.ErrEmptySample
	}
	bars := make([]chart.Value, len(bins))
	maxCount := 0
	for i, b := range bins {
		bars[i] = chart.Value{
			Value: float64(b.Count),
			Label: fmt.Sprintf("%.4g-%.4g", b.Low, b.High),
		}
		maxCount = max(maxCount, b.Count)
	}

	graph := chart.BarChart{
		Title: title,
		Background: chart.Style{
			Padding:     chart.Box{Top: 40},
			FillColor:   drawing.ColorWhite,
			StrokeWidth: 1,
			StrokeColor: drawing.ColorFromHex("efefef"),
		},
		Width:        chartWidth,
		Height:       chartHeight,
		BarWidth:     max(10, (chartWidth-200)/len(bars)-10),
		Bars:         bars,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Name:  "Count",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
			ValueFormatter: func(v any) string {
				if vf, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", vf)
				}
				return ""
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render histogram: %w", err)
	}
	return buf.Bytes(), nil
}

// ScatterPNG renders y against x with the least-squares line when one can be
// fitted.
func ScatterPNG(title, xName, yName string, x, y []float64) ([]byte, error) {
	if len(x) == 0 {
		return nil, stats.ErrEmptySample
	}
	points := chart.ContinuousSeries{
		Name:    yName,
		XValues: x,
		YValues: y,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    4,
			DotColor:    drawing.ColorBlue,
		},
	}
	series := []chart.Series{points}
	if fit, err := stats.OLS(xName, x, y); err == nil {
		lo, hi := floats.Min(x), floats.Max(x)
		series = append(series, chart.ContinuousSeries{
			Name:    "OLS",
			XValues: []float64{lo, hi},
			YValues: []float64{fit.Predict(xName, lo), fit.Predict(xName, hi)},
			Style: chart.Style{
				StrokeColor: drawing.ColorRed,
				StrokeWidth: 2,
			},
		})
	}

	graph := chart.Chart{
		Title: title,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
			FillColor: drawing.ColorWhite,
		},
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: xName, Range: paddedRange(x)},
		YAxis:  chart.YAxis{Name: yName, Range: paddedRange(y)},
		Series: series,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render scatter: %w", err)
	}
	return buf.Bytes(), nil
}

// paddedRange widens a degenerate range so the renderer accepts it.
func paddedRange(xs []float64) *chart.ContinuousRange {
	lo, hi := floats.Min(xs), floats.Max(xs)
	if lo == hi {
		pad := math.Max(math.Abs(lo)*0.1, 1)
		lo, hi = lo-pad, hi+pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// Histogram renders a histogram PNG of a sample and returns the file path.
func (e *Exporter) Histogram(column string, xs []float64) (string, error) {
	png, err := HistogramPNG("Histogram of "+column, xs)
	if err != nil {
		return "", err
	}
	return e.write(KindHistogram, column, "png", png)
}

// Scatter renders a scatter PNG of two paired samples and returns the file
// path.
func (e *Exporter) Scatter(xName, yName string, x, y []float64) (string, error) {
	png, err := ScatterPNG(yName+" vs "+xName, xName, yName, x, y)
	if err != nil {
		return "", err
	}
	return e.write(KindScatter, xName+"_"+yName, "png", png)
}
