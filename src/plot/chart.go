// Package plot maps a long-form table onto a go-chart line chart: x = index,
// y = value, one colored series per distinct series name.
package plot

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/benchview/benchview/src/reshape"
)

// palette supplies the categorical color channel; it cycles when a file has
// more series than colors.
var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorCyan,
	chart.ColorAlternateGray,
}

func seriesStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
		DotWidth:    3,
		DotColor:    col,
	}
}

// Build assembles the chart definition for a long table. The title is a display
// label only. Width and height are in pixels.
func Build(l *reshape.Long, title string, width, height int) chart.Chart {
	series := []chart.Series{}
	minY := math.MaxFloat64
	maxY := -math.MaxFloat64

	for si, name := range l.SeriesNames() {
		var xs, ys []float64
		for i := range l.Series {
			if l.Series[i] != name || math.IsNaN(l.Value[i]) || math.IsNaN(l.Index[i]) {
				continue
			}
			xs = append(xs, l.Index[i])
			ys = append(ys, l.Value[i])
			if l.Value[i] < minY {
				minY = l.Value[i]
			}
			if l.Value[i] > maxY {
				maxY = l.Value[i]
			}
		}
		if len(xs) == 0 {
			continue
		}
		st := seriesStyle(palette[si%len(palette)])
		if len(xs) == 1 {
			// Pad to two X values; go-chart refuses a zero-width domain.
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
			st.DotWidth = 6
		}
		series = append(series, chart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: st})
	}

	var yRange *chart.ContinuousRange
	var yTicks []chart.Tick
	if minY != math.MaxFloat64 && maxY != -math.MaxFloat64 {
		nMin, nMax := NiceAxisBounds(minY, maxY)
		yRange = &chart.ContinuousRange{Min: nMin, Max: nMax}
		yTicks = NiceTicks(nMin, nMax, 6)
	}

	ch := chart.Chart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Name: "index"},
		YAxis:      chart.YAxis{Name: "value", Range: yRange, Ticks: yTicks},
		Series:     series,
		Width:      width,
		Height:     height,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}
