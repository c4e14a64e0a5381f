// Package chart renders the dashboard's bar charts as PNG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"bikeshare/internal/core"
)

const (
	barWidth   = 50
	barSpacing = 40
	minWidth   = 480
	height     = 480
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data to chart")

// Bar is one labelled bar.
type Bar struct {
	Label string
	Value int64
}

// SeasonBars maps season rows to bars labelled with the season name and total.
func SeasonBars(rows []core.SeasonSummary) []Bar {
	out := make([]Bar, len(rows))
	for i, r := range rows {
		out[i] = Bar{Label: fmt.Sprintf("%s %d", r.Season.Label(), r.Total), Value: r.Total}
	}
	return out
}

// MonthBars maps month rows to bars labelled with the short month name and total.
func MonthBars(rows []core.MonthSummary) []Bar {
	out := make([]Bar, len(rows))
	for i, r := range rows {
		out[i] = Bar{Label: fmt.Sprintf("%s %d", r.Month.Short(), r.Total), Value: r.Total}
	}
	return out
}

// Render draws bars as a PNG bar chart.
func Render(w io.Writer, title, yName string, bars []Bar) error {
	if len(bars) == 0 {
		return ErrNoData
	}

	var maxY int64
	values := make([]chart.Value, len(bars))
	for i, b := range bars {
		values[i] = chart.Value{
			Label: b.Label,
			Value: float64(b.Value),
			Style: chart.Style{
				FillColor:   palette[i%len(palette)],
				StrokeColor: palette[i%len(palette)],
			},
		}
		if b.Value > maxY {
			maxY = b.Value
		}
	}

	ch := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 20}},
		Width:      int(math.Max(minWidth, float64(len(bars)*(barWidth+barSpacing)+120))),
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis:      chart.Style{FontSize: 9},
		YAxis: chart.YAxis{
			Name:  yName,
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(maxY)},
		},
		Bars: values,
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %q: %w", title, err)
	}
	return nil
}

// axisMax leaves headroom above the tallest bar and never collapses to zero.
func axisMax(v int64) float64 {
	if v <= 0 {
		return 1
	}
	return float64(v + (v+9)/10)
}

// viridis-like sequence
var palette = []drawing.Color{
	drawing.ColorFromHex("440154"),
	drawing.ColorFromHex("472c7a"),
	drawing.ColorFromHex("3b518b"),
	drawing.ColorFromHex("2c718e"),
	drawing.ColorFromHex("21908d"),
	drawing.ColorFromHex("27ad81"),
	drawing.ColorFromHex("5cc863"),
	drawing.ColorFromHex("aadc32"),
	drawing.ColorFromHex("fde725"),
}
