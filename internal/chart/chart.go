// Package chart draws the price history of every connection and shows it on screen.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"railtracker/internal/model"
)

const (
	XAxisName   = "Date/Time Checked"
	LegendTitle = "Connections"
	TickLayout  = "02.01 15:04"
)

// Options controls the static parts of the chart.
type Options struct {
	Route    string
	Currency string
	Width    int
	Height   int
	Location *time.Location // tick labels; nil means UTC
}

// DefaultCurrency labels the price axis when neither the options nor the
// stored rows name a currency.
const DefaultCurrency = "EUR"

// DefaultOptions matches the collector's default route.
func DefaultOptions() Options {
	return Options{
		Route:  "Karlsruhe -> Munich",
		Width:  1200,
		Height: 600,
	}
}

// Title returns the chart heading for a journey date.
func (o Options) Title(journeyDate string) string {
	return fmt.Sprintf("Price Trend: %s (%s)", o.Route, journeyDate)
}

// YAxisName returns the price axis caption. A configured currency wins over
// the one recorded with the data.
func (o Options) YAxisName(dataCurrency string) string {
	cur := o.Currency
	if cur == "" {
		cur = dataCurrency
	}
	if cur == "" {
		cur = DefaultCurrency
	}
	return fmt.Sprintf("Price (%s)", cur)
}

// palette follows the usual ten-colour plotting cycle.
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

func seriesColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

// lineStyle draws a connected line with a dot on every observation.
func lineStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}

func gridStyle() gochart.Style {
	return gochart.Style{
		StrokeColor:     drawing.ColorFromHex("c8c8c8"),
		StrokeWidth:     0.5,
		StrokeDashArray: []float64{4, 3},
	}
}

// TickFormatter renders x values as DD.MM HH:MM in loc. Stored timestamps
// without an offset are read as UTC, so nil keeps them on their stored clock.
func TickFormatter(loc *time.Location) gochart.ValueFormatter {
	if loc == nil {
		loc = time.UTC
	}
	return func(v interface{}) string {
		switch t := v.(type) {
		case time.Time:
			return t.In(loc).Format(TickLayout)
		case float64:
			return gochart.TimeFromFloat64(t).In(loc).Format(TickLayout)
		case int64:
			return time.Unix(0, t).In(loc).Format(TickLayout)
		}
		return ""
	}
}

// Build lays out one time series per connection. Empty datasets are not
// expected here; the caller stops before rendering when there is no data.
func Build(ds *model.Dataset, opts Options) gochart.Chart {
	series := make([]gochart.Series, 0, len(ds.Series))
	for i, s := range ds.Series {
		series = append(series, gochart.TimeSeries{
			Name:    s.Label,
			Style:   lineStyle(seriesColor(i)),
			XValues: s.Times(),
			YValues: s.Prices(),
		})
	}

	xr, yr := dataRanges(ds)

	ch := gochart.Chart{
		Title:      opts.Title(ds.JourneyDate),
		TitleStyle: gochart.Style{FontSize: 14},
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 30, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:           XAxisName,
			ValueFormatter: TickFormatter(opts.Location),
			Range:          xr,
			TickStyle:      gochart.Style{TextRotationDegrees: 45.0},
			GridMajorStyle: gridStyle(),
			GridMinorStyle: gridStyle(),
		},
		YAxis: gochart.YAxis{
			Name:           opts.YAxisName(ds.Currency),
			Range:          yr,
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.2f", v) },
			GridMajorStyle: gridStyle(),
			GridMinorStyle: gridStyle(),
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{titledLegend(&ch, LegendTitle)}
	return ch
}

// dataRanges spans every point; a single instant or a flat price would give a
// zero-width range, which go-chart refuses to draw, so those are widened.
func dataRanges(ds *model.Dataset) (*gochart.ContinuousRange, *gochart.ContinuousRange) {
	var minT, maxT time.Time
	var minP, maxP float64
	first := true
	for _, s := range ds.Series {
		for _, p := range s.Points {
			if first {
				minT, maxT, minP, maxP = p.FetchedAt, p.FetchedAt, p.Price, p.Price
				first = false
				continue
			}
			if p.FetchedAt.Before(minT) {
				minT = p.FetchedAt
			}
			if p.FetchedAt.After(maxT) {
				maxT = p.FetchedAt
			}
			if p.Price < minP {
				minP = p.Price
			}
			if p.Price > maxP {
				maxP = p.Price
			}
		}
	}
	if !maxT.After(minT) {
		minT = minT.Add(-time.Hour)
		maxT = maxT.Add(time.Hour)
	}
	pad := (maxP - minP) * 0.05
	if pad == 0 {
		pad = 1
	}
	xr := &gochart.ContinuousRange{Min: gochart.TimeToFloat64(minT), Max: gochart.TimeToFloat64(maxT)}
	yr := &gochart.ContinuousRange{Min: minP - pad, Max: maxP + pad}
	return xr, yr
}

// RenderPNG draws ch into memory and decodes it for display.
func RenderPNG(ch gochart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, &RenderEnvironmentError{Op: "render chart", Err: err}
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, &RenderEnvironmentError{Op: "decode chart", Err: err}
	}
	return img, nil
}
