package chart

import (
	"bytes"
	"fmt"
	"rankwatch/internal/models"
	"strconv"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	axisDateLayout = "2006-01-02"
	markerWidth    = 5
)

var (
	lineColor  = drawing.ColorFromHex("1f77b4")
	edgeColor  = drawing.ColorFromHex("ff8c00")
	bestColor  = drawing.ColorGreen
	worstColor = drawing.ColorRed
)

// marker is a labelled point drawn on top of the rank line.
type marker struct {
	sample models.RankSample
	label  string
	color  drawing.Color
}

// frame is everything one rendered picture needs.
type frame struct {
	title   string
	width   int
	height  int
	visible models.RankSeries
	xMin    time.Time
	xMax    time.Time
	yMin    float64
	yMax    float64
	invert  bool
	markers []marker
}

// xBounds returns the time window of an ascending series, widened by an hour on each
// side when it holds a single instant.
func xBounds(series models.RankSeries) (time.Time, time.Time) {
	first, last := series[0].Timestamp, series[len(series)-1].Timestamp
	if !last.After(first) {
		return first.Add(-time.Hour), last.Add(time.Hour)
	}
	return first, last
}

func edgeMarkers(series models.RankSeries, layout string, color drawing.Color) []marker {
	first, last := series[0], series[len(series)-1]
	out := []marker{{sample: first, label: first.Timestamp.Format(layout), color: color}}
	if len(series) > 1 {
		out = append(out, marker{sample: last, label: last.Timestamp.Format(layout), color: color})
	}
	return out
}

// extremaMarkers labels the best and worst sample of every bucket holding at least
// minCount samples. A lone sample gets a single best marker.
func extremaMarkers(buckets []models.PeriodExtrema, minCount int) []marker {
	out := make([]marker, 0, 2*len(buckets))
	for _, b := range buckets {
		if b.Count < minCount {
			continue
		}
		out = append(out, marker{sample: b.Best, label: strconv.Itoa(b.Best.Rank), color: bestColor})
		if b.Count > 1 {
			out = append(out, marker{sample: b.Worst, label: strconv.Itoa(b.Worst.Rank), color: worstColor})
		}
	}
	return out
}

func (f frame) chart() gochart.Chart {
	xs := make([]time.Time, len(f.visible))
	ys := make([]float64, len(f.visible))
	for i, s := range f.visible {
		xs[i] = s.Timestamp
		ys[i] = float64(s.Rank)
	}

	series := []gochart.Series{
		gochart.TimeSeries{
			Name:    "Rank",
			Style:   gochart.Style{StrokeColor: lineColor, StrokeWidth: 2},
			XValues: xs,
			YValues: ys,
		},
	}

	if len(f.markers) > 0 {
		annotations := make([]gochart.Value2, 0, len(f.markers))
		for _, m := range f.markers {
			x := gochart.TimeToFloat64(m.sample.Timestamp)
			y := float64(m.sample.Rank)
			series = append(series, gochart.TimeSeries{
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					DotWidth:    markerWidth,
					DotColor:    m.color,
				},
				XValues: []time.Time{m.sample.Timestamp},
				YValues: []float64{y},
			})
			annotations = append(annotations, gochart.Value2{
				XValue: x,
				YValue: y,
				Label:  m.label,
				Style:  gochart.Style{FontColor: m.color, StrokeColor: m.color},
			})
		}
		series = append(series, gochart.AnnotationSeries{Annotations: annotations})
	}

	return gochart.Chart{
		Title:  f.title,
		Width:  f.width,
		Height: f.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:           "Date and Time",
			ValueFormatter: gochart.TimeValueFormatterWithFormat(axisDateLayout),
			Range: &gochart.ContinuousRange{
				Min: gochart.TimeToFloat64(f.xMin),
				Max: gochart.TimeToFloat64(f.xMax),
			},
			GridMajorStyle: gridStyle,
		},
		YAxis: gochart.YAxis{
			Name: "Rank",
			Range: &gochart.ContinuousRange{
				Min:        f.yMin,
				Max:        f.yMax,
				Descending: f.invert,
			},
			ValueFormatter: func(v interface{}) string {
				if n, ok := v.(float64); ok {
					return strconv.Itoa(int(n))
				}
				return ""
			},
			GridMajorStyle: gridStyle,
		},
		Series: series,
	}
}

var gridStyle = gochart.Style{StrokeColor: drawing.ColorFromHex("dddddd"), StrokeWidth: 1}

func (f frame) renderPNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.chart().Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return buf.Bytes(), nil
}
