package chart

import (
	"math"
	"path/filepath"
	"rankwatch/internal/models"
	"strings"
)

type Kind string

const (
	KindImage     Kind = "image"
	KindAnimation Kind = "animation"

	defaultDuration = 10
	zoomStep        = 25
	defaultMinRank  = 0
	defaultMaxRank  = 1000
)

// Options are the user-facing switches of one rendering.
type Options struct {
	Inverted        bool
	Detailed        bool
	Zoomed          bool
	Kind            Kind
	DurationSeconds int
	// Start and End are the raw YYYY-MM-DD filters, used only for naming.
	Start string
	End   string
}

func (o Options) duration() int {
	if o.DurationSeconds <= 0 {
		return defaultDuration
	}
	return o.DurationSeconds
}

// ZoomBounds snaps the rank interval outwards to multiples of 25. A max that already
// sits on a multiple still gains a full step.
func ZoomBounds(lowest, highest int) (int, int) {
	lo := zoomStep * int(math.Floor(float64(lowest)/zoomStep))
	hi := zoomStep * (int(math.Floor(float64(highest)/zoomStep)) + 1)
	return lo, hi
}

// YBounds is the plotted rank interval for series under opts.
func YBounds(series models.RankSeries, zoomed bool) (float64, float64) {
	if !zoomed {
		return defaultMinRank, defaultMaxRank
	}
	lowest, highest, ok := series.MinMax()
	if !ok {
		return defaultMinRank, defaultMaxRank
	}
	lo, hi := ZoomBounds(lowest, highest)
	return float64(lo), float64(hi)
}

func rangePart(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + "___" + end
	case start != "":
		return "FROM___" + start
	case end != "":
		return "UNTIL___" + end
	default:
		return "GENERAL"
	}
}

// OutputName encodes the range filter and every active flag, so two different
// option sets never share a file.
func OutputName(opts Options, ext string) string {
	var b strings.Builder
	b.WriteString(rangePart(opts.Start, opts.End))
	b.WriteString("___")
	if opts.Inverted {
		b.WriteString("inverted_")
	} else {
		b.WriteString("normal_")
	}
	if opts.Detailed {
		b.WriteString("detailed_")
	}
	if opts.Zoomed {
		b.WriteString("zoomed_in_")
	}
	b.WriteString("rank_evolution.")
	b.WriteString(ext)
	return b.String()
}

func OutputPath(dir string, opts Options, ext string) string {
	return filepath.Join(dir, OutputName(opts, ext))
}
