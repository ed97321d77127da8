package models

import "time"

type Granularity int

const (
	GranularityDay Granularity = iota
	GranularityWeek
	GranularityMonth
)

func (g Granularity) String() string {
	switch g {
	case GranularityWeek:
		return "week"
	case GranularityMonth:
		return "month"
	default:
		return "day"
	}
}

// GranularityForSpan picks the bucket size used for extrema annotation.
func GranularityForSpan(span time.Duration) Granularity {
	days := int(span.Hours() / 24)
	switch {
	case days > 365:
		return GranularityMonth
	case days > 30:
		return GranularityWeek
	default:
		return GranularityDay
	}
}

// PeriodStart truncates t to the start of its calendar bucket. Weeks start on Monday.
func PeriodStart(t time.Time, g Granularity) time.Time {
	y, m, d := t.Date()
	switch g {
	case GranularityMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	case GranularityWeek:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
}

// PeriodExtrema holds the best (lowest) and worst (highest) sample of a bucket.
// On ties the earliest sample wins.
type PeriodExtrema struct {
	Start time.Time
	Count int
	Best  RankSample
	Worst RankSample
}

// BucketExtrema groups an ascending series by period and reports each bucket's extremes
// in chronological order.
func BucketExtrema(rs RankSeries, g Granularity) []PeriodExtrema {
	out := make([]PeriodExtrema, 0)
	index := make(map[time.Time]int)
	for _, s := range rs {
		start := PeriodStart(s.Timestamp, g)
		i, ok := index[start]
		if !ok {
			index[start] = len(out)
			out = append(out, PeriodExtrema{Start: start, Count: 1, Best: s, Worst: s})
			continue
		}
		p := &out[i]
		p.Count++
		if s.Rank < p.Best.Rank {
			p.Best = s
		}
		if s.Rank > p.Worst.Rank {
			p.Worst = s
		}
	}
	return out
}
