package models

import (
	"sort"
	"time"
)

// RankSample is one observed leaderboard standing.
type RankSample struct {
	Timestamp time.Time `json:"timestamp"`
	Rank      int       `json:"rank"`
}

type RankSeries []RankSample

// Sort orders the series by timestamp, ascending. Samples sharing a timestamp keep
// their relative order.
func (rs RankSeries) Sort() {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Timestamp.Before(rs[j].Timestamp)
	})
}

// Sorted returns an ascending copy.
func (rs RankSeries) Sorted() RankSeries {
	out := make(RankSeries, len(rs))
	copy(out, rs)
	out.Sort()
	return out
}

// Between keeps samples inside [start, end]. A nil bound is open.
func (rs RankSeries) Between(start, end *time.Time) RankSeries {
	out := make(RankSeries, 0, len(rs))
	for _, s := range rs {
		if InRange(s.Timestamp, start, end) {
			out = append(out, s)
		}
	}
	return out
}

func InRange(t time.Time, start, end *time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && t.After(*end) {
		return false
	}
	return true
}

// MinMax returns the lowest and highest rank. ok is false on an empty series.
func (rs RankSeries) MinMax() (lowest, highest int, ok bool) {
	if len(rs) == 0 {
		return 0, 0, false
	}
	lowest, highest = rs[0].Rank, rs[0].Rank
	for _, s := range rs[1:] {
		lowest = min(lowest, s.Rank)
		highest = max(highest, s.Rank)
	}
	return lowest, highest, true
}

// Span is the distance between the first and last sample of an ascending series.
func (rs RankSeries) Span() time.Duration {
	if len(rs) < 2 {
		return 0
	}
	return rs[len(rs)-1].Timestamp.Sub(rs[0].Timestamp)
}

func (rs RankSeries) Last() (RankSample, bool) {
	if len(rs) == 0 {
		return RankSample{}, false
	}
	return rs[len(rs)-1], true
}
