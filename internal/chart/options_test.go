package chart

import (
	"path/filepath"
	"rankwatch/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestZoomBounds(t *testing.T) {
	lo, hi := ZoomBounds(132, 481)
	assert.Equal(t, 125, lo)
	assert.Equal(t, 500, hi)

	// a max already on a multiple still gets a full step of headroom
	lo, hi = ZoomBounds(100, 200)
	assert.Equal(t, 100, lo)
	assert.Equal(t, 225, hi)

	lo, hi = ZoomBounds(3, 7)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 25, hi)
}

func TestYBounds(t *testing.T) {
	series := models.RankSeries{
		{Timestamp: time.Unix(0, 0), Rank: 481},
		{Timestamp: time.Unix(60, 0), Rank: 132},
	}

	lo, hi := YBounds(series, false)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1000.0, hi)

	lo, hi = YBounds(series, true)
	assert.Equal(t, 125.0, lo)
	assert.Equal(t, 500.0, hi)

	lo, hi = YBounds(nil, true)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1000.0, hi)
}

func TestOutputName(t *testing.T) {
	cases := []struct {
		opts Options
		ext  string
		want string
	}{
		{Options{}, "png", "GENERAL___normal_rank_evolution.png"},
		{Options{Inverted: true, Detailed: true, Zoomed: true}, "png", "GENERAL___inverted_detailed_zoomed_in_rank_evolution.png"},
		{Options{Start: "2024-01-01", End: "2024-02-01"}, "gif", "2024-01-01___2024-02-01___normal_rank_evolution.gif"},
		{Options{Start: "2024-01-01", Zoomed: true}, "png", "FROM___2024-01-01___normal_zoomed_in_rank_evolution.png"},
		{Options{End: "2024-02-01", Inverted: true}, "gif", "UNTIL___2024-02-01___inverted_rank_evolution.gif"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, OutputName(c.opts, c.ext))
	}
}

func TestOutputName_DistinctPerFlagSet(t *testing.T) {
	seen := make(map[string]Options)
	for mask := 0; mask < 8; mask++ {
		opts := Options{Inverted: mask&1 != 0, Detailed: mask&2 != 0, Zoomed: mask&4 != 0}
		name := OutputName(opts, "png")
		_, dup := seen[name]
		assert.False(t, dup, "collision on %s", name)
		seen[name] = opts
	}
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("images", "GENERAL___normal_rank_evolution.png"), OutputPath("images", Options{}, "png"))
}

func TestOptionsDuration(t *testing.T) {
	assert.Equal(t, 10, Options{}.duration())
	assert.Equal(t, 4, Options{DurationSeconds: 4}.duration())
}
