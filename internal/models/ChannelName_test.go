package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChannelName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		ok     bool
		prefix string
		rank   int
		trend  Trend
	}{
		{"plain", "andrei-rank-120", true, "andrei", 120, TrendNone},
		{"improved with space", "andrei-rank-95 📈", true, "andrei", 95, TrendImproved},
		{"slugified worsened", "andrei-rank-120-📉", true, "andrei", 120, TrendWorsened},
		{"unchanged", "andrei-rank-100 🔁", true, "andrei", 100, TrendUnchanged},
		{"dashed prefix", "team-x-rank-7", true, "team-x", 7, TrendNone},
		{"empty", "", false, "", 0, TrendNone},
		{"general channel", "general", false, "", 0, TrendNone},
		{"no number", "andrei-rank-", false, "", 0, TrendNone},
		{"unknown glyph", "andrei-rank-5 🚀", false, "", 0, TrendNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, ok := ParseChannelName(tt.input)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.prefix, state.Prefix)
			assert.Equal(t, tt.rank, state.Rank)
			assert.Equal(t, tt.trend, state.Trend)
		})
	}
}

func TestFormatChannelName(t *testing.T) {
	assert.Equal(t, "andrei-rank-95 📈", FormatChannelName("andrei", 95, TrendImproved))
	assert.Equal(t, "andrei-rank-95", FormatChannelName("andrei", 95, TrendNone))
}

func TestChannelName_FormatParse(t *testing.T) {
	state := ChannelNameState{Prefix: "p", Rank: 321, Trend: TrendWorsened}
	parsed, ok := ParseChannelName(state.String())
	require.True(t, ok)
	assert.Equal(t, state, parsed)
}
