package models

import (
	"regexp"
	"strconv"
	"strings"
)

type Trend string

const (
	TrendNone      Trend = ""
	TrendImproved  Trend = "📈"
	TrendWorsened  Trend = "📉"
	TrendUnchanged Trend = "🔁"
)

var channelNamePattern = regexp.MustCompile(`^(.+)-rank-(\d+)$`)

// ChannelNameState is the decoded form of "<prefix>-rank-<int>[ <glyph>]".
type ChannelNameState struct {
	Prefix string
	Rank   int
	Trend  Trend
}

func (s ChannelNameState) String() string {
	return FormatChannelName(s.Prefix, s.Rank, s.Trend)
}

func FormatChannelName(prefix string, rank int, trend Trend) string {
	name := prefix + "-rank-" + strconv.Itoa(rank)
	if trend != TrendNone {
		name += " " + string(trend)
	}
	return name
}

// ParseChannelName recovers the previous rank from a channel name. The chat service
// slugifies spaces into dashes, so "-📈" and " 📈" are both accepted. Names that do
// not follow the grammar return ok == false.
func ParseChannelName(name string) (ChannelNameState, bool) {
	state := ChannelNameState{}
	trimmed := strings.TrimSpace(name)
	for _, glyph := range []Trend{TrendImproved, TrendWorsened, TrendUnchanged} {
		if strings.HasSuffix(trimmed, string(glyph)) {
			state.Trend = glyph
			trimmed = strings.TrimSuffix(trimmed, string(glyph))
			break
		}
	}
	trimmed = strings.TrimRight(strings.TrimSpace(trimmed), "-")

	match := channelNamePattern.FindStringSubmatch(trimmed)
	if match == nil {
		return ChannelNameState{}, false
	}
	rank, err := strconv.Atoi(match[2])
	if err != nil {
		return ChannelNameState{}, false
	}
	state.Prefix = match[1]
	state.Rank = rank
	return state, true
}
