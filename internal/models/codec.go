package models

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const logLineLayout = "02/01/2006-15:04:05"

var logLinePattern = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4}-\d{2}:\d{2}:\d{2}) - Rank: (\d+)`)

// ParseLogLine decodes a "DD/MM/YYYY-HH:MM:SS - Rank: N" line. Anything else,
// including ordinary chat chatter, is reported with ok == false.
func ParseLogLine(line string) (RankSample, bool) {
	match := logLinePattern.FindStringSubmatch(line)
	if match == nil {
		return RankSample{}, false
	}
	ts, err := time.ParseInLocation(logLineLayout, match[1], time.Local)
	if err != nil {
		return RankSample{}, false
	}
	rank, err := strconv.Atoi(match[2])
	if err != nil {
		return RankSample{}, false
	}
	return RankSample{Timestamp: ts, Rank: rank}, true
}

// FormatLogLine is the inverse of ParseLogLine.
func FormatLogLine(t time.Time, rank int) string {
	return fmt.Sprintf("%s - Rank: %d", t.Format(logLineLayout), rank)
}
