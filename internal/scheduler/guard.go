package scheduler

import (
	"rankwatch/internal/structures"
	"time"
)

// Location resolves schedule.timezone. Empty and "Local" mean the process zone.
func Location(conf *structures.Config) (*time.Location, error) {
	switch tz := conf.Schedule.Timezone; tz {
	case "", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(tz)
	}
}

// ShouldRun is false inside the quiet window [QuietFromHour, QuietUntilHour].
// Both ends are inclusive and the window may wrap past midnight.
func ShouldRun(now time.Time, conf *structures.Config) bool {
	if loc, err := Location(conf); err == nil {
		now = now.In(loc)
	}
	h := now.Hour()
	from, until := conf.Schedule.QuietFromHour, conf.Schedule.QuietUntilHour
	if from <= until {
		return h < from || h > until
	}
	return h > until && h < from
}
