package models

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

type LeaderboardEntry struct {
	Name    string `json:"name"`
	TeamID  int64  `json:"team_id"`
	TeamTag string `json:"team_tag"`
	Country string `json:"country"`
	Rank    int    `json:"rank"`
}

// UnmarshalJSON tolerates numeric fields sent as strings and vice versa.
func (e *LeaderboardEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var err error
	if e.Name, err = cast.ToStringE(valueOrEmpty(raw["name"])); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if e.TeamID, err = cast.ToInt64E(valueOrZero(raw["team_id"])); err != nil {
		return fmt.Errorf("team_id: %w", err)
	}
	if e.TeamTag, err = cast.ToStringE(valueOrEmpty(raw["team_tag"])); err != nil {
		return fmt.Errorf("team_tag: %w", err)
	}
	if e.Country, err = cast.ToStringE(valueOrEmpty(raw["country"])); err != nil {
		return fmt.Errorf("country: %w", err)
	}
	rank, err := cast.ToIntE(valueOrZero(raw["rank"]))
	if err != nil {
		return fmt.Errorf("rank: %w", err)
	}
	e.Rank = rank
	return nil
}

func valueOrEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}

func valueOrZero(v any) any {
	if v == nil {
		return 0
	}
	return v
}

type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// Identity is the tuple a leaderboard entry must match exactly.
type Identity struct {
	PlayerID string
	Name     string
	TeamID   int64
	TeamTag  string
	Country  string
}

func (id Identity) Matches(e LeaderboardEntry) bool {
	return e.Name == id.Name && e.TeamID == id.TeamID && e.TeamTag == id.TeamTag && e.Country == id.Country
}
