package services

import (
	"rankwatch/internal/models"
	"rankwatch/internal/structures"
	"time"
)

const (
	chatHook = "https://chat.test/api/webhooks/1/chat"
	logHook  = "https://chat.test/api/webhooks/1/log"
)

func serviceConfig() *structures.Config {
	return &structures.Config{
		Discord: structures.DiscordConfig{
			BotToken:         "token",
			ChannelID:        "status-channel",
			HistoryChannelID: "log-channel",
			ChatWebhookURL:   chatHook,
			LogWebhookURL:    logHook,
			Mention:          "@everyone",
			PageSize:         3,
		},
		Identity: structures.IdentityConfig{
			Name:    "legacy ",
			TeamID:  9017851,
			TeamTag: "Plasma",
			Country: "ro",
		},
		Channel: structures.ChannelConfig{
			Prefix:      "andrei",
			DisplayName: "Andrei",
		},
	}
}

func ts(day, hour int) time.Time {
	return time.Date(2024, time.March, day, hour, 0, 0, 0, time.Local)
}

func ptr[T any](v T) *T { return &v }

// hourly builds one sample per hour starting at from.
func hourly(from time.Time, ranks ...int) models.RankSeries {
	out := make(models.RankSeries, len(ranks))
	for i, r := range ranks {
		out[i] = models.RankSample{Timestamp: from.Add(time.Duration(i) * time.Hour), Rank: r}
	}
	return out
}
