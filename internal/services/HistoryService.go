package services

import (
	"context"
	"fmt"
	"rankwatch/internal/models"
	"rankwatch/internal/providers"
	"rankwatch/internal/structures"
	"time"
)

// HistoryQuery bounds a history walk. Nil fields are unbounded.
type HistoryQuery struct {
	Start *time.Time
	End   *time.Time
	// ResumeAfter is the newest already backed-up timestamp; the walk stops at it.
	ResumeAfter *time.Time
}

type HistoryServiceInterface interface {
	// Collect walks the log channel from newest to oldest and returns matching
	// samples, newest first.
	Collect(ctx context.Context, q HistoryQuery) (models.RankSeries, error)
}

type HistoryService struct {
	channelID string
	pageSize  int
	chat      providers.ChatProviderInterface
	metrics   providers.MetricsProviderInterface
	logger    providers.Logger
}

func NewHistoryService(conf *structures.Config, chat providers.ChatProviderInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) HistoryServiceInterface {
	return &HistoryService{
		channelID: conf.HistoryChannel(),
		pageSize:  conf.Discord.PageSize,
		chat:      chat,
		metrics:   metrics,
		logger:    logger,
	}
}

func (hs *HistoryService) Collect(ctx context.Context, q HistoryQuery) (models.RankSeries, error) {
	var (
		collected models.RankSeries
		cursor    string
		pages     int
	)

	for {
		page, err := hs.chat.MessagesBefore(ctx, hs.channelID, cursor, hs.pageSize)
		if err != nil {
			return nil, fmt.Errorf("history page %d: %w", pages+1, err)
		}
		pages++
		hs.metrics.IncHistoryPages()
		hs.logger.Debugf(providers.TypeHistory, "Page %d: %d messages before %q", pages, len(page), cursor)

		if len(page) == 0 {
			break
		}

		var (
			oldest    *time.Time
			caughtUp bool
		)
		for _, msg := range page {
			sample, ok := models.ParseLogLine(msg.Content)
			if !ok {
				continue
			}
			if q.ResumeAfter != nil && !sample.Timestamp.After(*q.ResumeAfter) {
				caughtUp = true
				break
			}
			if oldest == nil || sample.Timestamp.Before(*oldest) {
				ts := sample.Timestamp
				oldest = &ts
			}
			if models.InRange(sample.Timestamp, q.Start, q.End) {
				collected = append(collected, sample)
			}
		}

		if caughtUp {
			hs.logger.Infof(providers.TypeHistory, "Reached backed-up sample at %s", q.ResumeAfter.Format(time.DateTime))
			break
		}
		if q.Start != nil && oldest != nil && oldest.Before(*q.Start) {
			break
		}
		cursor = page[len(page)-1].ID
	}

	hs.logger.Infof(providers.TypeHistory, "Collected %d samples from %d pages", len(collected), pages)
	return collected, nil
}
