package services

import (
	"context"
	"errors"
	"fmt"
	"rankwatch/internal/models"
	"rankwatch/internal/providers"
	"rankwatch/internal/structures"
	"time"
)

// UpdateReport summarises one rank-update run.
type UpdateReport struct {
	At            time.Time            `json:"at"`
	Rank          int                  `json:"rank"`
	PreviousRank  *int                 `json:"previousRank,omitempty"`
	ChannelName   string               `json:"channelName"`
	Trend         models.Trend         `json:"trend"`
	Message       string               `json:"message"`
	Notifications []NotificationResult `json:"-"`
}

// Failed lists the targets whose call did not succeed.
func (r *UpdateReport) Failed() []string {
	var failed []string
	for _, n := range r.Notifications {
		if !n.OK() {
			failed = append(failed, n.Target)
		}
	}
	return failed
}

type RankUpdateServiceInterface interface {
	// Run performs one update. A missing identity yields (nil, nil).
	Run(ctx context.Context, now time.Time) (*UpdateReport, error)
}

type RankUpdateService struct {
	conf     *structures.Config
	fetcher  RankFetcherInterface
	composer MessageComposerInterface
	notifier NotifierServiceInterface
	chat     providers.ChatProviderInterface
	logger   providers.Logger
}

func NewRankUpdateService(conf *structures.Config, fetcher RankFetcherInterface, composer MessageComposerInterface, notifier NotifierServiceInterface, chat providers.ChatProviderInterface, logger providers.Logger) RankUpdateServiceInterface {
	return &RankUpdateService{
		conf:     conf,
		fetcher:  fetcher,
		composer: composer,
		notifier: notifier,
		chat:     chat,
		logger:   logger,
	}
}

func (rs *RankUpdateService) Run(ctx context.Context, now time.Time) (*UpdateReport, error) {
	rs.logger.Infof(providers.TypeRank, "Starting rank update")

	rank, err := rs.fetcher.CurrentRank(ctx)
	if errors.Is(err, models.ErrRankNotFound) {
		rs.logger.Warnf(providers.TypeRank, "Player not found, skipping update")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	name, err := rs.chat.ChannelName(ctx, rs.conf.Discord.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("reading channel name: %w", err)
	}

	var previous *int
	if state, ok := models.ParseChannelName(name); ok {
		previous = &state.Rank
	} else {
		rs.logger.Infof(providers.TypeRank, "Channel name %q carries no rank, treating as first run", name)
	}

	comp := rs.composer.Compose(rank, previous)
	report := &UpdateReport{
		At:           now,
		Rank:         rank,
		PreviousRank: previous,
		ChannelName:  comp.ChannelName,
		Trend:        comp.Trend,
		Message:      comp.Message,
	}

	report.Notifications = []NotificationResult{
		rs.notifier.RenameChannel(ctx, comp.ChannelName),
		rs.notifier.PostStatus(ctx, comp.Message),
		rs.notifier.PostLog(ctx, now, rank),
	}

	if failed := report.Failed(); len(failed) > 0 {
		rs.logger.Warnf(providers.TypeRank, "Rank %d recorded with failed notifications: %v", rank, failed)
	} else {
		rs.logger.Infof(providers.TypeRank, "Rank %d recorded (%s)", rank, comp.ChannelName)
	}
	return report, nil
}
