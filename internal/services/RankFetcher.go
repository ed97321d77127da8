package services

import (
	"context"
	"fmt"
	"rankwatch/internal/models"
	"rankwatch/internal/providers"
	"rankwatch/internal/structures"
)

type RankFetcherInterface interface {
	// CurrentRank returns the configured identity's rank or models.ErrRankNotFound.
	CurrentRank(ctx context.Context) (int, error)
	// Refresh drops any cached leaderboard so the next lookup hits the network.
	Refresh()
}

type RankFetcher struct {
	identity    models.Identity
	leaderboard providers.LeaderboardProviderInterface
	metrics     providers.MetricsProviderInterface
	logger      providers.Logger
}

func NewRankFetcher(conf *structures.Config, leaderboard providers.LeaderboardProviderInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) RankFetcherInterface {
	return &RankFetcher{
		identity: models.Identity{
			PlayerID: conf.Identity.PlayerID,
			Name:     conf.Identity.Name,
			TeamID:   conf.Identity.TeamID,
			TeamTag:  conf.Identity.TeamTag,
			Country:  conf.Identity.Country,
		},
		leaderboard: leaderboard,
		metrics:     metrics,
		logger:      logger,
	}
}

func (rf *RankFetcher) CurrentRank(ctx context.Context) (int, error) {
	resp, err := rf.leaderboard.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching leaderboard: %w", err)
	}

	for _, entry := range resp.Leaderboard {
		if rf.identity.Matches(entry) {
			rf.metrics.SetCurrentRank(entry.Rank)
			return entry.Rank, nil
		}
	}

	rf.logger.Warnf(providers.TypeRank, "%q (%s, team %d, %s) not on leaderboard of %d entries",
		rf.identity.Name, rf.identity.TeamTag, rf.identity.TeamID, rf.identity.Country, len(resp.Leaderboard))
	return 0, models.ErrRankNotFound
}

func (rf *RankFetcher) Refresh() {
	rf.leaderboard.Invalidate()
}
