package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"rankwatch/internal/models"
	"rankwatch/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

const maxLeaderboardBody = 32 << 20

type LeaderboardProviderInterface interface {
	Fetch(ctx context.Context) (*models.LeaderboardResponse, error)
	// Invalidate forgets the cached body so the next Fetch goes to the network.
	Invalidate()
}

type LeaderboardProvider struct {
	url     string
	client  *http.Client
	cache   CacheProviderInterface
	metrics MetricsProviderInterface
	logger  Logger
}

func NewLeaderboardProvider(conf *structures.Config, cache CacheProviderInterface, metrics MetricsProviderInterface, logger Logger) LeaderboardProviderInterface {
	return &LeaderboardProvider{
		url:     conf.Leaderboard.URL,
		client:  &http.Client{Timeout: conf.Leaderboard.Timeout},
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

func (lp *LeaderboardProvider) cacheKey() string {
	return "leaderboard:" + lp.url
}

func (lp *LeaderboardProvider) Invalidate() {
	lp.cache.Delete(lp.cacheKey())
}

func (lp *LeaderboardProvider) Fetch(ctx context.Context) (*models.LeaderboardResponse, error) {
	if body, ok := lp.cache.Get(lp.cacheKey()); ok {
		lp.logger.Debugf(TypeRank, "Leaderboard served from cache")
		return decodeLeaderboard(body)
	}

	start := time.Now()
	body, err := lp.download(ctx)
	lp.metrics.ObserveLeaderboardDuration(time.Since(start))
	if err != nil {
		return nil, err
	}

	resp, err := decodeLeaderboard(body)
	if err != nil {
		return nil, err
	}
	lp.cache.Set(lp.cacheKey(), body)
	lp.logger.Debugf(TypeRank, "Leaderboard fetched: %d entries in %s", len(resp.Leaderboard), time.Since(start))
	return resp, nil
}

func (lp *LeaderboardProvider) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lp.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create leaderboard request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := lp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leaderboard request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leaderboard returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLeaderboardBody))
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard body: %w", err)
	}
	return body, nil
}

func decodeLeaderboard(body []byte) (*models.LeaderboardResponse, error) {
	var resp models.LeaderboardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: leaderboard: %s", models.ErrMalformedResponse, err)
	}
	if resp.Leaderboard == nil {
		return nil, fmt.Errorf("%w: leaderboard: missing leaderboard array", models.ErrMalformedResponse)
	}
	return &resp, nil
}
