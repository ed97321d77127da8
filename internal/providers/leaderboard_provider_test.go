package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"rankwatch/internal/models"
	"rankwatch/internal/structures"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLeaderboard = `{"time_posted":1700000000,"leaderboard":[
	{"rank":1,"name":"Alpha","team_id":7,"team_tag":"AA","country":"se"},
	{"rank":2,"name":"Player","team_id":"42","team_tag":"TAG","country":"fr"},
	{"rank":3,"name":"Nameless"}
]}`

func leaderboardServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func leaderboardConfig(url string) *structures.Config {
	return &structures.Config{
		Leaderboard: structures.LeaderboardConfig{URL: url, Timeout: 5 * time.Second, CacheTTL: time.Minute},
		Cache:       structures.CacheConfig{Enabled: true, Size: 1},
	}
}

func TestLeaderboardProvider_FetchDecodes(t *testing.T) {
	srv, _ := leaderboardServer(t, http.StatusOK, sampleLeaderboard)
	conf := leaderboardConfig(srv.URL)

	lp := NewLeaderboardProvider(conf, &noopCache{}, &mockMetrics{}, silentLogger{})
	resp, err := lp.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Leaderboard, 3)
	assert.Equal(t, int64(42), resp.Leaderboard[1].TeamID)
	assert.Equal(t, 2, resp.Leaderboard[1].Rank)
	assert.Equal(t, "", resp.Leaderboard[2].Country)
}

func TestLeaderboardProvider_ServesFromCache(t *testing.T) {
	srv, hits := leaderboardServer(t, http.StatusOK, sampleLeaderboard)
	conf := leaderboardConfig(srv.URL)
	cache := NewCacheProvider(conf, silentLogger{})

	lp := NewLeaderboardProvider(conf, cache, &mockMetrics{}, silentLogger{})
	_, err := lp.Fetch(context.Background())
	require.NoError(t, err)
	resp, err := lp.Fetch(context.Background())
	require.NoError(t, err)

	assert.Len(t, resp.Leaderboard, 3)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestLeaderboardProvider_Non200(t *testing.T) {
	srv, _ := leaderboardServer(t, http.StatusBadGateway, "oops")

	lp := NewLeaderboardProvider(leaderboardConfig(srv.URL), &noopCache{}, &mockMetrics{}, silentLogger{})
	_, err := lp.Fetch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLeaderboardProvider_MalformedBodyNotCached(t *testing.T) {
	cases := map[string]string{
		"not json":      "<html>",
		"missing array": `{"time_posted":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv, hits := leaderboardServer(t, http.StatusOK, body)
			conf := leaderboardConfig(srv.URL)
			cache := NewCacheProvider(conf, silentLogger{})

			lp := NewLeaderboardProvider(conf, cache, &mockMetrics{}, silentLogger{})
			_, err := lp.Fetch(context.Background())
			assert.True(t, errors.Is(err, models.ErrMalformedResponse))

			_, err = lp.Fetch(context.Background())
			assert.Error(t, err)
			assert.Equal(t, int32(2), atomic.LoadInt32(hits))
		})
	}
}

func TestLeaderboardProvider_InvalidateDropsCachedBody(t *testing.T) {
	srv, hits := leaderboardServer(t, http.StatusOK, sampleLeaderboard)
	conf := leaderboardConfig(srv.URL)
	cache := NewCacheProvider(conf, silentLogger{})

	lp := NewLeaderboardProvider(conf, cache, &mockMetrics{}, silentLogger{})
	_, err := lp.Fetch(context.Background())
	require.NoError(t, err)

	lp.Invalidate()
	_, err = lp.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}
