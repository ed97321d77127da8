package scheduler

import (
	"context"
	"errors"
	"rankwatch/internal/services"
	"rankwatch/internal/testutil"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUpdateService struct {
	mu     sync.Mutex
	runs   []time.Time
	report *services.UpdateReport
	err    error
}

func (m *mockUpdateService) Run(_ context.Context, now time.Time) (*services.UpdateReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, now)
	return m.report, m.err
}

func newTestScheduler(svc *mockUpdateService, hour int) (*Scheduler, *testutil.MockLogger) {
	logger := &testutil.MockLogger{}
	s := NewScheduler(quietConfig(0, 8, "UTC"), logger, svc).(*Scheduler)
	s.now = func() time.Time { return time.Date(2024, time.March, 1, hour, 0, 0, 0, time.UTC) }
	return s, logger
}

func TestScheduler_TickSkipsQuietHours(t *testing.T) {
	svc := &mockUpdateService{}
	s, logger := newTestScheduler(svc, 3)

	s.tick()

	assert.Empty(t, svc.runs)
	assert.True(t, logger.Contains("info", "Quiet hours"))
}

func TestScheduler_TickRunsOutsideQuietHours(t *testing.T) {
	svc := &mockUpdateService{report: &services.UpdateReport{Rank: 12}}
	s, _ := newTestScheduler(svc, 14)

	s.tick()

	require.Len(t, svc.runs, 1)
	assert.Equal(t, 12, s.LastReport().Rank)
}

func TestScheduler_TriggerIgnoresQuietHours(t *testing.T) {
	svc := &mockUpdateService{report: &services.UpdateReport{Rank: 40}}
	s, _ := newTestScheduler(svc, 3)

	report, err := s.Trigger(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 40, report.Rank)
	assert.Len(t, svc.runs, 1)
}

func TestScheduler_FailedRunKeepsLastReport(t *testing.T) {
	svc := &mockUpdateService{report: &services.UpdateReport{Rank: 40}}
	s, logger := newTestScheduler(svc, 14)
	_, err := s.Trigger(context.Background())
	require.NoError(t, err)

	svc.report, svc.err = nil, errors.New("leaderboard down")
	_, err = s.Trigger(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 40, s.LastReport().Rank)
	assert.True(t, logger.Contains("error", "leaderboard down"))
}

func TestScheduler_InitRejectsBadSpec(t *testing.T) {
	s, _ := newTestScheduler(&mockUpdateService{}, 14)
	s.config.Schedule.Spec = "every full moon"

	assert.ErrorContains(t, s.Init(), "every full moon")
}

func TestScheduler_InitAndStop(t *testing.T) {
	s, logger := newTestScheduler(&mockUpdateService{}, 14)

	require.NoError(t, s.Init())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
	assert.True(t, logger.Contains("info", "0 * * * *"))
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	s, _ := newTestScheduler(&mockUpdateService{}, 14)
	assert.NotPanics(t, s.Stop)
}
