package internal

import (
	"context"
	"errors"
	"rankwatch/internal/services"
	"rankwatch/internal/structures"
	"rankwatch/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lambdaTestService struct {
	report *services.UpdateReport
	err    error
	runs   int
}

func (s *lambdaTestService) Run(_ context.Context, _ time.Time) (*services.UpdateReport, error) {
	s.runs++
	return s.report, s.err
}

func newTestLambda(svc *lambdaTestService, hour int) *LambdaHandler {
	conf := &structures.Config{Schedule: structures.ScheduleConfig{Timezone: "UTC", QuietFromHour: 0, QuietUntilHour: 8}}
	h := NewLambdaHandler(conf, svc, &testutil.MockLogger{})
	h.now = func() time.Time { return time.Date(2024, time.March, 1, hour, 15, 0, 0, time.UTC) }
	return h
}

func TestLambda_QuietHoursSkip(t *testing.T) {
	svc := &lambdaTestService{}

	out, err := newTestLambda(svc, 8).Handle(context.Background())

	require.NoError(t, err)
	assert.True(t, out.Skipped)
	assert.Zero(t, svc.runs)
}

func TestLambda_RunsOutsideQuietHours(t *testing.T) {
	svc := &lambdaTestService{report: &services.UpdateReport{
		Rank:          50,
		Notifications: []services.NotificationResult{{Target: services.TargetLog, Status: 500}},
	}}

	out, err := newTestLambda(svc, 9).Handle(context.Background())

	require.NoError(t, err)
	assert.False(t, out.Skipped)
	assert.Equal(t, 50, out.Report.Rank)
	assert.Equal(t, []string{services.TargetLog}, out.Failed)
}

func TestLambda_PlayerMissing(t *testing.T) {
	out, err := newTestLambda(&lambdaTestService{}, 12).Handle(context.Background())

	require.NoError(t, err)
	assert.True(t, out.Skipped)
	assert.Equal(t, "player not on leaderboard", out.Reason)
}

func TestLambda_Error(t *testing.T) {
	_, err := newTestLambda(&lambdaTestService{err: errors.New("down")}, 12).Handle(context.Background())
	assert.ErrorContains(t, err, "down")
}
