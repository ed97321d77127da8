package internal

import (
	"context"
	"rankwatch/internal/providers"
	"rankwatch/internal/scheduler"
	"rankwatch/internal/services"
	"rankwatch/internal/structures"
	"time"
)

// LambdaOutput is returned to the function invoker.
type LambdaOutput struct {
	Skipped bool                   `json:"skipped"`
	Reason  string                 `json:"reason,omitempty"`
	Report  *services.UpdateReport `json:"report,omitempty"`
	Failed  []string               `json:"failed,omitempty"`
}

// LambdaHandler performs one guarded rank update per invocation.
type LambdaHandler struct {
	conf    *structures.Config
	service services.RankUpdateServiceInterface
	logger  providers.Logger
	now     func() time.Time
}

func NewLambdaHandler(conf *structures.Config, service services.RankUpdateServiceInterface, logger providers.Logger) *LambdaHandler {
	return &LambdaHandler{
		conf:    conf,
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

func (h *LambdaHandler) Handle(ctx context.Context) (LambdaOutput, error) {
	now := h.now()
	if !scheduler.ShouldRun(now, h.conf) {
		h.logger.Infof(providers.TypeRank, "Quiet hours (hour %d), not updating", now.Hour())
		return LambdaOutput{Skipped: true, Reason: "quiet hours"}, nil
	}

	report, err := h.service.Run(ctx, now)
	if err != nil {
		return LambdaOutput{}, err
	}
	if report == nil {
		return LambdaOutput{Skipped: true, Reason: "player not on leaderboard"}, nil
	}
	return LambdaOutput{Report: report, Failed: report.Failed()}, nil
}
