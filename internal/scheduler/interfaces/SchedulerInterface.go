package interfaces

import (
	"context"
	"rankwatch/internal/services"
)

type SchedulerInterface interface {
	Init() error
	Stop()
	// Trigger runs one update now, quiet hours notwithstanding.
	Trigger(ctx context.Context) (*services.UpdateReport, error)
	LastReport() *services.UpdateReport
}
