package scheduler

import (
	"context"
	"fmt"
	"rankwatch/internal/providers"
	"rankwatch/internal/scheduler/interfaces"
	"rankwatch/internal/services"
	"rankwatch/internal/structures"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const runTimeout = 2 * time.Minute

type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	service services.RankUpdateServiceInterface
	cron    *cron.Cron
	opsMu   sync.Mutex
	last    *services.UpdateReport
	now     func() time.Time
}

func (s *Scheduler) Init() error {
	loc, err := Location(s.config)
	if err != nil {
		return fmt.Errorf("schedule timezone %q: %w", s.config.Schedule.Timezone, err)
	}

	s.cron = cron.New(cron.WithLocation(loc))
	if _, err := s.cron.AddFunc(s.config.Schedule.Spec, s.tick); err != nil {
		return fmt.Errorf("schedule %q: %w", s.config.Schedule.Spec, err)
	}
	s.cron.Start()

	s.logger.Infof(providers.TypeApp, "Rank updates scheduled at %q (%s), quiet %02d:00-%02d:59",
		s.config.Schedule.Spec, loc, s.config.Schedule.QuietFromHour, s.config.Schedule.QuietUntilHour)
	return nil
}

func (s *Scheduler) tick() {
	now := s.now()
	if !ShouldRun(now, s.config) {
		s.logger.Infof(providers.TypeRank, "Quiet hours, skipping update at %s", now.Format(time.TimeOnly))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	_, _ = s.run(ctx, now)
}

func (s *Scheduler) Trigger(ctx context.Context) (*services.UpdateReport, error) {
	return s.run(ctx, s.now())
}

func (s *Scheduler) run(ctx context.Context, now time.Time) (*services.UpdateReport, error) {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	report, err := s.service.Run(ctx, now)
	if err != nil {
		s.logger.Errorf(providers.TypeRank, "Rank update failed: %s", err)
		return nil, err
	}
	if report != nil {
		s.last = report
	}
	return report, nil
}

func (s *Scheduler) LastReport() *services.UpdateReport {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	return s.last
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.RankUpdateServiceInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		service: service,
		now:     time.Now,
	}
}
