package scheduler

import (
	"context"
	"fmt"

	"contactcenter_backend/platform/config"
	"contactcenter_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Periodic enqueues TaskSummaryRefreshAll on the configured cron spec.
type Periodic struct {
	scheduler *asynq.Scheduler
	log       *logger.Logger
}

func NewPeriodic(cfg config.SchedulerConfig, log *logger.Logger) (*Periodic, error) {
	spec := cfg.GetSummaryRefreshCron()
	if spec == "" {
		return nil, nil
	}

	opt, err := redisClientOpt(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	s := asynq.NewScheduler(opt, &asynq.SchedulerOpts{})
	if _, err := s.Register(spec, NewSummaryRefreshAllTask(), asynq.Queue(queueName(cfg))); err != nil {
		return nil, fmt.Errorf("register summary refresh cron %q: %w", spec, err)
	}

	return &Periodic{scheduler: s, log: log}, nil
}

func (p *Periodic) Run(ctx context.Context) {
	if p == nil || p.scheduler == nil {
		return
	}

	if err := p.scheduler.Start(); err != nil {
		p.log.Error("summary scheduler failed to start", "error", err)
		return
	}
	<-ctx.Done()
	p.scheduler.Shutdown()
}
