package scheduler

import (
	"context"
	"fmt"

	"contactcenter_backend/internal/analytics"
	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/config"
	"contactcenter_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// SummaryRefresher recomputes and caches one summary.
type SummaryRefresher interface {
	Refresh(ctx context.Context, filter domain.Filter) (analytics.Summary, error)
}

// BaseLister lists the known source bases.
type BaseLister interface {
	Bases(ctx context.Context) ([]domain.Base, error)
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	summaries SummaryRefresher
	bases     BaseLister
	enqueuer  SummaryEnqueuer
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, summaries SummaryRefresher, bases BaseLister, enqueuer SummaryEnqueuer, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 4
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := newHandlers(summaries, bases, enqueuer, log)
	w.server = server
	return w, nil
}

func newHandlers(summaries SummaryRefresher, bases BaseLister, enqueuer SummaryEnqueuer, log *logger.Logger) *Worker {
	mux := asynq.NewServeMux()
	w := &Worker{
		mux:       mux,
		summaries: summaries,
		bases:     bases,
		enqueuer:  enqueuer,
		log:       log,
	}

	mux.HandleFunc(TaskSummaryRefresh, w.handleSummaryRefresh)
	mux.HandleFunc(TaskSummaryRefreshAll, w.handleSummaryRefreshAll)

	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleSummaryRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseSummaryRefreshPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	filter := domain.Filter{SourceBase: payload.Base}
	summary, err := w.summaries.Refresh(ctx, filter)
	if err != nil {
		w.log.Warn("summary refresh failed", "base", filter.Label(), "error", err)
		return err
	}

	w.log.Info("summary refreshed", "base", filter.Label(), "leads", summary.GeneratedFrom.Leads)
	return nil
}

// handleSummaryRefreshAll enqueues the combined summary plus one per base.
func (w *Worker) handleSummaryRefreshAll(ctx context.Context, _ *asynq.Task) error {
	bases, err := w.bases.Bases(ctx)
	if err != nil {
		return err
	}

	if err := w.enqueuer.EnqueueSummaryRefresh(ctx, ""); err != nil {
		return err
	}
	for _, base := range bases {
		if err := w.enqueuer.EnqueueSummaryRefresh(ctx, base.Name); err != nil {
			return err
		}
	}

	w.log.Info("summary refresh fanned out", "bases", len(bases))
	return nil
}
