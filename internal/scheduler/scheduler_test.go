package scheduler

import (
	"context"
	"errors"
	"testing"

	"contactcenter_backend/internal/analytics"
	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type recordingRefresher struct {
	filters []domain.Filter
	err     error
}

func (r *recordingRefresher) Refresh(_ context.Context, filter domain.Filter) (analytics.Summary, error) {
	r.filters = append(r.filters, filter)
	return analytics.Summary{Base: filter.Label()}, r.err
}

type staticBases []domain.Base

func (b staticBases) Bases(context.Context) ([]domain.Base, error) {
	return b, nil
}

type recordingEnqueuer struct {
	bases []string
}

func (e *recordingEnqueuer) EnqueueSummaryRefresh(_ context.Context, base string) error {
	e.bases = append(e.bases, base)
	return nil
}

func TestSummaryRefreshPayload(t *testing.T) {
	task, err := NewSummaryRefreshTask(SummaryRefreshPayload{Base: "BASE A"})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != TaskSummaryRefresh {
		t.Fatalf("expected type %s, got %s", TaskSummaryRefresh, task.Type())
	}
	if string(task.Payload()) != `{"base":"BASE A"}` {
		t.Fatalf("unexpected payload %s", task.Payload())
	}

	payload, err := ParseSummaryRefreshPayload(task)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if payload.Base != "BASE A" {
		t.Fatalf("expected BASE A, got %q", payload.Base)
	}
}

func TestRefreshHandlerRefreshesBase(t *testing.T) {
	refresher := &recordingRefresher{}
	w := newHandlers(refresher, staticBases{}, &recordingEnqueuer{}, logger.Nop())

	task, _ := NewSummaryRefreshTask(SummaryRefreshPayload{Base: "BASE B"})
	if err := w.mux.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(refresher.filters) != 1 || refresher.filters[0].SourceBase != "BASE B" {
		t.Fatalf("unexpected refreshes: %+v", refresher.filters)
	}
}

func TestRefreshHandlerRejectsBadPayload(t *testing.T) {
	w := newHandlers(&recordingRefresher{}, staticBases{}, &recordingEnqueuer{}, logger.Nop())

	err := w.mux.ProcessTask(context.Background(), asynq.NewTask(TaskSummaryRefresh, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestRefreshHandlerPropagatesStoreError(t *testing.T) {
	refresher := &recordingRefresher{err: errors.New("store down")}
	w := newHandlers(refresher, staticBases{}, &recordingEnqueuer{}, logger.Nop())

	task, _ := NewSummaryRefreshTask(SummaryRefreshPayload{})
	if err := w.mux.ProcessTask(context.Background(), task); err == nil {
		t.Fatal("expected error to trigger retry")
	}
}

func TestRefreshAllFansOut(t *testing.T) {
	enq := &recordingEnqueuer{}
	bases := staticBases{{ID: 1, Name: "BASE A"}, {ID: 2, Name: "BASE B"}}
	w := newHandlers(&recordingRefresher{}, bases, enq, logger.Nop())

	if err := w.mux.ProcessTask(context.Background(), NewSummaryRefreshAllTask()); err != nil {
		t.Fatalf("process: %v", err)
	}
	want := []string{"", "BASE A", "BASE B"}
	if len(enq.bases) != len(want) {
		t.Fatalf("expected %v, got %v", want, enq.bases)
	}
	for i := range want {
		if enq.bases[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, enq.bases)
		}
	}
}

func TestRedisClientOpt(t *testing.T) {
	opt, err := redisClientOpt("redis://:secret@cache:6380/2", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opt.Addr != "cache:6380" || opt.Password != "secret" || opt.DB != 2 {
		t.Fatalf("unexpected options: %+v", opt)
	}
	if opt.TLSConfig != nil {
		t.Fatal("expected no TLS for redis://")
	}
}
