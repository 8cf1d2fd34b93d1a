package analytics

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"contactcenter_backend/internal/leads/domain"
)

func date(t *testing.T, raw string) *time.Time {
	t.Helper()
	d, err := domain.ParseDate(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return d
}

type memStore struct {
	leads  []domain.Lead
	events []domain.ContactEvent
	bases  []domain.Base
	err    error
	delay  time.Duration
	calls  atomic.Int32
}

func (m *memStore) wait(ctx context.Context) error {
	m.calls.Add(1)
	if m.delay == 0 {
		return m.err
	}
	select {
	case <-time.After(m.delay):
		return m.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *memStore) FetchLeads(ctx context.Context, _ domain.Filter) ([]domain.Lead, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return m.leads, nil
}

func (m *memStore) FetchEvents(ctx context.Context, _ domain.Filter) ([]domain.ContactEvent, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return m.events, nil
}

func (m *memStore) ListBases(ctx context.Context) ([]domain.Base, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return m.bases, nil
}
