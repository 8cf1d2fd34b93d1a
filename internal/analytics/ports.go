package analytics

import (
	"context"
	"time"

	"contactcenter_backend/internal/leads/domain"
)

// LeadStore reads lead records. Implementations may push the filter down
// to storage; the engine re-applies it in memory either way.
type LeadStore interface {
	FetchLeads(ctx context.Context, filter domain.Filter) ([]domain.Lead, error)
}

// EventStore reads contact-attempt events.
type EventStore interface {
	FetchEvents(ctx context.Context, filter domain.Filter) ([]domain.ContactEvent, error)
}

// BaseStore lists the known lead-source bases.
type BaseStore interface {
	ListBases(ctx context.Context) ([]domain.Base, error)
}

// FetchObserver receives one observation per store fetch.
type FetchObserver interface {
	ObserveFetch(source, base string, rows int, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveFetch(string, string, int, time.Duration, error) {}
