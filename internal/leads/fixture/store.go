package fixture

import (
	"context"
	"time"

	"contactcenter_backend/internal/leads/domain"
)

// Store serves a generated Dataset. It is read-only after construction and
// safe for concurrent use.
type Store struct {
	data Dataset
}

// NewStore wraps an already generated dataset.
func NewStore(data Dataset) *Store {
	return &Store{data: data}
}

// Load generates a dataset from the embedded catalog.
func Load(seed uint64, size int, anchor time.Time, enrollmentCode string) (*Store, error) {
	cat, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}
	return NewStore(Generate(cat, Options{
		Seed:           seed,
		Size:           size,
		Anchor:         anchor,
		EnrollmentCode: enrollmentCode,
	})), nil
}

// Dataset returns the generated rows.
func (s *Store) Dataset() Dataset {
	return s.data
}

// FetchLeads returns the leads matching filter.
func (s *Store) FetchLeads(ctx context.Context, filter domain.Filter) ([]domain.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Lead, 0, len(s.data.Leads))
	for _, lead := range s.data.Leads {
		if filter.MatchesLead(lead) {
			out = append(out, lead)
		}
	}
	return out, nil
}

// FetchEvents returns the events matching filter.
func (s *Store) FetchEvents(ctx context.Context, filter domain.Filter) ([]domain.ContactEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.ContactEvent, 0, len(s.data.Events))
	for _, ev := range s.data.Events {
		if filter.MatchesEvent(ev) {
			out = append(out, ev)
		}
	}
	return out, nil
}

// ListBases returns the catalog bases.
func (s *Store) ListBases(ctx context.Context) ([]domain.Base, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Base(nil), s.data.Bases...), nil
}
