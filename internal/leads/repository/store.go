// Package repository reads the contact-center tables (dim_contactos,
// fact_contactos, dim_bases). The tables are owned by the ingestion side;
// this package never writes them.
package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"contactcenter_backend/internal/leads/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements the lead, event and base stores over Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store over pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// FetchLeads returns every lead matching filter.
func (s *Store) FetchLeads(ctx context.Context, filter domain.Filter) ([]domain.Lead, error) {
	query, args := leadsQuery(filter)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Lead, 0)
	for rows.Next() {
		var r leadRow
		if err := rows.Scan(
			&r.id, &r.channel, &r.name, &r.email, &r.phone, &r.base,
			&r.leadDate, &r.lastContact, &r.program, &r.outcome, &r.touches, &r.subcategory,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		lead, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("lead %s: %w", r.id, err)
		}
		items = append(items, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}

	return items, nil
}

// FetchEvents returns every contact event matching filter. The base of an
// event comes from dim_bases through its iddatabase.
func (s *Store) FetchEvents(ctx context.Context, filter domain.Filter) ([]domain.ContactEvent, error) {
	query, args := eventsQuery(filter)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ContactEvent, 0)
	for rows.Next() {
		var (
			ev   domain.ContactEvent
			sale string
		)
		if err := rows.Scan(&ev.DedupKey, &ev.LeadID, &ev.OccurredAt, &ev.Agent, &sale, &ev.SourceBase); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.SaleID = parseSaleID(sale)
		items = append(items, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return items, nil
}

// ListBases returns the known lead-source bases ordered by description.
func (s *Store) ListBases(ctx context.Context) ([]domain.Base, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT iddatabase, descripcion
		FROM dim_bases
		ORDER BY descripcion ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query bases: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Base, 0)
	for rows.Next() {
		var b domain.Base
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("scan base: %w", err)
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bases: %w", err)
	}

	return items, nil
}

type leadRow struct {
	id, channel, name, email, phone, base string
	leadDate, lastContact                 string
	program, outcome, touches             string
	subcategory                           string
}

func (r leadRow) toDomain() (domain.Lead, error) {
	leadDate, err := domain.ParseDate(r.leadDate)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("fecha_a_utilizar: %w", err)
	}
	lastContact, err := domain.ParseDate(r.lastContact)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("fecha_ult_gestion: %w", err)
	}

	return domain.Lead{
		ID:                r.id,
		Channel:           r.channel,
		Name:              r.name,
		Email:             r.email,
		Phone:             r.phone,
		SourceBase:        r.base,
		LeadDate:          leadDate,
		LastContactDate:   lastContact,
		ProgramOfInterest: r.program,
		Outcome:           domain.Outcome(r.outcome),
		TouchCount:        parseTouches(r.touches),
		LatestSubcategory: r.subcategory,
	}, nil
}

// parseTouches reads the text touch counter. Blank, malformed and negative
// values count as zero touches.
func parseTouches(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseSaleID reads the text sale id; anything unparsable means no sale.
func parseSaleID(raw string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
