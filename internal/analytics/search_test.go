package analytics

import (
	"fmt"
	"testing"

	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/apperr"
)

func thirtyLeads(t *testing.T) []domain.Lead {
	leads := make([]domain.Lead, 0, 30)
	for i := 1; i <= 30; i++ {
		leads = append(leads, domain.Lead{
			ID:       fmt.Sprintf("%03d", i),
			LeadDate: date(t, fmt.Sprintf("2024-04-%02d", i)),
		})
	}
	return leads
}

func TestSearchLeadsPagination(t *testing.T) {
	leads := thirtyLeads(t)

	page, err := SearchLeads(leads, SearchQuery{Page: 2, PerPage: 25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Rows) != 5 || page.Total != 30 {
		t.Fatalf("expected 5 rows of 30, got %d of %d", len(page.Rows), page.Total)
	}
	if page.Rows[0].ID != "005" {
		t.Fatalf("expected newest-first ordering to put 005 first on page 2, got %s", page.Rows[0].ID)
	}

	page, err = SearchLeads(leads, SearchQuery{Page: 10, PerPage: 25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Rows) != 0 || page.Total != 30 || page.Rows == nil {
		t.Fatalf("expected empty non-nil page with total 30, got %d rows (total %d)", len(page.Rows), page.Total)
	}
}

func TestSearchLeadsRejectsBadPaging(t *testing.T) {
	for _, q := range []SearchQuery{{Page: 0, PerPage: 10}, {Page: 1, PerPage: 0}, {Page: 1, PerPage: 101}} {
		if _, err := SearchLeads(nil, q); !apperr.Is(err, apperr.KindInvalidArgument) {
			t.Fatalf("%+v: expected invalid argument, got %v", q, err)
		}
	}
}

func TestSearchLeadsCaseFoldsText(t *testing.T) {
	leads := []domain.Lead{
		{ID: "1", Name: "María García"},
		{ID: "2", Name: "Juan Pérez", Email: "jp@example.com"},
		{ID: "3", Name: "Ana", Phone: "+52 55 1234 5678"},
	}

	for _, term := range []string{"garcía", "GARCÍA"} {
		page, err := SearchLeads(leads, SearchQuery{Text: term, Page: 1, PerPage: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 1 || page.Rows[0].ID != "1" {
			t.Fatalf("%q: expected lead 1, got %+v", term, page.Rows)
		}
	}

	page, _ := SearchLeads(leads, SearchQuery{Text: "EXAMPLE.COM", Page: 1, PerPage: 10})
	if page.Total != 1 || page.Rows[0].ID != "2" {
		t.Fatalf("expected email match on lead 2, got %+v", page.Rows)
	}
	page, _ = SearchLeads(leads, SearchQuery{Text: "1234", Page: 1, PerPage: 10})
	if page.Total != 1 || page.Rows[0].ID != "3" {
		t.Fatalf("expected phone match on lead 3, got %+v", page.Rows)
	}
}

func TestSearchLeadsExactFiltersAndOrdering(t *testing.T) {
	leads := []domain.Lead{
		{ID: "b", Channel: "Google", Outcome: domain.OutcomeContacted, SourceBase: "X"},
		{ID: "a", Channel: "Google", Outcome: domain.OutcomeContacted, SourceBase: "X"},
		{ID: "c", Channel: "Google", Outcome: domain.OutcomeContacted, SourceBase: "X", LeadDate: date(t, "2024-01-01")},
		{ID: "d", Channel: "google", Outcome: domain.OutcomeContacted, SourceBase: "X"},
		{ID: "e", Channel: "Google", Outcome: domain.OutcomeNotContacted, SourceBase: "X"},
		{ID: "f", Channel: "Google", Outcome: domain.OutcomeContacted, SourceBase: "Y"},
	}

	page, err := SearchLeads(leads, SearchQuery{
		Filter:  domain.Filter{SourceBase: "X"},
		Channel: "Google",
		Outcome: domain.OutcomeContacted,
		Page:    1,
		PerPage: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := ""
	for _, row := range page.Rows {
		got += row.ID
	}
	if got != "cab" {
		t.Fatalf("expected order cab, got %s", got)
	}
}
