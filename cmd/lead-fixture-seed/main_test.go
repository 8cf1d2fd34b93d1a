package main

import (
	"testing"
	"time"

	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/internal/leads/fixture"
)

func sampleDataset() fixture.Dataset {
	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	return fixture.Dataset{
		Bases: []domain.Base{{ID: 7, Name: "BASE A"}},
		Leads: []domain.Lead{
			{ID: "1001", Channel: "Facebook", SourceBase: "BASE A", LeadDate: &day, Outcome: domain.OutcomeNotContacted},
		},
		Events: []domain.ContactEvent{
			{DedupKey: "mock_1001_0", LeadID: "1001", OccurredAt: day, Agent: "ana", SourceBase: "BASE A"},
			{DedupKey: "mock_1001_1", LeadID: "1001", OccurredAt: day, Agent: "ana", SaleID: 55, SourceBase: "BASE A"},
		},
	}
}

func TestLeadRowsUseTextColumns(t *testing.T) {
	rows := leadRows(sampleDataset())
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if len(row) != len(leadsColumns) {
		t.Fatalf("expected %d columns, got %d", len(leadsColumns), len(row))
	}
	if row[6] != "7" {
		t.Fatalf("expected iddatabase 7, got %v", row[6])
	}
	if row[7] != "2024-03-04" {
		t.Fatalf("expected lead date 2024-03-04, got %v", row[7])
	}
	if row[8] != nil {
		t.Fatalf("expected null last contact, got %v", row[8])
	}
	if row[11] != "0" {
		t.Fatalf("expected touches 0, got %v", row[11])
	}
}

func TestEventRowsCarrySaleOnlyWhenPresent(t *testing.T) {
	rows := eventRows(sampleDataset())
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][4] != nil {
		t.Fatalf("expected null sale, got %v", rows[0][4])
	}
	if rows[1][4] != "55" {
		t.Fatalf("expected sale 55, got %v", rows[1][4])
	}
	if rows[1][5] != "7" {
		t.Fatalf("expected iddatabase 7, got %v", rows[1][5])
	}
}
