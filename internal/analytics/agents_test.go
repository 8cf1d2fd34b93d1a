package analytics

import (
	"testing"

	"contactcenter_backend/internal/leads/domain"
)

func TestAgentRollupCountsUniqueLeads(t *testing.T) {
	leads := []domain.Lead{
		{ID: "L1", Outcome: domain.OutcomeEffectiveContact, LatestSubcategory: "116"},
		{ID: "L2", Outcome: domain.OutcomeNotContacted},
	}
	events := []domain.ContactEvent{
		{DedupKey: "e1", LeadID: "L1", Agent: "AGOMEZ"},
		{DedupKey: "e2", LeadID: "L1", Agent: "AGOMEZ", SaleID: 77},
		{DedupKey: "e3", LeadID: "L2", Agent: "AGOMEZ"},
	}

	rows := ComputeAgentRollup(leads, events, "116", AgentRollupLimit)
	if len(rows) != 1 {
		t.Fatalf("expected 1 agent, got %+v", rows)
	}
	want := AgentRow{
		Agent:                 "AGOMEZ",
		TotalEvents:           3,
		DistinctLeads:         2,
		ContactedLeads:        1,
		EffectiveContactLeads: 1,
		NotContactedLeads:     1,
		EnrolledLeads:         1,
		Sales:                 1,
	}
	if rows[0] != want {
		t.Fatalf("expected %+v, got %+v", want, rows[0])
	}
}

func TestAgentRollupSkipsDuplicatesOrphansAndBlankAgents(t *testing.T) {
	leads := []domain.Lead{{ID: "L1", Outcome: domain.OutcomeContacted}}
	events := []domain.ContactEvent{
		{DedupKey: "e1", LeadID: "L1", Agent: "BRUIZ"},
		{DedupKey: "e1", LeadID: "L1", Agent: "BRUIZ"},
		{DedupKey: "e2", LeadID: "missing", Agent: "BRUIZ"},
		{DedupKey: "e3", LeadID: "L1", Agent: ""},
	}

	rows := ComputeAgentRollup(leads, events, "116", AgentRollupLimit)
	if len(rows) != 1 || rows[0].TotalEvents != 1 || rows[0].DistinctLeads != 1 {
		t.Fatalf("expected one event on one lead, got %+v", rows)
	}
}

func TestAgentRollupOrderingAndLimit(t *testing.T) {
	leads := []domain.Lead{{ID: "L1"}}
	events := []domain.ContactEvent{
		{DedupKey: "1", LeadID: "L1", Agent: "ZETA"},
		{DedupKey: "2", LeadID: "L1", Agent: "ALFA"},
		{DedupKey: "3", LeadID: "L1", Agent: "MEDIO"},
		{DedupKey: "4", LeadID: "L1", Agent: "MEDIO"},
	}

	rows := ComputeAgentRollup(leads, events, "116", 2)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", rows)
	}
	if rows[0].Agent != "MEDIO" || rows[1].Agent != "ALFA" {
		t.Fatalf("expected MEDIO then ALFA, got %s then %s", rows[0].Agent, rows[1].Agent)
	}
}
