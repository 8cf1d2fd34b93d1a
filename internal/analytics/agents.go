package analytics

import (
	"sort"

	"contactcenter_backend/internal/leads/domain"
)

// AgentRollupLimit is the number of agents returned by the rollup.
const AgentRollupLimit = 20

type agentAcc struct {
	events int
	sales  int
	leads  map[string]struct{}
}

// ComputeAgentRollup joins events to leads by lead id and aggregates per
// agent. Events without an agent, events whose lead is not in the snapshot
// and replays of an already seen dedup key are ignored. Rows are sorted by
// event count descending, then agent name, and cut to limit.
func ComputeAgentRollup(leads []domain.Lead, events []domain.ContactEvent, enrollmentCode string, limit int) []AgentRow {
	byID := make(map[string]domain.Lead, len(leads))
	for _, lead := range leads {
		byID[lead.ID] = lead
	}

	seen := make(map[string]struct{}, len(events))
	accs := make(map[string]*agentAcc)

	for _, ev := range events {
		if ev.Agent == "" {
			continue
		}
		if _, ok := byID[ev.LeadID]; !ok {
			continue
		}
		if ev.DedupKey != "" {
			if _, dup := seen[ev.DedupKey]; dup {
				continue
			}
			seen[ev.DedupKey] = struct{}{}
		}

		acc, ok := accs[ev.Agent]
		if !ok {
			acc = &agentAcc{leads: make(map[string]struct{})}
			accs[ev.Agent] = acc
		}
		acc.events++
		if ev.IsSale() {
			acc.sales++
		}
		acc.leads[ev.LeadID] = struct{}{}
	}

	rows := make([]AgentRow, 0, len(accs))
	for agent, acc := range accs {
		row := AgentRow{
			Agent:         agent,
			TotalEvents:   acc.events,
			DistinctLeads: len(acc.leads),
			Sales:         acc.sales,
		}
		for leadID := range acc.leads {
			lead := byID[leadID]
			if lead.Outcome.IsContacted() {
				row.ContactedLeads++
			}
			if lead.Outcome.IsEffective() {
				row.EffectiveContactLeads++
			}
			if lead.Outcome.IsNotContacted() {
				row.NotContactedLeads++
			}
			if lead.IsEnrolled(enrollmentCode) {
				row.EnrolledLeads++
			}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalEvents != rows[j].TotalEvents {
			return rows[i].TotalEvents > rows[j].TotalEvents
		}
		return rows[i].Agent < rows[j].Agent
	})

	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
