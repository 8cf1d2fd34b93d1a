// Package analytics is the lead analytics aggregation engine. It turns a
// snapshot of leads and contact events into dashboard metrics. Every
// aggregate is a pure function of the snapshot; the Engine only adds
// fetching, argument validation and fan-out.
package analytics

import "contactcenter_backend/internal/leads/domain"

// KPISet holds the headline counters for a filtered lead collection.
type KPISet struct {
	TotalLeads       int     `json:"total_leads"`
	Contacted        int     `json:"contacted"`
	NotContacted     int     `json:"not_contacted"`
	EffectiveContact int     `json:"effective_contact"`
	Enrolled         int     `json:"enrolled"`
	AvgTouches       float64 `json:"avg_touches"`
}

// FunnelStage is one ordered step of the conversion funnel.
type FunnelStage struct {
	Stage string `json:"stage"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// TrendRow is one non-empty time bucket.
type TrendRow struct {
	Period    string `json:"period"`
	Leads     int    `json:"leads"`
	Effective int    `json:"effective"`
	Enrolled  int    `json:"enrolled"`
}

// ChannelRow is the per-channel breakdown.
type ChannelRow struct {
	Channel   string `json:"channel"`
	Total     int    `json:"total"`
	Effective int    `json:"effective"`
}

// ProgramRow is the per-program breakdown.
type ProgramRow struct {
	Program   string `json:"program"`
	Total     int    `json:"total"`
	Effective int    `json:"effective"`
}

// AgentRow is the per-agent rollup. The *Leads fields count unique leads,
// never events.
type AgentRow struct {
	Agent                 string `json:"agent"`
	TotalEvents           int    `json:"total_events"`
	DistinctLeads         int    `json:"distinct_leads"`
	ContactedLeads        int    `json:"contacted_leads"`
	EffectiveContactLeads int    `json:"effective_contact_leads"`
	NotContactedLeads     int    `json:"not_contacted_leads"`
	EnrolledLeads         int    `json:"enrolled_leads"`
	Sales                 int    `json:"sales"`
}

// Overview bundles the aggregates a dashboard renders on first load.
type Overview struct {
	KPIs     KPISet        `json:"kpis"`
	Funnel   []FunnelStage `json:"funnel"`
	Trends   []TrendRow    `json:"trends"`
	Channels []ChannelRow  `json:"channels"`
	Programs []ProgramRow  `json:"programs"`
}

// Snapshot is the immutable input of one aggregation request.
type Snapshot struct {
	Filter domain.Filter
	Leads  []domain.Lead
	Events []domain.ContactEvent
}
