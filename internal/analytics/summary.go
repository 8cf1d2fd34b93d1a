package analytics

import "contactcenter_backend/internal/leads/domain"

const (
	summaryTopChannels = 5
	summaryTopPrograms = 5
	summaryTopAgents   = 20
	summaryRecentWeeks = 8
)

// Summary is the compact snapshot handed to the text-generation collaborator.
type Summary struct {
	Base        string        `json:"base"`
	KPIs        KPISet        `json:"kpis"`
	Funnel      []FunnelStage `json:"funnel"`
	TopChannels []ChannelRow  `json:"top_channels"`
	TopPrograms []ProgramRow  `json:"top_programs"`
	TopAgents   []AgentRow    `json:"top_agents"`
	WeeklyTrend []TrendRow    `json:"weekly_trend"`
	// GeneratedFrom records the snapshot size the summary was computed from.
	GeneratedFrom SnapshotSize `json:"generated_from"`
}

// SnapshotSize counts the records of a snapshot.
type SnapshotSize struct {
	Leads  int `json:"leads"`
	Events int `json:"events"`
}

// BuildSummary shapes a snapshot into a Summary. Weekly buckets are the most
// recent non-empty weeks, newest first.
func BuildSummary(snap Snapshot, enrollmentCode string) Summary {
	kpis := ComputeKPIs(snap.Leads, enrollmentCode)
	channels := BreakdownByChannel(snap.Leads)
	if len(channels) > summaryTopChannels {
		channels = channels[:summaryTopChannels]
	}

	return Summary{
		Base:          snap.Filter.Label(),
		KPIs:          kpis,
		Funnel:        FunnelFromKPIs(kpis),
		TopChannels:   channels,
		TopPrograms:   BreakdownByProgram(snap.Leads, summaryTopPrograms),
		TopAgents:     ComputeAgentRollup(snap.Leads, snap.Events, enrollmentCode, summaryTopAgents),
		WeeklyTrend:   RecentBuckets(ComputeTrends(snap.Leads, GranularityWeek, enrollmentCode), summaryRecentWeeks),
		GeneratedFrom: SnapshotSize{Leads: len(snap.Leads), Events: len(snap.Events)},
	}
}

func filterLeads(leads []domain.Lead, f domain.Filter) []domain.Lead {
	if f.SourceBase == "" {
		return leads
	}
	out := make([]domain.Lead, 0, len(leads))
	for _, lead := range leads {
		if f.MatchesLead(lead) {
			out = append(out, lead)
		}
	}
	return out
}

func filterEvents(events []domain.ContactEvent, f domain.Filter) []domain.ContactEvent {
	if f.SourceBase == "" {
		return events
	}
	out := make([]domain.ContactEvent, 0, len(events))
	for _, ev := range events {
		if f.MatchesEvent(ev) {
			out = append(out, ev)
		}
	}
	return out
}
