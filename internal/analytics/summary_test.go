package analytics

import (
	"encoding/json"
	"fmt"
	"testing"

	"contactcenter_backend/internal/leads/domain"
)

func TestBuildSummaryShape(t *testing.T) {
	var leads []domain.Lead
	for i := 0; i < 12; i++ {
		leads = append(leads, domain.Lead{
			ID:                fmt.Sprintf("L%02d", i),
			Channel:           fmt.Sprintf("C%d", i%7),
			ProgramOfInterest: fmt.Sprintf("P%d", i%6),
			LeadDate:          date(t, fmt.Sprintf("2024-01-%02d", 1+i*7%28)),
		})
	}
	leads = append(leads, domain.Lead{ID: "late", LeadDate: date(t, "2024-06-05")})

	s := BuildSummary(Snapshot{Filter: domain.Filter{SourceBase: "X"}, Leads: leads}, "116")
	if s.Base != "X" {
		t.Fatalf("expected base X, got %q", s.Base)
	}
	if len(s.TopChannels) != 5 || len(s.TopPrograms) != 5 {
		t.Fatalf("expected top 5 channels and programs, got %d and %d", len(s.TopChannels), len(s.TopPrograms))
	}
	if len(s.WeeklyTrend) == 0 || s.WeeklyTrend[0].Period != "2024-06-03" {
		t.Fatalf("expected most recent week first, got %+v", s.WeeklyTrend)
	}
	if len(s.WeeklyTrend) > 8 {
		t.Fatalf("expected at most 8 weeks, got %d", len(s.WeeklyTrend))
	}
	if s.GeneratedFrom.Leads != len(leads) {
		t.Fatalf("expected generated_from %d, got %d", len(leads), s.GeneratedFrom.Leads)
	}
}

func TestBuildSummaryIsIdempotent(t *testing.T) {
	snap := Snapshot{
		Leads: threeLeads(),
		Events: []domain.ContactEvent{
			{DedupKey: "1", LeadID: "2", Agent: "B"},
			{DedupKey: "2", LeadID: "3", Agent: "A"},
		},
	}

	first, err := json.Marshal(BuildSummary(snap, "116"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(BuildSummary(snap, "116"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("expected identical output\n%s\n%s", first, second)
	}
}
