package analytics

import (
	"testing"
	"time"

	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/apperr"
)

func TestWeekTruncatesToMonday(t *testing.T) {
	wednesday := time.Date(2024, time.May, 8, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC)

	if got := GranularityWeek.Truncate(wednesday); !got.Equal(monday) {
		t.Fatalf("expected %s, got %s", monday, got)
	}
	if got := GranularityWeek.Truncate(monday); !got.Equal(monday) {
		t.Fatalf("expected Monday to map to itself, got %s", got)
	}
	if got := GranularityWeek.Truncate(sunday); !got.Equal(monday) {
		t.Fatalf("expected Sunday to map to the previous Monday, got %s", got)
	}
}

func TestMonthAndDayTruncate(t *testing.T) {
	d := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if got := GranularityMonth.Truncate(d).Format(domain.DateLayout); got != "2024-02-01" {
		t.Fatalf("expected 2024-02-01, got %s", got)
	}
	if got := GranularityDay.Truncate(d).Format(domain.DateLayout); got != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %s", got)
	}
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	if err != nil || g != GranularityWeek {
		t.Fatalf("expected default week, got %q (err %v)", g, err)
	}
	g, err = ParseGranularity("Month")
	if err != nil || g != GranularityMonth {
		t.Fatalf("expected month, got %q (err %v)", g, err)
	}
	if _, err := ParseGranularity("year"); !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestComputeTrendsSkipsUndatedAndSortsAscending(t *testing.T) {
	leads := []domain.Lead{
		{ID: "1", LeadDate: date(t, "2024-05-15"), Outcome: domain.OutcomeEffectiveContact, LatestSubcategory: "116"},
		{ID: "2", LeadDate: date(t, "2024-05-08")},
		{ID: "3", LeadDate: date(t, "2024-05-06"), Outcome: domain.OutcomeEffectiveContact},
		{ID: "4"},
	}

	rows := ComputeTrends(leads, GranularityWeek, "116")
	if len(rows) != 2 {
		t.Fatalf("expected 2 buckets, got %d: %+v", len(rows), rows)
	}
	if rows[0] != (TrendRow{Period: "2024-05-06", Leads: 2, Effective: 1}) {
		t.Fatalf("unexpected first bucket %+v", rows[0])
	}
	if rows[1] != (TrendRow{Period: "2024-05-13", Leads: 1, Effective: 1, Enrolled: 1}) {
		t.Fatalf("unexpected second bucket %+v", rows[1])
	}
}

func TestRecentBuckets(t *testing.T) {
	rows := []TrendRow{{Period: "a"}, {Period: "b"}, {Period: "c"}}
	got := RecentBuckets(rows, 2)
	if len(got) != 2 || got[0].Period != "c" || got[1].Period != "b" {
		t.Fatalf("expected [c b], got %+v", got)
	}
	if got := RecentBuckets(rows, 10); len(got) != 3 || got[2].Period != "a" {
		t.Fatalf("expected all rows reversed, got %+v", got)
	}
}
