package analytics

import (
	"sort"
	"strings"
	"time"

	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/apperr"
)

// Granularity is the date-truncation unit of a trend.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity maps a period parameter to a Granularity. Blank input
// defaults to week.
func ParseGranularity(raw string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(raw))) {
	case "", GranularityWeek:
		return GranularityWeek, nil
	case GranularityDay:
		return GranularityDay, nil
	case GranularityMonth:
		return GranularityMonth, nil
	default:
		return "", apperr.InvalidArgument("period must be one of day, week, month").
			WithOp("analytics.ParseGranularity").
			WithDetails(map[string]string{"period": raw})
	}
}

// Truncate maps a calendar date to the first day of its bucket. Weeks start
// on Monday: the date moves back by its weekday index with Monday=0.
func (g Granularity) Truncate(t time.Time) time.Time {
	day := domain.CivilDate(t)
	switch g {
	case GranularityWeek:
		return day.AddDate(0, 0, -weekdayIndex(day))
	case GranularityMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

func (g Granularity) validate(op string) error {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return nil
	}
	return apperr.InvalidArgument("period must be one of day, week, month").
		WithOp(op).
		WithDetails(map[string]string{"period": string(g)})
}

func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ComputeTrends buckets leads by lead date. Leads without a date are skipped,
// empty buckets are not emitted and rows are ascending by period.
func ComputeTrends(leads []domain.Lead, g Granularity, enrollmentCode string) []TrendRow {
	buckets := make(map[time.Time]*TrendRow)

	for _, lead := range leads {
		if lead.LeadDate == nil {
			continue
		}
		key := g.Truncate(*lead.LeadDate)
		row, ok := buckets[key]
		if !ok {
			row = &TrendRow{Period: key.Format(domain.DateLayout)}
			buckets[key] = row
		}
		row.Leads++
		if lead.Outcome.IsEffective() {
			row.Effective++
		}
		if lead.IsEnrolled(enrollmentCode) {
			row.Enrolled++
		}
	}

	keys := make([]time.Time, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	rows := make([]TrendRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, *buckets[k])
	}
	return rows
}

// RecentBuckets returns the last n rows of an ascending trend, most recent first.
func RecentBuckets(rows []TrendRow, n int) []TrendRow {
	if n > len(rows) {
		n = len(rows)
	}
	out := make([]TrendRow, 0, n)
	for i := len(rows) - 1; i >= len(rows)-n; i-- {
		out = append(out, rows[i])
	}
	return out
}
