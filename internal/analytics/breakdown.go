package analytics

import (
	"sort"

	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/apperr"
)

const (
	// DefaultProgramLimit is the program breakdown size when none is requested.
	DefaultProgramLimit = 15
	// MaxProgramLimit bounds the program breakdown size.
	MaxProgramLimit = 100
)

// groupCount accumulates totals per category in first-seen order.
type groupCount struct {
	order []string
	index map[string]int
	total []int
	eff   []int
}

func newGroupCount() *groupCount {
	return &groupCount{index: make(map[string]int)}
}

func (g *groupCount) add(key string, effective bool) {
	i, ok := g.index[key]
	if !ok {
		i = len(g.order)
		g.index[key] = i
		g.order = append(g.order, key)
		g.total = append(g.total, 0)
		g.eff = append(g.eff, 0)
	}
	g.total[i]++
	if effective {
		g.eff[i]++
	}
}

// ranked returns category positions sorted by total descending. The stable
// sort keeps first-seen order between ties.
func (g *groupCount) ranked() []int {
	idx := make([]int, len(g.order))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return g.total[idx[a]] > g.total[idx[b]] })
	return idx
}

// BreakdownByChannel groups leads by acquisition channel, largest first.
// Leads without a channel are left out.
func BreakdownByChannel(leads []domain.Lead) []ChannelRow {
	groups := newGroupCount()
	for _, lead := range leads {
		if lead.Channel == "" {
			continue
		}
		groups.add(lead.Channel, lead.Outcome.IsEffective())
	}

	rows := make([]ChannelRow, 0, len(groups.order))
	for _, i := range groups.ranked() {
		rows = append(rows, ChannelRow{Channel: groups.order[i], Total: groups.total[i], Effective: groups.eff[i]})
	}
	return rows
}

// BreakdownByProgram groups leads by program of interest, largest first,
// truncated to limit. Leads without a program are left out.
func BreakdownByProgram(leads []domain.Lead, limit int) []ProgramRow {
	groups := newGroupCount()
	for _, lead := range leads {
		if !lead.HasProgram() {
			continue
		}
		groups.add(lead.ProgramOfInterest, lead.Outcome.IsEffective())
	}

	ranked := groups.ranked()
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	rows := make([]ProgramRow, 0, len(ranked))
	for _, i := range ranked {
		rows = append(rows, ProgramRow{Program: groups.order[i], Total: groups.total[i], Effective: groups.eff[i]})
	}
	return rows
}

// ResolveProgramLimit applies the default and bounds of the program limit.
func ResolveProgramLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultProgramLimit, nil
	}
	if limit < 1 || limit > MaxProgramLimit {
		return 0, apperr.InvalidArgument("limit must be between 1 and 100").
			WithOp("analytics.ResolveProgramLimit").
			WithDetails(map[string]int{"limit": limit})
	}
	return limit, nil
}
