package analytics

import (
	"sort"
	"strings"

	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/apperr"

	"golang.org/x/text/cases"
)

const (
	// MaxPerPage bounds the lead listing page size.
	MaxPerPage = 100
	// MaxExportRows bounds a CSV export.
	MaxExportRows = 50000
)

// SearchQuery selects and pages the raw lead listing. Empty string fields
// mean no restriction.
type SearchQuery struct {
	Filter  domain.Filter
	Channel string
	Outcome domain.Outcome
	Text    string
	Page    int
	PerPage int
}

// SearchPage is one page of the ordered, filtered lead listing.
type SearchPage struct {
	Rows    []domain.Lead
	Total   int
	Page    int
	PerPage int
}

// Validate rejects out-of-range pagination instead of clamping it.
func (q SearchQuery) Validate() error {
	if q.Page < 1 {
		return apperr.InvalidArgument("page must be >= 1").
			WithOp("analytics.SearchLeads").
			WithDetails(map[string]int{"page": q.Page})
	}
	if q.PerPage < 1 || q.PerPage > MaxPerPage {
		return apperr.InvalidArgument("per_page must be between 1 and 100").
			WithOp("analytics.SearchLeads").
			WithDetails(map[string]int{"per_page": q.PerPage})
	}
	return nil
}

// SearchLeads filters, orders and pages leads. Total counts every match
// before paging; an offset past the end yields an empty page.
func SearchLeads(leads []domain.Lead, q SearchQuery) (SearchPage, error) {
	if err := q.Validate(); err != nil {
		return SearchPage{}, err
	}

	matches := MatchLeads(leads, q)

	page := SearchPage{Rows: []domain.Lead{}, Total: len(matches), Page: q.Page, PerPage: q.PerPage}
	offset := (q.Page - 1) * q.PerPage
	if offset >= len(matches) {
		return page, nil
	}
	end := min(offset+q.PerPage, len(matches))
	page.Rows = matches[offset:end]
	return page, nil
}

// MatchLeads returns every lead passing the query's filters in listing
// order. Pagination fields are ignored.
func MatchLeads(leads []domain.Lead, q SearchQuery) []domain.Lead {
	match := newTextMatcher(q.Text)
	matches := make([]domain.Lead, 0, len(leads))
	for _, lead := range leads {
		if !q.Filter.MatchesLead(lead) {
			continue
		}
		if q.Channel != "" && lead.Channel != q.Channel {
			continue
		}
		if q.Outcome != "" && lead.Outcome != q.Outcome {
			continue
		}
		if !match(lead) {
			continue
		}
		matches = append(matches, lead)
	}

	sortByLeadDateDesc(matches)
	return matches
}

// newTextMatcher returns a case-insensitive substring matcher over name,
// email and phone. A blank term matches everything.
func newTextMatcher(term string) func(domain.Lead) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return func(domain.Lead) bool { return true }
	}

	folder := cases.Fold()
	needle := folder.String(term)
	return func(lead domain.Lead) bool {
		for _, field := range [...]string{lead.Name, lead.Email, lead.Phone} {
			if field != "" && strings.Contains(folder.String(field), needle) {
				return true
			}
		}
		return false
	}
}

// sortByLeadDateDesc orders by lead date, newest first, with undated leads
// last and id as the tie breaker.
func sortByLeadDateDesc(leads []domain.Lead) {
	sort.SliceStable(leads, func(i, j int) bool {
		a, b := leads[i].LeadDate, leads[j].LeadDate
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		default:
			return leads[i].ID < leads[j].ID
		}
	})
}
