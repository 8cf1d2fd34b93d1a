package domain

// Filter restricts a snapshot to one source base. The zero value means no restriction.
type Filter struct {
	SourceBase string
}

// MatchesLead reports whether l passes the filter.
func (f Filter) MatchesLead(l Lead) bool {
	return f.SourceBase == "" || l.SourceBase == f.SourceBase
}

// MatchesEvent reports whether e passes the filter.
func (f Filter) MatchesEvent(e ContactEvent) bool {
	return f.SourceBase == "" || e.SourceBase == f.SourceBase
}

// Label is the filter's display and cache-key form.
func (f Filter) Label() string {
	if f.SourceBase == "" {
		return "all"
	}
	return f.SourceBase
}
