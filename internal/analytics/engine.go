package analytics

import (
	"context"
	"errors"
	"sort"
	"time"

	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/apperr"
	"contactcenter_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout = 15 * time.Second
	defaultWorkers = 4

	sourceLeads  = "leads"
	sourceEvents = "events"
	sourceBases  = "bases"
)

// Options tunes an Engine. Zero values fall back to defaults.
type Options struct {
	Timeout        time.Duration
	Workers        int
	EnrollmentCode string
	Logger         *logger.Logger
	Metrics        FetchObserver
}

// Engine serves dashboard aggregates. Each call takes one snapshot from the
// stores under a single deadline and computes from it.
type Engine struct {
	leads   LeadStore
	events  EventStore
	bases   BaseStore
	timeout time.Duration
	workers int
	code    string
	log     *logger.Logger
	metrics FetchObserver
}

// New creates an Engine over the given stores.
func New(leads LeadStore, events EventStore, bases BaseStore, opts Options) *Engine {
	e := &Engine{
		leads:   leads,
		events:  events,
		bases:   bases,
		timeout: opts.Timeout,
		workers: opts.Workers,
		code:    opts.EnrollmentCode,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
	if e.timeout <= 0 {
		e.timeout = defaultTimeout
	}
	if e.workers <= 0 {
		e.workers = defaultWorkers
	}
	if e.code == "" {
		e.code = domain.DefaultEnrollmentCode
	}
	if e.log == nil {
		e.log = logger.Nop()
	}
	if e.metrics == nil {
		e.metrics = nopObserver{}
	}
	return e
}

// EnrollmentCode returns the subcategory value counted as enrolled.
func (e *Engine) EnrollmentCode() string {
	return e.code
}

// KPIs returns the headline counters.
func (e *Engine) KPIs(ctx context.Context, filter domain.Filter) (KPISet, error) {
	snap, err := e.snapshot(ctx, filter, false)
	if err != nil {
		return KPISet{}, err
	}
	return ComputeKPIs(snap.Leads, e.code), nil
}

// Funnel returns the four funnel stages.
func (e *Engine) Funnel(ctx context.Context, filter domain.Filter) ([]FunnelStage, error) {
	snap, err := e.snapshot(ctx, filter, false)
	if err != nil {
		return nil, err
	}
	return ComputeFunnel(snap.Leads, e.code), nil
}

// Trends returns the lead trend at the given granularity.
func (e *Engine) Trends(ctx context.Context, filter domain.Filter, g Granularity) ([]TrendRow, error) {
	if err := g.validate("analytics.Trends"); err != nil {
		return nil, err
	}
	snap, err := e.snapshot(ctx, filter, false)
	if err != nil {
		return nil, err
	}
	return ComputeTrends(snap.Leads, g, e.code), nil
}

// ByChannel returns the per-channel breakdown.
func (e *Engine) ByChannel(ctx context.Context, filter domain.Filter) ([]ChannelRow, error) {
	snap, err := e.snapshot(ctx, filter, false)
	if err != nil {
		return nil, err
	}
	return BreakdownByChannel(snap.Leads), nil
}

// ByProgram returns the per-program breakdown. A zero limit means the default.
func (e *Engine) ByProgram(ctx context.Context, filter domain.Filter, limit int) ([]ProgramRow, error) {
	limit, err := ResolveProgramLimit(limit)
	if err != nil {
		return nil, err
	}
	snap, err := e.snapshot(ctx, filter, false)
	if err != nil {
		return nil, err
	}
	return BreakdownByProgram(snap.Leads, limit), nil
}

// Agents returns the top agents by contact attempts.
func (e *Engine) Agents(ctx context.Context, filter domain.Filter) ([]AgentRow, error) {
	snap, err := e.snapshot(ctx, filter, true)
	if err != nil {
		return nil, err
	}
	return ComputeAgentRollup(snap.Leads, snap.Events, e.code, AgentRollupLimit), nil
}

// SearchLeads returns one page of the filtered lead listing.
func (e *Engine) SearchLeads(ctx context.Context, q SearchQuery) (SearchPage, error) {
	if err := q.Validate(); err != nil {
		return SearchPage{}, err
	}
	snap, err := e.snapshot(ctx, q.Filter, false)
	if err != nil {
		return SearchPage{}, err
	}
	return SearchLeads(snap.Leads, q)
}

// ExportLeads returns every matching lead in listing order, capped at
// MaxExportRows.
func (e *Engine) ExportLeads(ctx context.Context, q SearchQuery) ([]domain.Lead, error) {
	snap, err := e.snapshot(ctx, q.Filter, false)
	if err != nil {
		return nil, err
	}
	matches := MatchLeads(snap.Leads, q)
	if len(matches) > MaxExportRows {
		matches = matches[:MaxExportRows]
	}
	return matches, nil
}

// Bases lists the lead-source bases ordered by name.
func (e *Engine) Bases(ctx context.Context) ([]domain.Base, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	bases, err := e.bases.ListBases(ctx)
	e.observe(sourceBases, "all", len(bases), time.Since(start), err)
	if err != nil {
		return nil, storeError("analytics.Bases", sourceBases, err)
	}

	out := make([]domain.Base, len(bases))
	copy(out, bases)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Overview computes the first-load aggregates from a single snapshot.
func (e *Engine) Overview(ctx context.Context, filter domain.Filter, g Granularity, programLimit int) (Overview, error) {
	if err := g.validate("analytics.Overview"); err != nil {
		return Overview{}, err
	}
	programLimit, err := ResolveProgramLimit(programLimit)
	if err != nil {
		return Overview{}, err
	}
	snap, err := e.snapshot(ctx, filter, false)
	if err != nil {
		return Overview{}, err
	}

	var out Overview
	var wg errgroup.Group
	wg.SetLimit(e.workers)
	wg.Go(func() error {
		out.KPIs = ComputeKPIs(snap.Leads, e.code)
		out.Funnel = FunnelFromKPIs(out.KPIs)
		return nil
	})
	wg.Go(func() error {
		out.Trends = ComputeTrends(snap.Leads, g, e.code)
		return nil
	})
	wg.Go(func() error {
		out.Channels = BreakdownByChannel(snap.Leads)
		return nil
	})
	wg.Go(func() error {
		out.Programs = BreakdownByProgram(snap.Leads, programLimit)
		return nil
	})
	if err := wg.Wait(); err != nil {
		return Overview{}, err
	}
	return out, nil
}

// Summarize builds the compact summary used as text-generation context.
func (e *Engine) Summarize(ctx context.Context, filter domain.Filter) (Summary, error) {
	snap, err := e.snapshot(ctx, filter, true)
	if err != nil {
		return Summary{}, err
	}
	return BuildSummary(snap, e.code), nil
}

// snapshot fetches leads, and events when needed, concurrently under one
// deadline. Any failure fails the whole snapshot.
func (e *Engine) snapshot(ctx context.Context, filter domain.Filter, withEvents bool) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	snap := Snapshot{Filter: filter}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	g.Go(func() error {
		start := time.Now()
		leads, err := e.leads.FetchLeads(gctx, filter)
		e.observe(sourceLeads, filter.Label(), len(leads), time.Since(start), err)
		if err != nil {
			return storeError("analytics.snapshot", sourceLeads, err)
		}
		snap.Leads = filterLeads(leads, filter)
		return nil
	})

	if withEvents {
		g.Go(func() error {
			start := time.Now()
			events, err := e.events.FetchEvents(gctx, filter)
			e.observe(sourceEvents, filter.Label(), len(events), time.Since(start), err)
			if err != nil {
				return storeError("analytics.snapshot", sourceEvents, err)
			}
			snap.Events = filterEvents(events, filter)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	// A store that ignores ctx can still return after cancellation.
	if err := ctx.Err(); err != nil {
		return Snapshot{}, storeError("analytics.snapshot", sourceLeads, err)
	}
	return snap, nil
}

func (e *Engine) observe(source, base string, rows int, elapsed time.Duration, err error) {
	e.log.AnalyticsFetch(source, base, rows, elapsed, err)
	e.metrics.ObserveFetch(source, base, rows, elapsed, err)
}

// storeError keeps typed errors and turns everything else into KindUnavailable.
func storeError(op, source string, err error) error {
	var typed *apperr.Error
	if errors.As(err, &typed) {
		return err
	}
	msg := source + " store unavailable"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = source + " store timed out"
	}
	return apperr.Unavailable(msg, err).WithOp(op)
}
