package service

import (
	"context"
	"errors"

	"contactcenter_backend/internal/analytics"
	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/cache"
	"contactcenter_backend/platform/logger"
)

// Summarizer computes a fresh summary.
type Summarizer interface {
	Summarize(ctx context.Context, filter domain.Filter) (analytics.Summary, error)
}

// SummaryCache stores summaries by filter label.
type SummaryCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
}

// SummaryStore serves summaries from the cache, computing them on a miss.
// Cache outages are logged and bypassed. A nil cache disables caching.
type SummaryStore struct {
	engine Summarizer
	cache  SummaryCache
	log    *logger.Logger
}

func NewSummaryStore(engine Summarizer, c SummaryCache, log *logger.Logger) *SummaryStore {
	return &SummaryStore{engine: engine, cache: c, log: log}
}

// Get returns the cached summary for filter, or computes and caches it.
func (s *SummaryStore) Get(ctx context.Context, filter domain.Filter) (analytics.Summary, error) {
	if s.cache != nil {
		var cached analytics.Summary
		err := s.cache.Get(ctx, summaryKey(filter), &cached)
		switch {
		case err == nil:
			return cached, nil
		case !errors.Is(err, cache.ErrMiss):
			s.log.WithContext(ctx).Warn("summary cache read failed", "base", filter.Label(), "error", err)
		}
	}
	return s.Refresh(ctx, filter)
}

// Refresh recomputes the summary for filter and writes it to the cache.
func (s *SummaryStore) Refresh(ctx context.Context, filter domain.Filter) (analytics.Summary, error) {
	summary, err := s.engine.Summarize(ctx, filter)
	if err != nil {
		return analytics.Summary{}, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, summaryKey(filter), summary); err != nil {
			s.log.WithContext(ctx).Warn("summary cache write failed", "base", filter.Label(), "error", err)
		}
	}
	return summary, nil
}

// summaryKey keeps the unfiltered entry apart from every named base.
func summaryKey(filter domain.Filter) string {
	if filter.SourceBase == "" {
		return "*"
	}
	return "base:" + filter.SourceBase
}
