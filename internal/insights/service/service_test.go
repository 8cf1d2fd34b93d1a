package service

import (
	"context"
	"errors"
	"iter"
	"strings"
	"sync"
	"testing"

	"contactcenter_backend/internal/analytics"
	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/apperr"
	"contactcenter_backend/platform/cache"
	"contactcenter_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

type fakeLLM struct {
	mu    sync.Mutex
	reply string
	err   error
	reqs  []*model.LLMRequest
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) GenerateContent(_ context.Context, req *model.LLMRequest, _ bool) iter.Seq2[*model.LLMResponse, error] {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	return func(yield func(*model.LLMResponse, error) bool) {
		if f.err != nil {
			yield(nil, f.err)
			return
		}
		yield(&model.LLMResponse{Content: genai.NewContentFromText(f.reply, genai.RoleModel)}, nil)
	}
}

type fakeSummarizer struct {
	calls int
	err   error
}

func (f *fakeSummarizer) Summarize(_ context.Context, filter domain.Filter) (analytics.Summary, error) {
	f.calls++
	if f.err != nil {
		return analytics.Summary{}, f.err
	}
	return analytics.Summary{Base: filter.Label(), KPIs: analytics.KPISet{TotalLeads: 42}}, nil
}

type degradeCounter struct {
	kinds []string
}

func (d *degradeCounter) GenerationDegraded(kind string) {
	d.kinds = append(d.kinds, kind)
}

func newService(llm model.LLM, sum Summarizer, obs DegradeObserver) *Service {
	return New(llm, NewSummaryStore(sum, nil, logger.Nop()), logger.Nop(), obs)
}

func TestChatSendsPreambleAndTrimsHistory(t *testing.T) {
	llm := &fakeLLM{reply: "Hay 42 leads."}
	svc := newService(llm, &fakeSummarizer{}, nil)

	history := make([]Turn, 0, 8)
	for i := 0; i < 8; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history = append(history, Turn{Role: role, Content: string(rune('a' + i))})
	}

	res, err := svc.Chat(context.Background(), ChatInput{Message: "¿Cuántos leads?", History: history})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if res.Degraded || res.Response != "Hay 42 leads." {
		t.Fatalf("unexpected result: %+v", res)
	}

	req := llm.reqs[0]
	if len(req.Contents) != maxHistoryTurns+1 {
		t.Fatalf("expected %d contents, got %d", maxHistoryTurns+1, len(req.Contents))
	}
	if req.Contents[0].Parts[0].Text != "c" {
		t.Fatalf("expected oldest kept turn to be c, got %q", req.Contents[0].Parts[0].Text)
	}
	if req.Contents[1].Role != genai.RoleModel {
		t.Fatalf("expected assistant turn mapped to model role, got %q", req.Contents[1].Role)
	}
	system := req.Config.SystemInstruction.Parts[0].Text
	if !strings.HasPrefix(system, chatPreamble) || !strings.Contains(system, `"total_leads":42`) {
		t.Fatalf("system instruction missing preamble or summary: %q", system)
	}
	if *req.Config.Temperature != 0.3 || req.Config.MaxOutputTokens != 800 {
		t.Fatalf("unexpected params: temp=%v max=%d", *req.Config.Temperature, req.Config.MaxOutputTokens)
	}
}

func TestChatDegradesOnGenerationFailure(t *testing.T) {
	obs := &degradeCounter{}
	svc := newService(&fakeLLM{err: errors.New("429 rate limited")}, &fakeSummarizer{}, obs)

	res, err := svc.Chat(context.Background(), ChatInput{Message: "hola"})
	if err != nil {
		t.Fatalf("expected degraded result, got error %v", err)
	}
	if !res.Degraded || res.Response == "" || res.Error == "" {
		t.Fatalf("expected degraded response, got %+v", res)
	}
	if strings.Contains(res.Error, "429") {
		t.Fatalf("upstream detail leaked to client: %q", res.Error)
	}
	if len(obs.kinds) != 1 || obs.kinds[0] != kindChat {
		t.Fatalf("expected one chat degradation, got %v", obs.kinds)
	}
}

func TestNilModelDegrades(t *testing.T) {
	svc := newService(nil, &fakeSummarizer{}, nil)

	res, err := svc.Predictions(context.Background(), domain.Filter{})
	if err != nil {
		t.Fatalf("predictions: %v", err)
	}
	if !res.Degraded || len(res.Predictions) != 0 || res.Predictions == nil {
		t.Fatalf("expected degraded empty predictions, got %+v", res)
	}
}

func TestInsightsParsesAndFallsBack(t *testing.T) {
	llm := &fakeLLM{reply: "```json\n[{\"icon\":\"star\",\"title\":\"a\",\"description\":\"b\"}]\n```"}
	svc := newService(llm, &fakeSummarizer{}, nil)

	res, err := svc.Insights(context.Background(), domain.Filter{SourceBase: "BASE A"})
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if res.Degraded || len(res.Insights) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if llm.reqs[0].Config.MaxOutputTokens != 600 {
		t.Fatalf("expected 600 max tokens, got %d", llm.reqs[0].Config.MaxOutputTokens)
	}

	llm.reply = "lo siento, no tengo datos"
	res, err = svc.Insights(context.Background(), domain.Filter{})
	if err != nil {
		t.Fatalf("insights: %v", err)
	}
	if !res.Degraded || res.Insights[0].Description != "lo siento, no tengo datos" {
		t.Fatalf("expected fallback insight, got %+v", res)
	}
}

func TestStoreFailureIsNotDegraded(t *testing.T) {
	sum := &fakeSummarizer{err: apperr.Unavailable("leads store unavailable", errors.New("dial tcp"))}
	svc := newService(&fakeLLM{reply: "x"}, sum, nil)

	_, err := svc.Insights(context.Background(), domain.Filter{})
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestSummaryStoreCachesPerBase(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sum := &fakeSummarizer{}
	store := NewSummaryStore(sum, cache.NewJSONCache(client, "dashboard:summary", 0), logger.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := store.Get(ctx, domain.Filter{SourceBase: "BASE A"})
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Base != "BASE A" || got.KPIs.TotalLeads != 42 {
			t.Fatalf("unexpected summary: %+v", got)
		}
	}
	if sum.calls != 1 {
		t.Fatalf("expected one computation, got %d", sum.calls)
	}
	if !mr.Exists("dashboard:summary:base:BASE A") {
		t.Fatal("expected summary cached under base key")
	}

	if _, err := store.Refresh(ctx, domain.Filter{SourceBase: "BASE A"}); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if sum.calls != 2 {
		t.Fatalf("expected refresh to recompute, got %d calls", sum.calls)
	}
}

func TestSummaryStoreSeparatesUnfilteredFromBaseNamedAll(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sum := &fakeSummarizer{}
	store := NewSummaryStore(sum, cache.NewJSONCache(client, "dashboard:summary", 0), logger.Nop())
	ctx := context.Background()

	if _, err := store.Get(ctx, domain.Filter{}); err != nil {
		t.Fatalf("get unfiltered: %v", err)
	}
	if _, err := store.Get(ctx, domain.Filter{SourceBase: "all"}); err != nil {
		t.Fatalf("get base all: %v", err)
	}
	if sum.calls != 2 {
		t.Fatalf("expected 2 computations, got %d", sum.calls)
	}
	if !mr.Exists("dashboard:summary:*") || !mr.Exists("dashboard:summary:base:all") {
		t.Fatalf("expected distinct cache keys, got %v", mr.Keys())
	}
}

func TestSummaryStoreBypassesBrokenCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	sum := &fakeSummarizer{}
	store := NewSummaryStore(sum, cache.NewJSONCache(client, "dashboard:summary", 0), logger.Nop())

	got, err := store.Get(context.Background(), domain.Filter{})
	if err != nil {
		t.Fatalf("expected cache outage to be bypassed, got %v", err)
	}
	if got.Base != "all" {
		t.Fatalf("expected base all, got %q", got.Base)
	}
}

func TestGeneratedTextIsSanitized(t *testing.T) {
	llm := &fakeLLM{reply: "<p>La tasa es <b>25%</b></p>"}
	svc := newService(llm, &fakeSummarizer{}, nil)

	res, err := svc.Chat(context.Background(), ChatInput{Message: "tasa"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if res.Response != "La tasa es 25%" {
		t.Fatalf("expected sanitized response, got %q", res.Response)
	}
}
