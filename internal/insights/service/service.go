// Package service answers analyst questions and produces insights and
// forecasts by handing the dashboard summary to a text-generation model.
// Generation failures degrade the result instead of failing the request.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/apperr"
	"contactcenter_backend/platform/logger"
	"contactcenter_backend/platform/sanitize"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const (
	maxHistoryTurns = 6

	kindChat        = "chat"
	kindInsights    = "insights"
	kindPredictions = "predictions"
)

var errGenerationDisabled = errors.New("text generation is not configured")

// DegradeObserver counts degraded generations.
type DegradeObserver interface {
	GenerationDegraded(kind string)
}

// Turn is one prior chat message. Role is "user" or "assistant".
type Turn struct {
	Role    string
	Content string
}

type ChatInput struct {
	Message string
	History []Turn
	Filter  domain.Filter
}

type ChatResult struct {
	Response string
	Degraded bool
	Error    string
}

type InsightsResult struct {
	Insights []Insight
	Degraded bool
}

type PredictionsResult struct {
	Predictions []Prediction
	Degraded    bool
}

type Service struct {
	llm       model.LLM
	summaries *SummaryStore
	log       *logger.Logger
	observer  DegradeObserver
}

// New creates the service. A nil llm turns every generation into a degraded result.
func New(llm model.LLM, summaries *SummaryStore, log *logger.Logger, observer DegradeObserver) *Service {
	return &Service{llm: llm, summaries: summaries, log: log, observer: observer}
}

// Chat answers one analyst message with the summary and recent history as context.
func (s *Service) Chat(ctx context.Context, in ChatInput) (ChatResult, error) {
	blob, err := s.contextBlob(ctx, in.Filter)
	if err != nil {
		return ChatResult{}, err
	}

	history := in.History
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		if strings.TrimSpace(turn.Content) == "" {
			continue
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, roleFor(turn.Role)))
	}
	contents = append(contents, genai.NewContentFromText(in.Message, genai.RoleUser))

	text, err := s.generate(ctx, chatPreamble+blob, contents, chatParams)
	if err != nil {
		s.degraded(ctx, kindChat, err)
		return ChatResult{Response: chatFallback, Degraded: true, Error: publicReason(err)}, nil
	}
	return ChatResult{Response: sanitize.Text(text)}, nil
}

// Insights asks for four short observations about the current data.
func (s *Service) Insights(ctx context.Context, filter domain.Filter) (InsightsResult, error) {
	blob, err := s.contextBlob(ctx, filter)
	if err != nil {
		return InsightsResult{}, err
	}

	prompt := genai.NewContentFromText(fmt.Sprintf(insightsPrompt, blob), genai.RoleUser)
	text, err := s.generate(ctx, insightsInstruction, []*genai.Content{prompt}, insightsParams)
	if err != nil {
		s.degraded(ctx, kindInsights, err)
		return InsightsResult{Insights: []Insight{fallbackInsight(publicReason(err))}, Degraded: true}, nil
	}

	items, ok := parseInsights(text)
	for i := range items {
		items[i].Title = sanitize.Text(items[i].Title)
		items[i].Description = sanitize.Text(items[i].Description)
	}
	if !ok {
		s.degraded(ctx, kindInsights, apperr.Upstream("unparseable insights reply", nil))
	}
	return InsightsResult{Insights: items, Degraded: !ok}, nil
}

// Predictions asks for a four-period forecast.
func (s *Service) Predictions(ctx context.Context, filter domain.Filter) (PredictionsResult, error) {
	blob, err := s.contextBlob(ctx, filter)
	if err != nil {
		return PredictionsResult{}, err
	}

	prompt := genai.NewContentFromText(fmt.Sprintf(predictionsPrompt, blob), genai.RoleUser)
	text, err := s.generate(ctx, predictionsInstruction, []*genai.Content{prompt}, predictionsParams)
	if err != nil {
		s.degraded(ctx, kindPredictions, err)
		return PredictionsResult{Predictions: []Prediction{}, Degraded: true}, nil
	}

	items, ok := parsePredictions(text)
	if !ok {
		s.degraded(ctx, kindPredictions, apperr.Upstream("unparseable predictions reply", nil))
	}
	return PredictionsResult{Predictions: items, Degraded: !ok}, nil
}

func (s *Service) contextBlob(ctx context.Context, filter domain.Filter) (string, error) {
	summary, err := s.summaries.Get(ctx, filter)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "could not encode summary", err).WithOp("insights.contextBlob")
	}
	return string(raw), nil
}

func (s *Service) generate(ctx context.Context, system string, contents []*genai.Content, p generationParams) (string, error) {
	if s.llm == nil {
		return "", errGenerationDisabled
	}

	temp := p.temperature
	req := &model.LLMRequest{
		Model:    s.llm.Name(),
		Contents: contents,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			Temperature:       &temp,
			MaxOutputTokens:   p.maxTokens,
		},
	}

	var b strings.Builder
	for resp, err := range s.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			return "", apperr.Upstream("text generation failed", err)
		}
		if resp == nil || resp.Content == nil {
			continue
		}
		for _, part := range resp.Content.Parts {
			if part != nil {
				b.WriteString(part.Text)
			}
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", apperr.Upstream("empty generation", nil)
	}
	return text, nil
}

func (s *Service) degraded(ctx context.Context, kind string, err error) {
	s.log.WithContext(ctx).GenerationDegraded(kind, err)
	if s.observer != nil {
		s.observer.GenerationDegraded(kind)
	}
}

// publicReason is the client-facing reason for a degraded result. Upstream
// details stay in the logs.
func publicReason(err error) string {
	if errors.Is(err, errGenerationDisabled) {
		return errGenerationDisabled.Error()
	}
	return "text generation unavailable"
}

func roleFor(role string) genai.Role {
	if role == "assistant" || role == genai.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}
