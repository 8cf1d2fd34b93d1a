package transport

import (
	"contactcenter_backend/internal/insights/service"
	"contactcenter_backend/internal/leads/domain"
)

type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"max=4000"`
}

type ChatRequest struct {
	Message string     `json:"message" validate:"required,min=1,max=2000"`
	History []ChatTurn `json:"history" validate:"max=50,dive"`
	Base    string     `json:"base" validate:"max=200"`
}

func (r ChatRequest) Input() service.ChatInput {
	history := make([]service.Turn, 0, len(r.History))
	for _, turn := range r.History {
		history = append(history, service.Turn{Role: turn.Role, Content: turn.Content})
	}
	return service.ChatInput{
		Message: r.Message,
		History: history,
		Filter:  domain.Filter{SourceBase: r.Base},
	}
}

type ChatResponse struct {
	Response string `json:"response"`
	Degraded bool   `json:"degraded"`
	Error    string `json:"error,omitempty"`
}

type BaseQuery struct {
	Base string `form:"base" validate:"max=200"`
}

func (q BaseQuery) Filter() domain.Filter {
	return domain.Filter{SourceBase: q.Base}
}

type InsightsResponse struct {
	Insights []service.Insight `json:"insights"`
	Degraded bool              `json:"degraded"`
}

type PredictionsResponse struct {
	Predictions []service.Prediction `json:"predictions"`
	Degraded    bool                 `json:"degraded"`
}
