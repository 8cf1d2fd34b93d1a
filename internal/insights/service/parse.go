package service

import (
	"encoding/json"
	"strings"
)

const (
	fallbackIcon        = "alert"
	fallbackTitle       = "Sin datos suficientes"
	fallbackDescription = 200
)

// Insight is one generated observation. Icon is passed through as returned
// by the model.
type Insight struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Prediction is one forecast period.
type Prediction struct {
	Period             string  `json:"period"`
	PredictedLeads     float64 `json:"predicted_leads"`
	PredictedEffective float64 `json:"predicted_effective"`
	Confidence         float64 `json:"confidence"`
}

// UnmarshalJSON also accepts the Spanish predicted_efectivos key.
func (p *Prediction) UnmarshalJSON(data []byte) error {
	var raw struct {
		Period             string   `json:"period"`
		PredictedLeads     float64  `json:"predicted_leads"`
		PredictedEffective *float64 `json:"predicted_effective"`
		PredictedEfectivos *float64 `json:"predicted_efectivos"`
		Confidence         float64  `json:"confidence"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Prediction{Period: raw.Period, PredictedLeads: raw.PredictedLeads, Confidence: raw.Confidence}
	switch {
	case raw.PredictedEffective != nil:
		p.PredictedEffective = *raw.PredictedEffective
	case raw.PredictedEfectivos != nil:
		p.PredictedEffective = *raw.PredictedEfectivos
	}
	return nil
}

// stripFences extracts the body of the first ``` fenced block, dropping an
// optional json language tag. Text without fences is returned trimmed.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, "```")
	if len(parts) < 2 {
		return raw
	}
	body := parts[1]
	body = strings.TrimPrefix(body, "json")
	return strings.TrimSpace(body)
}

// parseInsights decodes a model reply into insights. On failure it returns
// a single placeholder carrying the start of the reply and ok=false.
func parseInsights(raw string) ([]Insight, bool) {
	body := stripFences(raw)
	var items []Insight
	if err := json.Unmarshal([]byte(body), &items); err != nil || items == nil {
		return []Insight{fallbackInsight(body)}, false
	}
	return items, true
}

func fallbackInsight(body string) Insight {
	return Insight{Icon: fallbackIcon, Title: fallbackTitle, Description: truncateRunes(body, fallbackDescription)}
}

// parsePredictions decodes a model reply into predictions. On failure it
// returns an empty list and ok=false.
func parsePredictions(raw string) ([]Prediction, bool) {
	var items []Prediction
	if err := json.Unmarshal([]byte(stripFences(raw)), &items); err != nil || items == nil {
		return []Prediction{}, false
	}
	return items, true
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
