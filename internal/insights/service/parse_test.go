package service

import (
	"strings"
	"testing"
)

func TestParseInsightsStripsFences(t *testing.T) {
	raw := "Aquí tienes:\n```json\n[{\"icon\":\"star\",\"title\":\"Buen mes\",\"description\":\"La conversión subió\"}]\n```"

	items, ok := parseInsights(raw)
	if !ok {
		t.Fatal("expected fenced reply to parse")
	}
	if len(items) != 1 || items[0].Icon != "star" || items[0].Title != "Buen mes" {
		t.Fatalf("unexpected insights: %+v", items)
	}
}

func TestParseInsightsPlainJSON(t *testing.T) {
	items, ok := parseInsights(`  [{"icon":"rocket","title":"t","description":"d"}]  `)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one insight, got %+v (ok=%v)", items, ok)
	}
	if items[0].Icon != "rocket" {
		t.Fatalf("expected icon to pass through unchanged, got %q", items[0].Icon)
	}
}

func TestParseInsightsFallback(t *testing.T) {
	raw := strings.Repeat("ñ", 250)

	items, ok := parseInsights(raw)
	if ok {
		t.Fatal("expected parse failure")
	}
	if len(items) != 1 {
		t.Fatalf("expected single fallback insight, got %d", len(items))
	}
	got := items[0]
	if got.Icon != "alert" || got.Title != "Sin datos suficientes" {
		t.Fatalf("unexpected fallback: %+v", got)
	}
	if n := len([]rune(got.Description)); n != 200 {
		t.Fatalf("expected 200-rune description, got %d", n)
	}
}

func TestParsePredictionsAcceptsBothKeys(t *testing.T) {
	raw := "```\n[" +
		`{"period":"Semana 1","predicted_leads":120,"predicted_efectivos":30,"confidence":0.7},` +
		`{"period":"Semana 2","predicted_leads":110,"predicted_effective":28,"confidence":0.6}` +
		"]\n```"

	items, ok := parsePredictions(raw)
	if !ok || len(items) != 2 {
		t.Fatalf("expected two predictions, got %+v (ok=%v)", items, ok)
	}
	if items[0].PredictedEffective != 30 || items[1].PredictedEffective != 28 {
		t.Fatalf("unexpected effective values: %+v", items)
	}
}

func TestParsePredictionsFailureIsEmpty(t *testing.T) {
	items, ok := parsePredictions("no puedo predecir")
	if ok {
		t.Fatal("expected parse failure")
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", items)
	}
}
