package service

const chatPreamble = "Eres un analista de datos experto del contact center Crexe. " +
	"Respondes preguntas sobre leads, gestión y conversión usando los datos reales. " +
	"Sé conciso, usa números y porcentajes. Responde en español.\n\n" +
	"DATOS ACTUALES:\n"

const insightsInstruction = "Eres un analista de datos del contact center Crexe. " +
	"Genera exactamente 4 insights breves y accionables basados en los datos. " +
	`Formato JSON: [{"icon": "trending_up|trending_down|alert|star", "title": "...", "description": "..."}]. ` +
	"Responde SOLO el JSON, sin texto adicional. Responde en español."

const predictionsInstruction = "Eres un analista predictivo del contact center Crexe. " +
	"Basándote en las tendencias de las últimas semanas, predice los próximos 4 períodos. " +
	`Formato JSON: [{"period": "Semana X", "predicted_leads": N, "predicted_effective": N, "confidence": 0.0-1.0}]. ` +
	"Responde SOLO el JSON, sin texto adicional."

const (
	insightsPrompt    = "Datos actuales:\n%s\n\nGenera 4 insights:"
	predictionsPrompt = "Tendencia histórica:\n%s\n\nPredice las próximas 4 semanas:"

	chatFallback = "No pude generar una respuesta en este momento. Intenta de nuevo más tarde."
)

type generationParams struct {
	temperature float32
	maxTokens   int32
}

var (
	chatParams        = generationParams{temperature: 0.3, maxTokens: 800}
	insightsParams    = generationParams{temperature: 0.4, maxTokens: 600}
	predictionsParams = generationParams{temperature: 0.3, maxTokens: 400}
)
