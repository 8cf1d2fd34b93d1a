package analytics

import (
	"math"

	"contactcenter_backend/internal/leads/domain"
)

// Funnel stage labels, in funnel order.
const (
	StageLeads            = "Leads"
	StageContacted        = "Contactados"
	StageEffectiveContact = "Contacto Efectivo"
	StageEnrolled         = "Matriculados"
)

// ComputeKPIs counts outcomes and enrollments over leads. AvgTouches is the
// mean touch count of touched leads, rounded to one decimal, and 0 when no
// lead was touched.
func ComputeKPIs(leads []domain.Lead, enrollmentCode string) KPISet {
	var kpis KPISet
	touched, touches := 0, 0

	for _, lead := range leads {
		kpis.TotalLeads++
		if lead.Outcome.IsContacted() {
			kpis.Contacted++
		}
		if lead.Outcome.IsNotContacted() {
			kpis.NotContacted++
		}
		if lead.Outcome.IsEffective() {
			kpis.EffectiveContact++
		}
		if lead.IsEnrolled(enrollmentCode) {
			kpis.Enrolled++
		}
		if lead.TouchCount > 0 {
			touched++
			touches += lead.TouchCount
		}
	}

	kpis.AvgTouches = roundTenth(safeRatio(touches, touched))
	return kpis
}

// ComputeFunnel returns the four funnel stages in fixed order. Values share
// the KPI definitions.
func ComputeFunnel(leads []domain.Lead, enrollmentCode string) []FunnelStage {
	return FunnelFromKPIs(ComputeKPIs(leads, enrollmentCode))
}

// FunnelFromKPIs projects an already computed KPISet onto the funnel stages.
func FunnelFromKPIs(kpis KPISet) []FunnelStage {
	return []FunnelStage{
		{Stage: StageLeads, Value: kpis.TotalLeads, Color: "#3b82f6"},
		{Stage: StageContacted, Value: kpis.Contacted, Color: "#60a5fa"},
		{Stage: StageEffectiveContact, Value: kpis.EffectiveContact, Color: "#22c55e"},
		{Stage: StageEnrolled, Value: kpis.Enrolled, Color: "#a855f7"},
	}
}

func safeRatio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
