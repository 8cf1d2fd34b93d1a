package domain

// Outcome is the coarse contact status of a lead. Values are the strings the
// contact-center database stores in resultado_gestion.
type Outcome string

const (
	OutcomeNotContacted     Outcome = "No Contactado"
	OutcomeContacted        Outcome = "Contactado"
	OutcomeEffectiveContact Outcome = "Contacto Efectivo"
)

// DefaultEnrollmentCode is the latest_subcategory value that marks a lead as enrolled.
const DefaultEnrollmentCode = "116"

var knownOutcomes = map[Outcome]struct{}{
	OutcomeNotContacted:     {},
	OutcomeContacted:        {},
	OutcomeEffectiveContact: {},
}

// IsKnownOutcome reports whether o is one of the three classified outcomes.
// Stores may carry other values; those count towards totals only.
func IsKnownOutcome(o Outcome) bool {
	_, ok := knownOutcomes[o]
	return ok
}

// IsContacted is true for both Contacted and EffectiveContact.
func (o Outcome) IsContacted() bool {
	return o == OutcomeContacted || o == OutcomeEffectiveContact
}

// IsEffective is true only for EffectiveContact.
func (o Outcome) IsEffective() bool {
	return o == OutcomeEffectiveContact
}

// IsNotContacted is true only for NotContacted.
func (o Outcome) IsNotContacted() bool {
	return o == OutcomeNotContacted
}
