package domain

import "time"

// Lead is one contact-center prospect (a row of dim_contactos).
type Lead struct {
	ID                string
	Channel           string
	Name              string
	Email             string
	Phone             string
	SourceBase        string
	LeadDate          *time.Time
	LastContactDate   *time.Time
	ProgramOfInterest string
	Outcome           Outcome
	TouchCount        int
	LatestSubcategory string
}

// IsEnrolled reports whether the lead reached the enrollment subcategory.
func (l Lead) IsEnrolled(enrollmentCode string) bool {
	return l.LatestSubcategory == enrollmentCode
}

// HasProgram reports whether the lead declared a program of interest.
func (l Lead) HasProgram() bool {
	return l.ProgramOfInterest != ""
}

// ContactEvent is one contact attempt (a row of fact_contactos).
type ContactEvent struct {
	DedupKey   string
	LeadID     string
	OccurredAt time.Time
	Agent      string
	SaleID     int64
	SourceBase string
}

// IsSale reports whether the attempt produced an enrollment sale.
func (e ContactEvent) IsSale() bool {
	return e.SaleID != 0
}

// Base is a lead-source database. Name is the value used by the base filter.
type Base struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
