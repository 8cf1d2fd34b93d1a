package transport

import (
	"contactcenter_backend/internal/analytics"
	"contactcenter_backend/internal/leads/domain"
)

// BaseQuery is the optional source-base filter shared by every dashboard route.
type BaseQuery struct {
	Base string `form:"base" validate:"max=200"`
}

func (q BaseQuery) Filter() domain.Filter {
	return domain.Filter{SourceBase: q.Base}
}

type TrendsQuery struct {
	BaseQuery
	Period string `form:"period" validate:"omitempty,oneof=day week month"`
}

type ProgramsQuery struct {
	BaseQuery
	Limit int `form:"limit"`
}

type OverviewQuery struct {
	BaseQuery
	Period string `form:"period" validate:"omitempty,oneof=day week month"`
	Limit  int    `form:"limit"`
}

// LeadsQuery pages the lead listing. Bounds on page and per_page are
// enforced by the engine.
type LeadsQuery struct {
	BaseQuery
	Page      int    `form:"page,default=1"`
	PerPage   int    `form:"per_page,default=25"`
	Search    string `form:"search" validate:"max=200"`
	Medio     string `form:"medio" validate:"max=100"`
	Resultado string `form:"resultado" validate:"omitempty,oneof='No Contactado' 'Contactado' 'Contacto Efectivo'"`
}

func (q LeadsQuery) SearchQuery() analytics.SearchQuery {
	return analytics.SearchQuery{
		Filter:  q.Filter(),
		Channel: q.Medio,
		Outcome: domain.Outcome(q.Resultado),
		Text:    q.Search,
		Page:    q.Page,
		PerPage: q.PerPage,
	}
}

// ExportQuery selects the leads written to a CSV export.
type ExportQuery struct {
	BaseQuery
	Search    string `form:"search" validate:"max=200"`
	Medio     string `form:"medio" validate:"max=100"`
	Resultado string `form:"resultado" validate:"omitempty,oneof='No Contactado' 'Contactado' 'Contacto Efectivo'"`
}

func (q ExportQuery) SearchQuery() analytics.SearchQuery {
	return analytics.SearchQuery{
		Filter:  q.Filter(),
		Channel: q.Medio,
		Outcome: domain.Outcome(q.Resultado),
		Text:    q.Search,
	}
}

type LeadRow struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	Channel           string  `json:"channel"`
	ProgramOfInterest string  `json:"program_of_interest"`
	Outcome           string  `json:"outcome"`
	TouchCount        int     `json:"touch_count"`
	LeadDate          *string `json:"lead_date"`
	LastContactDate   *string `json:"last_contact_date"`
	SourceBase        string  `json:"source_base"`
}

type LeadsResponse struct {
	Data    []LeadRow `json:"data"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
}

func NewLeadsResponse(page analytics.SearchPage) LeadsResponse {
	rows := make([]LeadRow, 0, len(page.Rows))
	for _, lead := range page.Rows {
		rows = append(rows, LeadRow{
			ID:                lead.ID,
			Name:              lead.Name,
			Email:             lead.Email,
			Phone:             lead.Phone,
			Channel:           lead.Channel,
			ProgramOfInterest: lead.ProgramOfInterest,
			Outcome:           string(lead.Outcome),
			TouchCount:        lead.TouchCount,
			LeadDate:          formatDate(lead.LeadDate),
			LastContactDate:   formatDate(lead.LastContactDate),
			SourceBase:        lead.SourceBase,
		})
	}
	return LeadsResponse{Data: rows, Total: page.Total, Page: page.Page, PerPage: page.PerPage}
}
