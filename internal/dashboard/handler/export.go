package handler

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"contactcenter_backend/internal/dashboard/transport"
	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

var exportHeaders = []string{
	"id", "name", "email", "phone", "channel", "program_of_interest",
	"outcome", "touch_count", "lead_date", "last_contact_date", "source_base",
}

// ExportLeads streams the filtered lead listing as CSV.
func (h *Handler) ExportLeads(c *gin.Context) {
	var q transport.ExportQuery
	if !h.bind(c, &q) {
		return
	}
	leads, err := h.engine.ExportLeads(c.Request.Context(), q.SearchQuery())
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename=leads.csv")

	// Headers are already sent, so a failed write can only be logged.
	if err := writeLeadsCSV(c.Writer, leads); err != nil {
		httpkit.ContextLogger(c).WithContext(c.Request.Context()).
			Error("csv export write failed", "rows", len(leads), "error", err)
	}
}

func writeLeadsCSV(w io.Writer, leads []domain.Lead) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for _, lead := range leads {
		if err := writer.Write(leadRecord(lead)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func leadRecord(l domain.Lead) []string {
	return []string{
		l.ID,
		l.Name,
		l.Email,
		l.Phone,
		l.Channel,
		l.ProgramOfInterest,
		string(l.Outcome),
		strconv.Itoa(l.TouchCount),
		exportDate(l.LeadDate),
		exportDate(l.LastContactDate),
		l.SourceBase,
	}
}

func exportDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateLayout)
}
