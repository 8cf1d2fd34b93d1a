package transport

import (
	"time"

	"contactcenter_backend/internal/leads/domain"
)

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}
