package handler

import (
	"context"
	"net/http"

	"contactcenter_backend/internal/analytics"
	"contactcenter_backend/internal/dashboard/transport"
	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/httpkit"
	"contactcenter_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Analytics is the aggregation surface the dashboard reads from.
type Analytics interface {
	KPIs(ctx context.Context, filter domain.Filter) (analytics.KPISet, error)
	Funnel(ctx context.Context, filter domain.Filter) ([]analytics.FunnelStage, error)
	Trends(ctx context.Context, filter domain.Filter, g analytics.Granularity) ([]analytics.TrendRow, error)
	ByChannel(ctx context.Context, filter domain.Filter) ([]analytics.ChannelRow, error)
	ByProgram(ctx context.Context, filter domain.Filter, limit int) ([]analytics.ProgramRow, error)
	Agents(ctx context.Context, filter domain.Filter) ([]analytics.AgentRow, error)
	SearchLeads(ctx context.Context, q analytics.SearchQuery) (analytics.SearchPage, error)
	ExportLeads(ctx context.Context, q analytics.SearchQuery) ([]domain.Lead, error)
	Bases(ctx context.Context) ([]domain.Base, error)
	Overview(ctx context.Context, filter domain.Filter, g analytics.Granularity, programLimit int) (analytics.Overview, error)
}

type Handler struct {
	engine Analytics
	val    *validator.Validator
}

func New(engine Analytics, val *validator.Validator) *Handler {
	return &Handler{engine: engine, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/kpis", h.GetKPIs)
	rg.GET("/funnel", h.GetFunnel)
	rg.GET("/trends", h.GetTrends)
	rg.GET("/by-medio", h.GetByChannel)
	rg.GET("/by-programa", h.GetByProgram)
	rg.GET("/agents", h.GetAgents)
	rg.GET("/leads", h.ListLeads)
	rg.GET("/leads/export", h.ExportLeads)
	rg.GET("/bases", h.ListBases)
	rg.GET("/overview", h.GetOverview)
}

// bind parses and validates query parameters, writing the 400 itself.
func (h *Handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return false
	}
	if err := h.val.Struct(dst); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return false
	}
	return true
}

func (h *Handler) GetKPIs(c *gin.Context) {
	var q transport.BaseQuery
	if !h.bind(c, &q) {
		return
	}
	kpis, err := h.engine.KPIs(c.Request.Context(), q.Filter())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, kpis)
}

func (h *Handler) GetFunnel(c *gin.Context) {
	var q transport.BaseQuery
	if !h.bind(c, &q) {
		return
	}
	funnel, err := h.engine.Funnel(c.Request.Context(), q.Filter())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, funnel)
}

func (h *Handler) GetTrends(c *gin.Context) {
	var q transport.TrendsQuery
	if !h.bind(c, &q) {
		return
	}
	g, err := analytics.ParseGranularity(q.Period)
	if httpkit.HandleError(c, err) {
		return
	}
	rows, err := h.engine.Trends(c.Request.Context(), q.Filter(), g)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, rows)
}

func (h *Handler) GetByChannel(c *gin.Context) {
	var q transport.BaseQuery
	if !h.bind(c, &q) {
		return
	}
	rows, err := h.engine.ByChannel(c.Request.Context(), q.Filter())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, rows)
}

func (h *Handler) GetByProgram(c *gin.Context) {
	var q transport.ProgramsQuery
	if !h.bind(c, &q) {
		return
	}
	rows, err := h.engine.ByProgram(c.Request.Context(), q.Filter(), q.Limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, rows)
}

func (h *Handler) GetAgents(c *gin.Context) {
	var q transport.BaseQuery
	if !h.bind(c, &q) {
		return
	}
	rows, err := h.engine.Agents(c.Request.Context(), q.Filter())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, rows)
}

func (h *Handler) ListLeads(c *gin.Context) {
	var q transport.LeadsQuery
	if !h.bind(c, &q) {
		return
	}
	page, err := h.engine.SearchLeads(c.Request.Context(), q.SearchQuery())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewLeadsResponse(page))
}

func (h *Handler) ListBases(c *gin.Context) {
	bases, err := h.engine.Bases(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, bases)
}

func (h *Handler) GetOverview(c *gin.Context) {
	var q transport.OverviewQuery
	if !h.bind(c, &q) {
		return
	}
	g, err := analytics.ParseGranularity(q.Period)
	if httpkit.HandleError(c, err) {
		return
	}
	overview, err := h.engine.Overview(c.Request.Context(), q.Filter(), g, q.Limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, overview)
}
