package handler

import (
	"context"
	"net/http"

	"contactcenter_backend/internal/insights/service"
	"contactcenter_backend/internal/insights/transport"
	"contactcenter_backend/internal/leads/domain"
	"contactcenter_backend/platform/httpkit"
	"contactcenter_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Generator is the insights surface used by the handler.
type Generator interface {
	Chat(ctx context.Context, in service.ChatInput) (service.ChatResult, error)
	Insights(ctx context.Context, filter domain.Filter) (service.InsightsResult, error)
	Predictions(ctx context.Context, filter domain.Filter) (service.PredictionsResult, error)
}

type Handler struct {
	svc Generator
	val *validator.Validator
}

func New(svc Generator, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.Chat)
	rg.GET("/insights", h.GetInsights)
	rg.GET("/predictions", h.GetPredictions)
}

func (h *Handler) Chat(c *gin.Context) {
	var req transport.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.Chat(c.Request.Context(), req.Input())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ChatResponse{
		Response: result.Response,
		Degraded: result.Degraded,
		Error:    result.Error,
	})
}

func (h *Handler) GetInsights(c *gin.Context) {
	var q transport.BaseQuery
	if !h.bindQuery(c, &q) {
		return
	}
	result, err := h.svc.Insights(c.Request.Context(), q.Filter())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.InsightsResponse{Insights: result.Insights, Degraded: result.Degraded})
}

func (h *Handler) GetPredictions(c *gin.Context) {
	var q transport.BaseQuery
	if !h.bindQuery(c, &q) {
		return
	}
	result, err := h.svc.Predictions(c.Request.Context(), q.Filter())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.PredictionsResponse{Predictions: result.Predictions, Degraded: result.Degraded})
}

func (h *Handler) bindQuery(c *gin.Context, dst any) bool {
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
