package handler

import (
	"net/http"

	"spacematch_backend/internal/conversation/service"
	"spacematch_backend/internal/conversation/transport"
	"spacematch_backend/platform/httpkit"
	"spacematch_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the intake conversation
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new conversation handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the conversation routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/turn", h.Turn)
	rg.DELETE("/session/:sessionId", h.ResetSession)
}

// Turn handles POST /api/v1/conversation/turn
func (h *Handler) Turn(c *gin.Context) {
	var req transport.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.EvaluateTurn(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// ResetSession handles DELETE /api/v1/conversation/session/:sessionId
func (h *Handler) ResetSession(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.Reset(c.Request.Context(), sessionID); httpkit.HandleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}
