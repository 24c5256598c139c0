// Package transport defines request/response DTOs for the handoff API.
package transport

import (
	"time"

	"spacematch_backend/internal/handoff/repository"
)

// ListHandoffsRequest carries query parameters for GET /api/v1/handoffs.
type ListHandoffsRequest struct {
	EntityType string `form:"entityType" validate:"omitempty,oneof=brand owner"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset     int    `form:"offset" validate:"omitempty,min=0"`
}

// HandoffResponse is the wire representation of a completed intake.
type HandoffResponse struct {
	ID         string     `json:"id"`
	SessionID  string     `json:"sessionId"`
	EntityType string     `json:"entityType"`
	Location   string     `json:"location"`
	SizeSqft   int64      `json:"sizeSqft"`
	AmountINR  int64      `json:"amountInr"`
	AmountSlot string     `json:"amountSlot"`
	Status     string     `json:"status"`
	NotifiedAt *time.Time `json:"notifiedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ListHandoffsResponse wraps a page of handoffs.
type ListHandoffsResponse struct {
	Handoffs []HandoffResponse `json:"handoffs"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// NewHandoffResponse maps a database model onto the wire shape.
func NewHandoffResponse(h *repository.Handoff) HandoffResponse {
	return HandoffResponse{
		ID:         h.ID.String(),
		SessionID:  h.SessionID,
		EntityType: h.EntityType,
		Location:   h.Location,
		SizeSqft:   h.SizeSqft,
		AmountINR:  h.AmountINR,
		AmountSlot: h.AmountSlot,
		Status:     h.Status,
		NotifiedAt: h.NotifiedAt,
		CreatedAt:  h.CreatedAt,
	}
}
