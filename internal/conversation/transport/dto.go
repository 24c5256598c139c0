// Package transport defines request/response DTOs for the conversation API.
package transport

import (
	"spacematch_backend/internal/conversation/domain"
)

// TurnRequest is the payload for POST /api/v1/conversation/turn. An empty
// SessionID starts a new session; the assigned id comes back in the response.
type TurnRequest struct {
	SessionID string `json:"sessionId" validate:"omitempty,max=128"`
	Message   string `json:"message" validate:"required,min=1,max=2000"`
}

// TurnResponse echoes the evaluated turn back to the client.
type TurnResponse struct {
	SessionID        string         `json:"sessionId"`
	Message          string         `json:"message"`
	EntityType       string         `json:"entityType"`
	CollectedDetails map[string]any `json:"collectedDetails"`
	ReadyToHandoff   bool           `json:"readyToHandoff"`
}

// NewTurnResponse maps a domain result onto the wire shape.
func NewTurnResponse(sessionID string, res domain.TurnResult) TurnResponse {
	details := make(map[string]any, len(res.CollectedDetails))
	for slot, value := range res.CollectedDetails {
		details[string(slot)] = value
	}
	return TurnResponse{
		SessionID:        sessionID,
		Message:          res.Message,
		EntityType:       string(res.EntityType),
		CollectedDetails: details,
		ReadyToHandoff:   res.ReadyToHandoff,
	}
}
