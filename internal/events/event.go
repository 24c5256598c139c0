// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"spacematch_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Conversation Domain Events
// =============================================================================

// HandoffReady is published when an intake conversation has collected every
// required detail and the lead can be passed to the matching team.
type HandoffReady struct {
	BaseEvent
	SessionID  string         `json:"sessionId"`
	EntityType string         `json:"entityType"`
	Location   string         `json:"location"`
	SizeSqft   int64          `json:"sizeSqft"`
	AmountINR  int64          `json:"amountInr"`
	AmountSlot string         `json:"amountSlot"`
	Details    map[string]any `json:"details,omitempty"`
}

func (e HandoffReady) EventName() string { return "conversation.handoff.ready" }
