// Package domain defines the conversation state model for the slot-filling
// intake dialogue: who the engine is talking to, which slots have been
// collected, and the turn-by-turn history.
package domain

// EntityType is the conversation's subject: a space-seeking brand or a
// space-providing owner.
type EntityType string

const (
	// EntityBrand is a space seeker looking for retail space.
	EntityBrand EntityType = "brand"
	// EntityOwner is a space provider wanting to list a property.
	EntityOwner EntityType = "owner"
	// EntityUndetermined means the classifier could not yet decide.
	// This is a valid per-turn state, not an error.
	EntityUndetermined EntityType = "undetermined"
)

// Slot is a named field the dialogue aims to fill.
type Slot string

const (
	SlotLocation Slot = "location"
	SlotSize     Slot = "size"
	SlotBudget   Slot = "budget"
	SlotRent     Slot = "rent"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one recorded message. Immutable once recorded.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Details maps filled slots to their values. Location is a string; size,
// budget and rent are int64 amounts. A single extraction pass also produces a
// Details value, which is transient and only enters session state via Merge.
type Details map[Slot]any

// Clone returns a shallow copy of the details map.
func (d Details) Clone() Details {
	out := make(Details, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Has reports whether the slot holds a non-empty value.
func (d Details) Has(slot Slot) bool {
	v, ok := d[slot]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// Location returns the stored location, or "" when absent.
func (d Details) Location() string {
	if s, ok := d[SlotLocation].(string); ok {
		return s
	}
	return ""
}

// Amount returns the stored numeric value for the slot, accepting the integer
// widths that survive JSON round-trips.
func (d Details) Amount(slot Slot) (int64, bool) {
	switch v := d[slot].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

// Merge folds an extraction result into previous details without clobbering:
// a key is written only when the new value is present and non-empty, and keys
// are never deleted. Returns a new map; neither input is mutated.
func Merge(prev, extracted Details) Details {
	out := prev.Clone()
	for k, v := range extracted {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// MoneySlot returns the money slot for the entity type: budget for brands,
// rent for owners. The two are mutually exclusive within a session.
func MoneySlot(entity EntityType) Slot {
	if entity == EntityOwner {
		return SlotRent
	}
	return SlotBudget
}

// RequiredSlots returns the slots that must be filled before handoff, in
// canonical asking order.
func RequiredSlots(entity EntityType) []Slot {
	return []Slot{SlotLocation, SlotSize, MoneySlot(entity)}
}

// NextMissingSlot returns the first unfilled required slot in canonical order.
func NextMissingSlot(entity EntityType, d Details) (Slot, bool) {
	for _, slot := range RequiredSlots(entity) {
		if !d.Has(slot) {
			return slot, true
		}
	}
	return "", false
}

// IsComplete reports whether all required slots for the entity are filled.
func IsComplete(entity EntityType, d Details) bool {
	_, missing := NextMissingSlot(entity, d)
	return !missing
}

// SessionContext is the accumulated dialogue state carried between turns.
// It is replaced, never edited in place: every evaluation receives the
// previous context and returns a new one.
type SessionContext struct {
	EntityType          EntityType `json:"entityType"`
	CollectedDetails    Details    `json:"collectedDetails"`
	ConversationHistory []Turn     `json:"conversationHistory"`
	// PendingSlot records which slot the assistant asked for on its most
	// recent turn, so the next utterance can be interpreted in context
	// without re-parsing the assistant's own text.
	PendingSlot Slot `json:"pendingSlot,omitempty"`
}

// NewSessionContext returns an empty, undetermined session.
func NewSessionContext() SessionContext {
	return SessionContext{
		EntityType:       EntityUndetermined,
		CollectedDetails: Details{},
	}
}

// Clone returns a deep-enough copy: details and history are copied so the
// original context stays untouched.
func (s SessionContext) Clone() SessionContext {
	out := s
	out.CollectedDetails = s.CollectedDetails.Clone()
	out.ConversationHistory = append([]Turn(nil), s.ConversationHistory...)
	return out
}

// LastAssistantText returns the content of the most recent assistant turn.
func (s SessionContext) LastAssistantText() (string, bool) {
	for i := len(s.ConversationHistory) - 1; i >= 0; i-- {
		if s.ConversationHistory[i].Role == RoleAssistant {
			return s.ConversationHistory[i].Content, true
		}
	}
	return "", false
}

// TurnResult is what one evaluated turn returns to the caller.
type TurnResult struct {
	Message          string     `json:"message"`
	EntityType       EntityType `json:"entityType"`
	CollectedDetails Details    `json:"collectedDetails"`
	ReadyToHandoff   bool       `json:"readyToHandoff,omitempty"`

	// Generative reports whether the reply came from the language model
	// rather than the deterministic responder. Not part of the API payload.
	Generative bool `json:"-"`
}
