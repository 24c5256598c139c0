// Package ai defines the contract for generative text collaborators.
// Concrete providers live in subpackages; consumers depend on this interface
// so the model can be stubbed in tests.
package ai

import "context"

// Role values for chat messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat exchange sent to the model.
type Message struct {
	Role    string
	Content string
}

// Request describes a single bounded completion call.
type Request struct {
	// System is the system directive for this call.
	System string
	// Messages is the recent conversation, oldest first.
	Messages []Message
	// MaxTokens bounds the output length. Zero means provider default.
	MaxTokens int
	// Temperature controls phrasing variety.
	Temperature float64
}

// TextGenerator produces a single text completion. Implementations must honor
// context cancellation; callers treat every error as a signal to fall back to
// a deterministic response.
type TextGenerator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
