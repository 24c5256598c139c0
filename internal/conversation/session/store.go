package session

import (
	"context"

	"spacematch_backend/internal/conversation/domain"
)

// Store persists session contexts between turns. Implementations must be safe
// for concurrent use.
type Store interface {
	// Load returns the stored context for the session. A session that was
	// never saved or has expired returns a NotFound error.
	Load(ctx context.Context, sessionID string) (domain.SessionContext, error)
	Save(ctx context.Context, sessionID string, sc domain.SessionContext) error
	Delete(ctx context.Context, sessionID string) error
}
