package session

import (
	"context"
	"sync"
	"time"

	"spacematch_backend/internal/conversation/domain"
	"spacematch_backend/platform/apperr"
)

type memoryEntry struct {
	sc        domain.SessionContext
	expiresAt time.Time
}

// MemoryStore keeps session contexts in process memory. It backs local
// development and tests; production deployments use the Redis store so
// sessions survive restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (domain.SessionContext, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return domain.SessionContext{}, apperr.NotFound("session not found").WithOp("session.MemoryStore.Load")
	}
	return entry.sc.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, sc domain.SessionContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = memoryEntry{
		sc:        sc.Clone(),
		expiresAt: s.now().Add(s.ttl),
	}

	// Opportunistic sweep keeps the map from accumulating dead sessions.
	if len(s.entries) > 1024 {
		now := s.now()
		for id, e := range s.entries {
			if now.After(e.expiresAt) {
				delete(s.entries, id)
			}
		}
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
