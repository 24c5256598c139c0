package session

import (
	"context"
	"testing"
	"time"

	"spacematch_backend/internal/conversation/domain"
	"spacematch_backend/platform/apperr"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sc := domain.SessionContext{
		EntityType: domain.EntityOwner,
		CollectedDetails: domain.Details{
			domain.SlotLocation: "Koramangala",
			domain.SlotSize:     int64(800),
		},
		ConversationHistory: []domain.Turn{
			{Role: domain.RoleUser, Content: "I'm a property owner"},
		},
		PendingSlot: domain.SlotRent,
	}

	if err := store.Save(ctx, "s1", sc); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.EntityType != domain.EntityOwner || got.PendingSlot != domain.SlotRent {
		t.Fatalf("context not preserved: %+v", got)
	}
	if got.CollectedDetails.Location() != "Koramangala" {
		t.Fatalf("location not preserved: %v", got.CollectedDetails)
	}
}

func TestMemoryStoreLoadMissing(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	_, err := store.Load(context.Background(), "nope")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	if err := store.Save(context.Background(), "s1", domain.NewSessionContext()); err != nil {
		t.Fatalf("save: %v", err)
	}

	now = now.Add(2 * time.Minute)

	_, err := store.Load(context.Background(), "s1")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found after expiry, got %v", err)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sc := domain.NewSessionContext()
	sc.CollectedDetails[domain.SlotLocation] = "Indiranagar"
	if err := store.Save(ctx, "s1", sc); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the caller's copy after Save must not leak into the store.
	sc.CollectedDetails[domain.SlotLocation] = "Whitefield"

	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CollectedDetails.Location() != "Indiranagar" {
		t.Fatalf("stored context aliases the caller's map: %v", got.CollectedDetails)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, "s1", domain.NewSessionContext()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx, "s1"); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
