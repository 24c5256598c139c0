package session

import (
	"context"
	"testing"
	"time"

	"spacematch_backend/internal/conversation/domain"
	"spacematch_backend/platform/apperr"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStoreWithClient(client, time.Minute), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	sc := domain.SessionContext{
		EntityType: domain.EntityBrand,
		CollectedDetails: domain.Details{
			domain.SlotLocation: "Indiranagar",
			domain.SlotSize:     int64(1200),
			domain.SlotBudget:   int64(200000),
		},
		ConversationHistory: []domain.Turn{
			{Role: domain.RoleUser, Content: "need space in Indiranagar"},
			{Role: domain.RoleAssistant, Content: "How much space do you need in sqft?"},
		},
		PendingSlot: domain.SlotSize,
	}

	if err := store.Save(ctx, "s1", sc); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.EntityType != domain.EntityBrand || got.PendingSlot != domain.SlotSize {
		t.Fatalf("context not preserved: %+v", got)
	}
	if got.CollectedDetails.Location() != "Indiranagar" {
		t.Fatalf("location not preserved: %v", got.CollectedDetails)
	}
	// JSON round-trips integers as float64; Amount must still read them.
	if budget, ok := got.CollectedDetails.Amount(domain.SlotBudget); !ok || budget != 200000 {
		t.Fatalf("budget not preserved: %d (ok=%v)", budget, ok)
	}
	if len(got.ConversationHistory) != 2 {
		t.Fatalf("history not preserved: %v", got.ConversationHistory)
	}
}

func TestRedisStoreLoadMissing(t *testing.T) {
	store, _ := newTestRedisStore(t)

	_, err := store.Load(context.Background(), "nope")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRedisStoreTTLRefresh(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "s1", domain.NewSessionContext()); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(45 * time.Second)

	// A save inside the window resets the clock.
	if err := store.Save(ctx, "s1", domain.NewSessionContext()); err != nil {
		t.Fatalf("re-save: %v", err)
	}

	mr.FastForward(45 * time.Second)

	if _, err := store.Load(ctx, "s1"); err != nil {
		t.Fatalf("session expired despite refresh: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Load(ctx, "s1"); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found after expiry, got %v", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newTestRedisStore(t)
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
