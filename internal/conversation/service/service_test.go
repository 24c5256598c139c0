package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"spacematch_backend/internal/conversation/domain"
	"spacematch_backend/internal/conversation/engine"
	"spacematch_backend/internal/conversation/session"
	"spacematch_backend/internal/conversation/transport"
	"spacematch_backend/internal/events"
	"spacematch_backend/platform/apperr"
)

type captureBus struct {
	published []events.Event
}

func (b *captureBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *captureBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *captureBus) Subscribe(string, events.Handler) {}

func newTestService() (*Service, *captureBus) {
	bus := &captureBus{}
	eng := engine.New(engine.Config{})
	store := session.NewMemoryStore(time.Minute)
	return New(eng, store, bus, nil), bus
}

func turn(t *testing.T, svc *Service, sessionID, message string) transport.TurnResponse {
	t.Helper()
	res, err := svc.EvaluateTurn(context.Background(), transport.TurnRequest{
		SessionID: sessionID,
		Message:   message,
	})
	if err != nil {
		t.Fatalf("turn %q: %v", message, err)
	}
	return res
}

func TestEvaluateTurnRejectsEmptyMessage(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.EvaluateTurn(context.Background(), transport.TurnRequest{
		SessionID: "s1",
		Message:   "<b></b>",
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEvaluateTurnSanitizesInput(t *testing.T) {
	svc, _ := newTestService()

	res := turn(t, svc, "s1", "<script>alert(1)</script>I'm a brand")
	if res.EntityType != "brand" {
		t.Fatalf("expected brand after sanitization, got %q", res.EntityType)
	}
}

func TestOwnerJourneyPublishesHandoffOnce(t *testing.T) {
	svc, bus := newTestService()
	const sessionID = "owner-1"

	turn(t, svc, sessionID, "I'm a property owner")
	turn(t, svc, sessionID, "It's in Koramangala")
	turn(t, svc, sessionID, "800 sqft")

	if len(bus.published) != 0 {
		t.Fatalf("handoff published before intake completed: %v", bus.published)
	}

	res := turn(t, svc, sessionID, "50")
	if !res.ReadyToHandoff {
		t.Fatal("expected ready to handoff after final slot")
	}
	if !strings.Contains(res.Message, "Koramangala") || !strings.Contains(res.Message, "50,000") {
		t.Fatalf("summary incomplete: %q", res.Message)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(bus.published))
	}
	ready, ok := bus.published[0].(events.HandoffReady)
	if !ok {
		t.Fatalf("unexpected event type %T", bus.published[0])
	}
	if ready.SessionID != sessionID || ready.EntityType != "owner" {
		t.Fatalf("wrong event payload: %+v", ready)
	}
	if ready.Location != "Koramangala" || ready.SizeSqft != 800 || ready.AmountINR != 50000 {
		t.Fatalf("wrong collected details: %+v", ready)
	}
	if ready.AmountSlot != "rent" {
		t.Fatalf("expected rent amount slot, got %q", ready.AmountSlot)
	}

	// Completed sessions must not re-announce on later turns.
	turn(t, svc, sessionID, "thanks!")
	if len(bus.published) != 1 {
		t.Fatalf("handoff re-published: %d events", len(bus.published))
	}
}

func TestEvaluateTurnPersistsAssistantReply(t *testing.T) {
	bus := &captureBus{}
	eng := engine.New(engine.Config{})
	store := session.NewMemoryStore(time.Minute)
	svc := New(eng, store, bus, nil)

	res := turn(t, svc, "s1", "I'm a brand")

	sc, err := store.Load(context.Background(), "s1")
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if len(sc.ConversationHistory) != 2 {
		t.Fatalf("expected user + assistant turns, got %v", sc.ConversationHistory)
	}
	last := sc.ConversationHistory[len(sc.ConversationHistory)-1]
	if last.Role != domain.RoleAssistant || last.Content != res.Message {
		t.Fatalf("assistant reply not persisted: %+v", last)
	}
}

func TestResetDiscardsSession(t *testing.T) {
	svc, _ := newTestService()

	turn(t, svc, "s1", "I'm a property owner")
	if err := svc.Reset(context.Background(), "s1"); err != nil {
		t.Fatalf("reset: %v", err)
	}

	// A fresh session starts undetermined again.
	res := turn(t, svc, "s1", "hello")
	if res.EntityType != "undetermined" {
		t.Fatalf("expected undetermined after reset, got %q", res.EntityType)
	}
}

func TestEvaluateTurnAssignsSessionID(t *testing.T) {
	svc, _ := newTestService()

	first := turn(t, svc, "", "I'm a property owner")
	if first.SessionID == "" {
		t.Fatal("expected a generated session id")
	}

	// The assigned id carries the session state forward.
	second := turn(t, svc, first.SessionID, "It's in Koramangala")
	if second.EntityType != "owner" {
		t.Fatalf("expected owner carried over, got %q", second.EntityType)
	}
	if second.CollectedDetails["location"] != "Koramangala" {
		t.Fatalf("expected location, got %v", second.CollectedDetails)
	}
}
