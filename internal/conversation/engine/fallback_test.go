package engine

import (
	"testing"

	"spacematch_backend/internal/conversation/domain"
)

func TestFallbackAsksFirstMissingSlotInOrder(t *testing.T) {
	msg, asked := FallbackReply(domain.EntityOwner, domain.Details{}, "", false)
	if asked != domain.SlotLocation {
		t.Fatalf("expected location first, got %q", asked)
	}
	if msg != "Where is your property located?" {
		t.Fatalf("unexpected question: %q", msg)
	}

	details := domain.Details{domain.SlotLocation: "Jayanagar"}
	_, asked = FallbackReply(domain.EntityOwner, details, "", false)
	if asked != domain.SlotSize {
		t.Fatalf("expected size after location, got %q", asked)
	}

	details[domain.SlotSize] = int64(900)
	_, asked = FallbackReply(domain.EntityOwner, details, "", false)
	if asked != domain.SlotRent {
		t.Fatalf("expected rent last, got %q", asked)
	}
}

func TestFallbackAcknowledgesMoneyAnswer(t *testing.T) {
	details := domain.Details{domain.SlotRent: int64(50000)}

	msg, asked := FallbackReply(domain.EntityOwner, details, domain.SlotRent, true)
	if asked != domain.SlotLocation {
		t.Fatalf("expected location next, got %q", asked)
	}
	if want := "Noted, expected rent of ₹50,000 per month. Where is your property located?"; msg != want {
		t.Fatalf("unexpected reply: %q", msg)
	}
}

func TestFallbackAcknowledgesSizeAnswer(t *testing.T) {
	details := domain.Details{
		domain.SlotLocation: "Koramangala",
		domain.SlotSize:     int64(800),
	}

	msg, asked := FallbackReply(domain.EntityOwner, details, domain.SlotSize, true)
	if asked != domain.SlotRent {
		t.Fatalf("expected rent next, got %q", asked)
	}
	if want := "Got it, 800 sqft. What monthly rent are you expecting?"; msg != want {
		t.Fatalf("unexpected reply: %q", msg)
	}
}

func TestFallbackReadyLineWhenNothingMissing(t *testing.T) {
	details := domain.Details{
		domain.SlotLocation: "Koramangala",
		domain.SlotSize:     int64(1000),
		domain.SlotBudget:   int64(150000),
	}

	msg, asked := FallbackReply(domain.EntityBrand, details, "", false)
	if asked != "" {
		t.Fatalf("nothing should be asked, got %q", asked)
	}
	if msg != vocabularies[domain.EntityBrand].ready {
		t.Fatalf("expected brand ready line, got %q", msg)
	}
}

func TestFallbackVocabularyDiffersByEntity(t *testing.T) {
	brandMsg, _ := FallbackReply(domain.EntityBrand, domain.Details{domain.SlotLocation: "Hebbal", domain.SlotSize: int64(500)}, "", false)
	ownerMsg, _ := FallbackReply(domain.EntityOwner, domain.Details{domain.SlotLocation: "Hebbal", domain.SlotSize: int64(500)}, "", false)

	if brandMsg != "What's your monthly budget for the space?" {
		t.Fatalf("unexpected brand question: %q", brandMsg)
	}
	if ownerMsg != "What monthly rent are you expecting?" {
		t.Fatalf("unexpected owner question: %q", ownerMsg)
	}
}

func TestFallbackIsDeterministic(t *testing.T) {
	details := domain.Details{domain.SlotLocation: "BTM Layout"}
	first, _ := FallbackReply(domain.EntityBrand, details, domain.SlotLocation, false)
	for i := 0; i < 10; i++ {
		again, _ := FallbackReply(domain.EntityBrand, details, domain.SlotLocation, false)
		if again != first {
			t.Fatalf("non-deterministic reply: %q vs %q", first, again)
		}
	}
	if first == "" {
		t.Fatal("fallback reply must never be empty")
	}
}
