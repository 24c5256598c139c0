package engine

import (
	"testing"

	"spacematch_backend/internal/conversation/domain"
)

func TestClassifyBrandFromUtterance(t *testing.T) {
	if got := Classify("I'm a brand", nil); got != domain.EntityBrand {
		t.Fatalf("expected brand, got %v", got)
	}
	if got := Classify("we need space for a new outlet", nil); got != domain.EntityBrand {
		t.Fatalf("expected brand, got %v", got)
	}
}

func TestClassifyOwnerFromUtterance(t *testing.T) {
	if got := Classify("I'm a property owner", nil); got != domain.EntityOwner {
		t.Fatalf("expected owner, got %v", got)
	}
	if got := Classify("I want to rent out my shop", nil); got != domain.EntityOwner {
		t.Fatalf("expected owner, got %v", got)
	}
}

func TestClassifyNumericMenuReply(t *testing.T) {
	if got := Classify("1", nil); got != domain.EntityBrand {
		t.Fatalf("expected brand for reply 1, got %v", got)
	}
	if got := Classify("2", nil); got != domain.EntityOwner {
		t.Fatalf("expected owner for reply 2, got %v", got)
	}
	// A large number is not a menu reply.
	if got := Classify("12345", nil); got != domain.EntityUndetermined {
		t.Fatalf("expected undetermined for 12345, got %v", got)
	}
}

func TestClassifyBrandCuesWinOverOwnerCues(t *testing.T) {
	// Deliberate precedence: mixed cues resolve to brand.
	got := Classify("I'm a brand and I spoke to a landlord", nil)
	if got != domain.EntityBrand {
		t.Fatalf("expected brand precedence, got %v", got)
	}
}

func TestClassifyHistoryBeforeUtterance(t *testing.T) {
	history := []domain.Turn{
		{Role: domain.RoleUser, Content: "I have a property in Hebbal"},
		{Role: domain.RoleAssistant, Content: "Where is your property located?"},
	}
	// The current reply alone says nothing, but history already resolved it.
	if got := Classify("Hebbal", history); got != domain.EntityOwner {
		t.Fatalf("expected owner from history, got %v", got)
	}
}

func TestClassifyUndetermined(t *testing.T) {
	if got := Classify("hello there", nil); got != domain.EntityUndetermined {
		t.Fatalf("expected undetermined, got %v", got)
	}
}
