package engine

import (
	"testing"

	"spacematch_backend/internal/conversation/domain"
)

func newTestExtractor() *Extractor {
	return NewExtractor(NewGazetteer())
}

func TestExtractLocationFromPreposition(t *testing.T) {
	ex := newTestExtractor()

	got := ex.Extract("I need space in Koramangala", domain.EntityBrand, "")
	if got.Location() != "Koramangala" {
		t.Fatalf("expected Koramangala, got %q", got.Location())
	}

	got = ex.Extract("the shop is located at MG Road", domain.EntityOwner, "")
	if got.Location() != "MG Road" {
		t.Fatalf("expected canonical MG Road, got %q", got.Location())
	}
}

func TestExtractLocationFromGazetteer(t *testing.T) {
	ex := newTestExtractor()

	got := ex.Extract("somewhere around Indiranagar would be ideal", domain.EntityBrand, "")
	if got.Location() != "Indiranagar" {
		t.Fatalf("expected Indiranagar, got %q", got.Location())
	}
}

func TestExtractLocationFromContext(t *testing.T) {
	ex := newTestExtractor()

	// The assistant just asked where; the whole reply is the location.
	got := ex.Extract("Sarjapur Road", domain.EntityOwner, domain.SlotLocation)
	if got.Location() != "Sarjapur Road" {
		t.Fatalf("expected Sarjapur Road, got %q", got.Location())
	}

	// A bare number answering a location question is not a location.
	got = ex.Extract("800", domain.EntityOwner, domain.SlotLocation)
	if got.Has(domain.SlotLocation) {
		t.Fatal("bare integer should not become a location")
	}
}

func TestExtractLocationStopList(t *testing.T) {
	ex := newTestExtractor()

	got := ex.Extract("need space", domain.EntityBrand, domain.SlotLocation)
	if got.Has(domain.SlotLocation) {
		t.Fatalf("stop-listed words became a location: %q", got.Location())
	}
}

func TestExtractSizeWithUnit(t *testing.T) {
	ex := newTestExtractor()

	got := ex.Extract("around 1,200 sqft", domain.EntityBrand, "")
	if size, ok := got.Amount(domain.SlotSize); !ok || size != 1200 {
		t.Fatalf("expected size 1200, got %d (ok=%v)", size, ok)
	}

	got = ex.Extract("2000 square feet carpet area", domain.EntityOwner, "")
	if size, ok := got.Amount(domain.SlotSize); !ok || size != 2000 {
		t.Fatalf("expected size 2000, got %d (ok=%v)", size, ok)
	}
}

func TestExtractSizeFromContext(t *testing.T) {
	ex := newTestExtractor()

	got := ex.Extract("800", domain.EntityOwner, domain.SlotSize)
	if size, ok := got.Amount(domain.SlotSize); !ok || size != 800 {
		t.Fatalf("expected size 800, got %d (ok=%v)", size, ok)
	}

	// Without size context a bare number is not a size.
	got = ex.Extract("800", domain.EntityOwner, "")
	if got.Has(domain.SlotSize) {
		t.Fatal("bare integer without context should not become a size")
	}
}

func TestExtractMoneyInContext(t *testing.T) {
	ex := newTestExtractor()

	got := ex.Extract("50", domain.EntityOwner, domain.SlotRent)
	if rent, ok := got.Amount(domain.SlotRent); !ok || rent != 50000 {
		t.Fatalf("expected rent 50000, got %d (ok=%v)", rent, ok)
	}
	if got.Has(domain.SlotBudget) {
		t.Fatal("owner extraction must never produce a budget")
	}

	got = ex.Extract("98000", domain.EntityBrand, domain.SlotBudget)
	if budget, ok := got.Amount(domain.SlotBudget); !ok || budget != 98000 {
		t.Fatalf("expected budget 98000, got %d (ok=%v)", budget, ok)
	}
	if got.Has(domain.SlotRent) {
		t.Fatal("brand extraction must never produce a rent")
	}
}

func TestExtractMoneyContextIgnoresSizeAnswers(t *testing.T) {
	ex := newTestExtractor()

	// The assistant asked about rent but the user answered with a size.
	got := ex.Extract("800 sqft", domain.EntityOwner, domain.SlotRent)
	if got.Has(domain.SlotRent) {
		t.Fatalf("size answer misread as rent: %v", got)
	}
	if size, ok := got.Amount(domain.SlotSize); !ok || size != 800 {
		t.Fatalf("expected size 800, got %d (ok=%v)", size, ok)
	}
}

func TestExtractMoneyExplicitUnits(t *testing.T) {
	ex := newTestExtractor()

	got := ex.Extract("my budget is 3 lakhs", domain.EntityBrand, "")
	if budget, ok := got.Amount(domain.SlotBudget); !ok || budget != 300000 {
		t.Fatalf("expected budget 300000, got %d (ok=%v)", budget, ok)
	}

	got = ex.Extract("rs 50 thousand", domain.EntityOwner, "")
	if rent, ok := got.Amount(domain.SlotRent); !ok || rent != 50000 {
		t.Fatalf("expected rent 50000, got %d (ok=%v)", rent, ok)
	}

	got = ex.Extract("80k works", domain.EntityBrand, "")
	if budget, ok := got.Amount(domain.SlotBudget); !ok || budget != 80000 {
		t.Fatalf("expected budget 80000, got %d (ok=%v)", budget, ok)
	}
}

func TestExtractMoneyPrefix(t *testing.T) {
	ex := newTestExtractor()

	got := ex.Extract("rent: 45000", domain.EntityOwner, "")
	if rent, ok := got.Amount(domain.SlotRent); !ok || rent != 45000 {
		t.Fatalf("expected rent 45000, got %d (ok=%v)", rent, ok)
	}
}

func TestExtractMultipleSlotsInOneUtterance(t *testing.T) {
	ex := newTestExtractor()

	got := ex.Extract("1200 sqft in Whitefield, budget is 2 lakhs", domain.EntityBrand, "")
	if got.Location() != "Whitefield" {
		t.Fatalf("expected Whitefield, got %q", got.Location())
	}
	if size, ok := got.Amount(domain.SlotSize); !ok || size != 1200 {
		t.Fatalf("expected size 1200, got %d", size)
	}
	if budget, ok := got.Amount(domain.SlotBudget); !ok || budget != 200000 {
		t.Fatalf("expected budget 200000, got %d", budget)
	}
}

func TestExtractNothing(t *testing.T) {
	ex := newTestExtractor()

	got := ex.Extract("thanks, sounds good!", domain.EntityBrand, "")
	if len(got) != 0 {
		t.Fatalf("expected empty extraction, got %v", got)
	}
}

func TestDerivePendingSlot(t *testing.T) {
	cases := []struct {
		text   string
		entity domain.EntityType
		want   domain.Slot
	}{
		{"What monthly rent are you expecting?", domain.EntityOwner, domain.SlotRent},
		{"What's your monthly budget for the space?", domain.EntityBrand, domain.SlotBudget},
		{"What's the size of your property in sqft?", domain.EntityOwner, domain.SlotSize},
		{"Where is your property located?", domain.EntityOwner, domain.SlotLocation},
		{"Which location are you looking for space in?", domain.EntityBrand, domain.SlotLocation},
		{"Thanks for the details!", domain.EntityOwner, ""},
	}
	for _, tc := range cases {
		if got := DerivePendingSlot(tc.text, tc.entity); got != tc.want {
			t.Fatalf("DerivePendingSlot(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}
