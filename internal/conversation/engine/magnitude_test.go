package engine

import "testing"

func TestDisambiguate(t *testing.T) {
	cases := []struct {
		in   int64
		want int64
	}{
		{98000, 98000},  // already an exact amount
		{10000, 10000},  // boundary: exact
		{9999, 9999000}, // thousands shorthand
		{50, 50000},     // "50" for a rent question means 50,000
		{10, 10000},     // boundary: thousands
		{9, 900000},     // single digits read as lakhs
		{3, 300000},     // "3" for a budget question means 3 lakh
	}
	for _, tc := range cases {
		if got := Disambiguate(tc.in); got != tc.want {
			t.Fatalf("Disambiguate(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMultiplierForUnit(t *testing.T) {
	cases := map[string]int64{
		"lakh":     100000,
		"lakhs":    100000,
		"lac":      100000,
		"lacs":     100000,
		"thousand": 1000,
		"k":        1000,
		"":         1,
		"crore":    1,
	}
	for unit, want := range cases {
		if got := MultiplierForUnit(unit); got != want {
			t.Fatalf("MultiplierForUnit(%q) = %d, want %d", unit, got, want)
		}
	}
}
