package engine

// Magnitude heuristic for bare numeric currency answers. People quote rupee
// amounts in three habits: full figures ("98000"), thousands ("50" for
// 50,000), and lakhs ("3" for a 3 lakh budget). The numeric range picks the
// reading: single digits read as lakhs, anything up to 10,000 as thousands,
// larger values as exact.
const (
	exactAmountFloor = 10_000
	thousandFloor    = 10

	lakhMultiplier     = 100_000
	thousandMultiplier = 1_000
)

// Disambiguate interprets a bare integer believed to be a currency amount.
func Disambiguate(n int64) int64 {
	switch {
	case n >= exactAmountFloor:
		return n
	case n >= thousandFloor:
		return n * thousandMultiplier
	default:
		return n * lakhMultiplier
	}
}

// MultiplierForUnit returns the factor for an explicit unit word. Unknown
// units mean the number is already an exact amount.
func MultiplierForUnit(unit string) int64 {
	switch unit {
	case "lakh", "lakhs", "lac", "lacs":
		return lakhMultiplier
	case "thousand", "k":
		return thousandMultiplier
	default:
		return 1
	}
}
