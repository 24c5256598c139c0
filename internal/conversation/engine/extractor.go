package engine

import (
	"regexp"
	"strconv"
	"strings"

	"spacematch_backend/internal/conversation/domain"
)

// ruleInput is the per-utterance view the extraction rules operate on.
type ruleInput struct {
	utterance string
	lower     string
	trimmed   string
	entity    domain.EntityType
	pending   domain.Slot
	bareInt   int64
	isBareInt bool
}

func (in ruleInput) pendingMoney() bool {
	return in.pending == domain.SlotBudget || in.pending == domain.SlotRent
}

// extractRule is one step of the extraction cascade: a target slot, an
// applicability predicate, and a transform producing the candidate value.
// Rules run in order and the first rule to fill a slot wins for that slot.
type extractRule struct {
	name  string
	slot  func(in ruleInput) domain.Slot
	when  func(in ruleInput) bool
	apply func(in ruleInput) (any, bool)
}

var (
	bareIntRegex = regexp.MustCompile(`^\d[\d,]*$`)

	locationPrepRegex = regexp.MustCompile(`(?:need space in|space in|looking for [a-z ]*? in|located (?:in|at)|location (?:is|:)|\b(?:in|at|on)\b)\s+([a-z][a-z .'-]*[a-z])`)

	sizeUnitRegex = regexp.MustCompile(`(\d[\d,]*)\s*(?:sq\.?\s?ft\.?|sqft|sft|square\s+feet|square\s+foot)`)

	leadingNumberRegex = regexp.MustCompile(`(\d[\d,]*)\s*([a-z]*)`)

	lakhRegex        = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(lakhs?|lacs?)\b`)
	thousandRegex    = regexp.MustCompile(`(?:₹|rs\.?\s*)?(\d+(?:\.\d+)?)\s*(thousand|k)\b`)
	moneyPrefixRegex = regexp.MustCompile(`(?:rent|budget)\s*(?:is|of|:)?\s*(?:₹|rs\.?\s*)?(\d[\d,]*)`)

	sizeUnitWords = map[string]bool{
		"sqft": true, "sq": true, "sft": true, "square": true, "ft": true,
	}

	trailingConnectives = map[string]bool{
		"at": true, "in": true, "on": true, "is": true, "a": true, "the": true,
	}

	// locationStopWords are generic tokens that never form a location on
	// their own.
	locationStopWords = map[string]bool{
		"brand": true, "owner": true, "need": true, "space": true,
		"looking": true, "property": true, "rent": true, "budget": true,
		"size": true, "sqft": true, "yes": true, "no": true, "ok": true,
		"okay": true, "hi": true, "hello": true, "a": true, "the": true,
		"my": true, "for": true, "monthly": true,
	}
)

// Extractor pulls slot candidates out of a single utterance, guided by the
// entity type and the slot the assistant just asked about.
type Extractor struct {
	gaz   *Gazetteer
	rules []extractRule
}

// NewExtractor creates an extractor backed by the given gazetteer.
func NewExtractor(gaz *Gazetteer) *Extractor {
	e := &Extractor{gaz: gaz}
	e.rules = e.buildRules()
	return e
}

// Extract produces a possibly-empty extraction result. Malformed input never
// errors; it simply yields no match for that slot.
func (e *Extractor) Extract(utterance string, entity domain.EntityType, pending domain.Slot) domain.Details {
	in := ruleInput{
		utterance: utterance,
		lower:     strings.ToLower(utterance),
		trimmed:   strings.TrimSpace(strings.ToLower(utterance)),
		entity:    entity,
		pending:   pending,
	}
	if bareIntRegex.MatchString(in.trimmed) {
		if n, err := parseAmount(in.trimmed); err == nil {
			in.bareInt = n
			in.isBareInt = true
		}
	}

	result := domain.Details{}
	for _, rule := range e.rules {
		slot := rule.slot(in)
		if result.Has(slot) {
			continue
		}
		if !rule.when(in) {
			continue
		}
		if value, ok := rule.apply(in); ok {
			result[slot] = value
		}
	}
	return result
}

// buildRules assembles the ordered cascade. Location rules run from most to
// least specific, then size, then money; the guarded money-context rule runs
// before the explicit-unit patterns.
func (e *Extractor) buildRules() []extractRule {
	locationSlot := func(ruleInput) domain.Slot { return domain.SlotLocation }
	sizeSlot := func(ruleInput) domain.Slot { return domain.SlotSize }
	moneySlot := func(in ruleInput) domain.Slot { return domain.MoneySlot(in.entity) }
	always := func(ruleInput) bool { return true }

	return []extractRule{
		{
			name: "location-preposition",
			slot: locationSlot,
			when: always,
			apply: func(in ruleInput) (any, bool) {
				m := locationPrepRegex.FindStringSubmatch(in.lower)
				if m == nil {
					return nil, false
				}
				return e.normalizeLocation(m[1])
			},
		},
		{
			name: "location-gazetteer",
			slot: locationSlot,
			when: always,
			apply: func(in ruleInput) (any, bool) {
				name, ok := e.gaz.Match(in.lower)
				return name, ok
			},
		},
		{
			name: "location-context",
			slot: locationSlot,
			when: func(in ruleInput) bool { return in.pending == domain.SlotLocation && !in.isBareInt },
			apply: func(in ruleInput) (any, bool) {
				return e.normalizeLocation(in.trimmed)
			},
		},
		{
			name: "size-unit",
			slot: sizeSlot,
			when: always,
			apply: func(in ruleInput) (any, bool) {
				m := sizeUnitRegex.FindStringSubmatch(in.lower)
				if m == nil {
					return nil, false
				}
				n, err := parseAmount(m[1])
				if err != nil {
					return nil, false
				}
				return n, true
			},
		},
		{
			name: "size-context",
			slot: sizeSlot,
			when: func(in ruleInput) bool { return in.pending == domain.SlotSize && in.isBareInt },
			apply: func(in ruleInput) (any, bool) {
				return in.bareInt, true
			},
		},
		{
			name: "money-context",
			slot: moneySlot,
			when: func(in ruleInput) bool { return in.pendingMoney() },
			apply: func(in ruleInput) (any, bool) {
				m := leadingNumberRegex.FindStringSubmatch(in.lower)
				if m == nil {
					return nil, false
				}
				// A number that reads as a size ("800 sqft") is not money,
				// even when the assistant just asked about rent.
				if sizeUnitWords[m[2]] {
					return nil, false
				}
				n, err := parseAmount(m[1])
				if err != nil {
					return nil, false
				}
				if unit := MultiplierForUnit(m[2]); unit != 1 {
					return n * unit, true
				}
				return Disambiguate(n), true
			},
		},
		{
			name: "money-lakh-unit",
			slot: moneySlot,
			when: always,
			apply: func(in ruleInput) (any, bool) {
				m := lakhRegex.FindStringSubmatch(in.lower)
				if m == nil {
					return nil, false
				}
				f, err := strconv.ParseFloat(m[1], 64)
				if err != nil {
					return nil, false
				}
				return int64(f * lakhMultiplier), true
			},
		},
		{
			name: "money-thousand-unit",
			slot: moneySlot,
			when: always,
			apply: func(in ruleInput) (any, bool) {
				m := thousandRegex.FindStringSubmatch(in.lower)
				if m == nil {
					return nil, false
				}
				f, err := strconv.ParseFloat(m[1], 64)
				if err != nil {
					return nil, false
				}
				return int64(f * thousandMultiplier), true
			},
		},
		{
			name: "money-prefix",
			slot: moneySlot,
			when: always,
			apply: func(in ruleInput) (any, bool) {
				m := moneyPrefixRegex.FindStringSubmatch(in.lower)
				if m == nil {
					return nil, false
				}
				n, err := parseAmount(m[1])
				if err != nil {
					return nil, false
				}
				return Disambiguate(n), true
			},
		},
	}
}

// normalizeLocation trims a raw candidate to its leading clause, rejects
// stop-listed or numeric candidates, and capitalizes each word. Known
// gazetteer names come back in their canonical spelling.
func (e *Extractor) normalizeLocation(raw string) (any, bool) {
	candidate := strings.TrimSpace(raw)
	for _, sep := range []string{",", ".", " for ", " with ", " and ", " around ", " near ", " about ", " at ", " in ", " on "} {
		if idx := strings.Index(candidate, sep); idx > 0 {
			candidate = strings.TrimSpace(candidate[:idx])
		}
	}
	// Drop dangling connectives left over from the clause cut.
	words := strings.Fields(candidate)
	for len(words) > 0 && trailingConnectives[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	candidate = strings.Join(words, " ")
	if len(candidate) < 3 {
		return nil, false
	}
	if bareIntRegex.MatchString(candidate) {
		return nil, false
	}

	meaningful := false
	words = strings.Fields(candidate)
	for _, w := range words {
		if !locationStopWords[w] {
			meaningful = true
			break
		}
	}
	if !meaningful {
		return nil, false
	}

	if canonical, ok := e.gaz.Canonical(candidate); ok {
		return canonical, true
	}
	return titleCase(candidate), true
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func parseAmount(s string) (int64, error) {
	return strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
}

// DerivePendingSlot infers which slot the assistant's last message asked
// about by keyword matching. It exists only for contexts supplied by callers
// that predate the explicit pendingSlot field; the orchestrator records the
// asked slot directly.
func DerivePendingSlot(lastAssistant string, entity domain.EntityType) domain.Slot {
	lower := strings.ToLower(lastAssistant)
	switch {
	case containsAny(lower, "rent", "budget", "monthly"):
		return domain.MoneySlot(entity)
	case containsAny(lower, "size", "sqft", "square", "area"):
		return domain.SlotSize
	case containsAny(lower, "location", "where", "city", "located"):
		return domain.SlotLocation
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
