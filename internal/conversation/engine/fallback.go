package engine

import (
	"fmt"

	"spacematch_backend/internal/conversation/domain"
)

// vocabulary is the entity-specific wording used by the deterministic
// responder. Owners hear "property" and "rent"; brands hear "space" and
// "budget".
type vocabulary struct {
	questions map[domain.Slot]string
	acks      map[domain.Slot]string
	ready     string
}

var vocabularies = map[domain.EntityType]vocabulary{
	domain.EntityOwner: {
		questions: map[domain.Slot]string{
			domain.SlotLocation: "Where is your property located?",
			domain.SlotSize:     "What's the size of your property in sqft?",
			domain.SlotRent:     "What monthly rent are you expecting?",
		},
		acks: map[domain.Slot]string{
			domain.SlotLocation: "Noted, your property is in %s.",
			domain.SlotSize:     "Got it, %s sqft.",
			domain.SlotRent:     "Noted, expected rent of ₹%s per month.",
		},
		ready: "Great, I have everything I need about your property. Our team will connect you with matching brands shortly.",
	},
	domain.EntityBrand: {
		questions: map[domain.Slot]string{
			domain.SlotLocation: "Which location are you looking for space in?",
			domain.SlotSize:     "How much space do you need in sqft?",
			domain.SlotBudget:   "What's your monthly budget for the space?",
		},
		acks: map[domain.Slot]string{
			domain.SlotLocation: "Noted, you're looking for space in %s.",
			domain.SlotSize:     "Got it, %s sqft.",
			domain.SlotBudget:   "Noted, a monthly budget of ₹%s.",
		},
		ready: "Great, I have everything I need about your space requirement. Our team will share matching properties shortly.",
	},
}

// FallbackReply is the deterministic next-question generator. It is a pure
// function of its inputs: the same entity, details, pending slot and
// utterance always produce the same reply. It never returns an empty string
// and never calls external services.
//
// The returned slot is the one the reply asks about, or "" when the reply is
// the ready line.
func FallbackReply(entity domain.EntityType, details domain.Details, pending domain.Slot, isBareInt bool) (string, domain.Slot) {
	vocab := vocabularies[entity]
	if vocab.questions == nil {
		vocab = vocabularies[domain.EntityBrand]
	}

	// 1. A bare number answering a money question: acknowledge the formatted
	// amount, then move on.
	if (pending == domain.SlotBudget || pending == domain.SlotRent) && isBareInt {
		if amount, ok := details.Amount(domain.MoneySlot(entity)); ok {
			ack := fmt.Sprintf(vocab.acks[domain.MoneySlot(entity)], domain.FormatAmount(amount))
			return continueFrom(ack, entity, details, vocab)
		}
	}

	// 2-3. The asked slot has just been answered: acknowledge it, then move on.
	if pending == domain.SlotSize {
		if size, ok := details.Amount(domain.SlotSize); ok {
			ack := fmt.Sprintf(vocab.acks[domain.SlotSize], domain.FormatAmount(size))
			return continueFrom(ack, entity, details, vocab)
		}
	}
	if pending == domain.SlotLocation && details.Has(domain.SlotLocation) {
		ack := fmt.Sprintf(vocab.acks[domain.SlotLocation], details.Location())
		return continueFrom(ack, entity, details, vocab)
	}

	// 4. Ask for the first missing slot in canonical order.
	if slot, missing := domain.NextMissingSlot(entity, details); missing {
		return vocab.questions[slot], slot
	}
	return vocab.ready, ""
}

// continueFrom appends the next question (or the ready line) to an
// acknowledgment.
func continueFrom(ack string, entity domain.EntityType, details domain.Details, vocab vocabulary) (string, domain.Slot) {
	if slot, missing := domain.NextMissingSlot(entity, details); missing {
		return ack + " " + vocab.questions[slot], slot
	}
	return ack + " " + vocab.ready, ""
}

// ClarificationPrompt is the fixed two-option message shown while the entity
// type is still undetermined.
const ClarificationPrompt = "Welcome to SpaceMatch! Are you 1) a brand looking for retail space, or 2) a property owner wanting to list your space? Please reply with 1 or 2."
