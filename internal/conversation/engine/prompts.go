package engine

import (
	"fmt"
	"strings"

	"spacematch_backend/internal/conversation/domain"
)

// systemDirective builds the role-specific instruction for the generative
// model: who the user is, what is already collected, and the single question
// to ask next.
func systemDirective(entity domain.EntityType, details domain.Details) string {
	var sb strings.Builder

	if entity == domain.EntityOwner {
		sb.WriteString("You are a friendly intake assistant for a retail space marketplace, talking to a property owner who wants to list a space. ")
	} else {
		sb.WriteString("You are a friendly intake assistant for a retail space marketplace, talking to a brand looking for retail space. ")
	}

	sb.WriteString("Details collected so far: ")
	sb.WriteString(describeDetails(entity, details))
	sb.WriteString(". ")

	if slot, missing := domain.NextMissingSlot(entity, details); missing {
		fmt.Fprintf(&sb, "Ask exactly one short question to learn the user's %s. ", slotDescription(slot))
	} else {
		sb.WriteString("All details are collected; thank the user and tell them the team will follow up. ")
	}

	sb.WriteString("Do not re-ask for details already collected. Keep the reply to one or two sentences, no lists.")
	return sb.String()
}

func describeDetails(entity domain.EntityType, details domain.Details) string {
	parts := make([]string, 0, 3)
	if loc := details.Location(); loc != "" {
		parts = append(parts, "location "+loc)
	}
	if size, ok := details.Amount(domain.SlotSize); ok {
		parts = append(parts, fmt.Sprintf("size %d sqft", size))
	}
	money := domain.MoneySlot(entity)
	if amount, ok := details.Amount(money); ok {
		parts = append(parts, fmt.Sprintf("%s ₹%s per month", money, domain.FormatAmount(amount)))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func slotDescription(slot domain.Slot) string {
	switch slot {
	case domain.SlotLocation:
		return "preferred location"
	case domain.SlotSize:
		return "required size in sqft"
	case domain.SlotRent:
		return "expected monthly rent"
	case domain.SlotBudget:
		return "monthly budget"
	}
	return string(slot)
}

// completionSummary is the canonical owner handoff message. It embeds the
// three collected values verbatim.
func completionSummary(details domain.Details) string {
	size, _ := details.Amount(domain.SlotSize)
	rent, _ := details.Amount(domain.SlotRent)
	return fmt.Sprintf(
		"Perfect! Here's what I have for your property: location %s, size %s sqft, expected rent ₹%s per month. Our team will now connect you with brands looking for space like yours.",
		details.Location(),
		domain.FormatAmount(size),
		domain.FormatAmount(rent),
	)
}
