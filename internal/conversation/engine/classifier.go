// Package engine implements the slot-filling dialogue engine: entity
// classification, contextual field extraction, deterministic fallback
// responses, and the per-turn orchestration around an optional generative
// model.
package engine

import (
	"strings"

	"spacematch_backend/internal/conversation/domain"
)

// classifierRule maps cue phrases to an entity label. Rules are evaluated in
// order, so earlier labels win when a text contains cues for both sides.
type classifierRule struct {
	label domain.EntityType
	// substrings match anywhere in the lowercased text.
	substrings []string
	// exact matches the whole trimmed utterance, for the numeric menu reply.
	exact []string
}

// classifierRules is the ordered rule table. Brand cues are checked before
// owner cues on purpose: a mixed message like "I'm a brand talking to my
// landlord" is treated as a seeker. Keep the order stable.
var classifierRules = []classifierRule{
	{
		label: domain.EntityBrand,
		substrings: []string{
			"i'm a brand", "i am a brand", "brand",
			"need space", "need a space", "looking for space", "looking for",
			"tenant", "occupier", "retailer", "franchise", "open a store",
		},
		exact: []string{"1", "1)", "option 1"},
	},
	{
		label: domain.EntityOwner,
		substrings: []string{
			"property owner", "landlord", "owner",
			"have a property", "have a space", "my property",
			"rent out", "lease out", "list my", "listing",
		},
		exact: []string{"2", "2)", "option 2"},
	},
}

// Classify decides brand, owner, or undetermined from the current utterance
// and the prior conversation. History is inspected before the utterance so an
// already-signalled identity is not overridden by a noisy reply. Pure
// function; undetermined is a valid outcome, not an error.
func Classify(utterance string, history []domain.Turn) domain.EntityType {
	var sb strings.Builder
	for _, turn := range history {
		if turn.Role == domain.RoleUser {
			sb.WriteString(strings.ToLower(turn.Content))
			sb.WriteString(" ")
		}
	}
	historyText := sb.String()

	if historyText != "" {
		if label, ok := classifyText(historyText, ""); ok {
			return label
		}
	}
	if label, ok := classifyText(strings.ToLower(utterance), strings.TrimSpace(strings.ToLower(utterance))); ok {
		return label
	}
	return domain.EntityUndetermined
}

// classifyText runs the ordered rule table against one text. The trimmed form
// is matched against exact cues and is empty for concatenated history, where
// a whole-message menu reply cannot be recovered.
func classifyText(lower, trimmed string) (domain.EntityType, bool) {
	for _, rule := range classifierRules {
		for _, cue := range rule.substrings {
			if strings.Contains(lower, cue) {
				return rule.label, true
			}
		}
		if trimmed == "" {
			continue
		}
		for _, cue := range rule.exact {
			if trimmed == cue {
				return rule.label, true
			}
		}
	}
	return domain.EntityUndetermined, false
}
