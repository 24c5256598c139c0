package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"spacematch_backend/internal/conversation/domain"
	"spacematch_backend/platform/ai"
	"spacematch_backend/platform/logger"
)

const (
	defaultGenerateTimeout = 10 * time.Second
	defaultMaxTokens       = 150
	defaultTemperature     = 0.7

	// recentHistoryTurns bounds how much conversation is sent to the model.
	recentHistoryTurns = 6
)

// Config assembles an Engine. Generator may be nil, in which case every
// reply comes from the deterministic responder.
type Config struct {
	Generator   ai.TextGenerator
	Gazetteer   *Gazetteer
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
	Logger      *logger.Logger
}

// Engine evaluates one dialogue turn at a time. It holds no mutable session
// state: every call receives the previous context and returns a new one.
type Engine struct {
	extractor   *Extractor
	generator   ai.TextGenerator
	timeout     time.Duration
	maxTokens   int
	temperature float64
	log         *logger.Logger
}

// New creates an Engine with defaults filled in.
func New(cfg Config) *Engine {
	if cfg.Gazetteer == nil {
		cfg.Gazetteer = NewGazetteer()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGenerateTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	return &Engine{
		extractor:   NewExtractor(cfg.Gazetteer),
		generator:   cfg.Generator,
		timeout:     cfg.Timeout,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		log:         cfg.Logger,
	}
}

// EvaluateTurn runs one turn of the intake dialogue and returns the reply
// plus the replacement session context. It never returns an error: every
// failure mode degrades to a deterministic reply.
func (e *Engine) EvaluateTurn(ctx context.Context, utterance string, prev domain.SessionContext) (domain.TurnResult, domain.SessionContext) {
	next := prev.Clone()
	if next.CollectedDetails == nil {
		next.CollectedDetails = domain.Details{}
	}
	if next.EntityType == "" {
		next.EntityType = domain.EntityUndetermined
	}

	// Once resolved, the entity type never reverts to undetermined.
	entity := next.EntityType
	if entity == domain.EntityUndetermined {
		entity = Classify(utterance, next.ConversationHistory)
	}
	next.EntityType = entity

	if entity == domain.EntityUndetermined {
		next.ConversationHistory = append(next.ConversationHistory, domain.Turn{Role: domain.RoleUser, Content: utterance})
		next.PendingSlot = ""
		return result(ClarificationPrompt, next), next
	}

	pending := next.PendingSlot
	if pending == "" {
		if last, ok := next.LastAssistantText(); ok {
			pending = DerivePendingSlot(last, entity)
		}
	}

	extracted := e.extractor.Extract(utterance, entity, pending)
	merged := domain.Merge(next.CollectedDetails, extracted)

	isBareInt := bareIntRegex.MatchString(trimmedLower(utterance))

	// Bug-guard: a bare number answering a money question must never get
	// lost, even if no extraction rule claimed it.
	money := domain.MoneySlot(entity)
	if (pending == domain.SlotBudget || pending == domain.SlotRent) && isBareInt && !merged.Has(money) {
		if n, err := parseAmount(trimmedLower(utterance)); err == nil {
			merged = domain.Merge(merged, domain.Details{money: Disambiguate(n)})
		}
	}

	next.CollectedDetails = merged
	next.ConversationHistory = append(next.ConversationHistory, domain.Turn{Role: domain.RoleUser, Content: utterance})

	// Owner sessions short-circuit to the canonical handoff summary the
	// moment everything is collected. Brand sessions keep conversing; only
	// the readyToHandoff flag flips.
	if entity == domain.EntityOwner && domain.IsComplete(entity, merged) {
		next.PendingSlot = ""
		return result(completionSummary(merged), next), next
	}

	// A turn that just answered the asked slot gets a deterministic
	// acknowledgment; a generative model could re-ask what was answered.
	justAnswered := pending != "" && (extracted.Has(pending) || (pending == money && merged.Has(money) && isBareInt))
	if justAnswered {
		message, asked := FallbackReply(entity, merged, pending, isBareInt)
		next.PendingSlot = asked
		return result(message, next), next
	}

	if message, err := e.generate(ctx, utterance, entity, merged, next.ConversationHistory); err == nil {
		asked, _ := domain.NextMissingSlot(entity, merged)
		next.PendingSlot = asked
		res := result(message, next)
		res.Generative = true
		return res, next
	} else if e.log != nil {
		e.log.GenerativeFallback("", err)
	}

	message, asked := FallbackReply(entity, merged, pending, isBareInt)
	next.PendingSlot = asked
	return result(message, next), next
}

// generate performs the single bounded model call. Any failure, including a
// panicking provider, comes back as an error for the caller to swallow.
func (e *Engine) generate(ctx context.Context, utterance string, entity domain.EntityType, details domain.Details, history []domain.Turn) (message string, err error) {
	if e.generator == nil {
		return "", fmt.Errorf("no generator configured")
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	messages := make([]ai.Message, 0, recentHistoryTurns+1)
	start := len(history) - recentHistoryTurns
	if start < 0 {
		start = 0
	}
	for _, turn := range history[start:] {
		role := ai.RoleUser
		if turn.Role == domain.RoleAssistant {
			role = ai.RoleAssistant
		}
		messages = append(messages, ai.Message{Role: role, Content: turn.Content})
	}
	if len(messages) == 0 || messages[len(messages)-1].Content != utterance {
		messages = append(messages, ai.Message{Role: ai.RoleUser, Content: utterance})
	}

	message, err = e.generator.Generate(ctx, ai.Request{
		System:      systemDirective(entity, details),
		Messages:    messages,
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
	})
	if err != nil {
		return "", err
	}
	if message == "" {
		return "", fmt.Errorf("empty completion")
	}
	return message, nil
}

func result(message string, ctx domain.SessionContext) domain.TurnResult {
	return domain.TurnResult{
		Message:          message,
		EntityType:       ctx.EntityType,
		CollectedDetails: ctx.CollectedDetails,
		ReadyToHandoff:   ctx.EntityType != domain.EntityUndetermined && domain.IsComplete(ctx.EntityType, ctx.CollectedDetails),
	}
}

func trimmedLower(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
