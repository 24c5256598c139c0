// Package service implements the conversation intake use cases.
package service

import (
	"context"

	"spacematch_backend/internal/conversation/domain"
	"spacematch_backend/internal/conversation/engine"
	"spacematch_backend/internal/conversation/session"
	"spacematch_backend/internal/conversation/transport"
	"spacematch_backend/internal/events"
	"spacematch_backend/platform/apperr"
	"spacematch_backend/platform/logger"
	"spacematch_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Service runs intake turns against the dialogue engine and keeps session
// state in the store. A completed intake publishes HandoffReady exactly once
// per session, on the turn that completes it.
type Service struct {
	engine *engine.Engine
	store  session.Store
	bus    events.Bus
	log    *logger.Logger
}

func New(eng *engine.Engine, store session.Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		engine: eng,
		store:  store,
		bus:    bus,
		log:    log,
	}
}

// EvaluateTurn processes one user message for the given session.
func (s *Service) EvaluateTurn(ctx context.Context, req transport.TurnRequest) (transport.TurnResponse, error) {
	const op = "conversation.Service.EvaluateTurn"

	message := sanitize.Utterance(req.Message)
	if message == "" {
		return transport.TurnResponse{}, apperr.Validation("message is empty").WithOp(op)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	prev, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if apperr.GetKind(err) != apperr.KindNotFound {
			return transport.TurnResponse{}, err
		}
		prev = domain.NewSessionContext()
	}

	wasReady := prev.EntityType != domain.EntityUndetermined &&
		prev.EntityType != "" &&
		domain.IsComplete(prev.EntityType, prev.CollectedDetails)

	result, next := s.engine.EvaluateTurn(ctx, message, prev)

	next.ConversationHistory = append(next.ConversationHistory, domain.Turn{
		Role:    domain.RoleAssistant,
		Content: result.Message,
	})

	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return transport.TurnResponse{}, err
	}

	if result.ReadyToHandoff && !wasReady {
		s.publishHandoff(ctx, sessionID, result)
	}

	if s.log != nil {
		s.log.ConversationTurn(sessionID, string(result.EntityType),
			len(result.CollectedDetails), result.ReadyToHandoff, result.Generative)
	}

	return transport.NewTurnResponse(sessionID, result), nil
}

// Reset discards the stored context so the session starts over.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func (s *Service) publishHandoff(ctx context.Context, sessionID string, result domain.TurnResult) {
	moneySlot := domain.MoneySlot(result.EntityType)
	amount, _ := result.CollectedDetails.Amount(moneySlot)
	size, _ := result.CollectedDetails.Amount(domain.SlotSize)

	details := make(map[string]any, len(result.CollectedDetails))
	for slot, value := range result.CollectedDetails {
		details[string(slot)] = value
	}

	s.bus.Publish(ctx, events.HandoffReady{
		BaseEvent:  events.NewBaseEvent(),
		SessionID:  sessionID,
		EntityType: string(result.EntityType),
		Location:   result.CollectedDetails.Location(),
		SizeSqft:   size,
		AmountINR:  amount,
		AmountSlot: string(moneySlot),
		Details:    details,
	})
}
