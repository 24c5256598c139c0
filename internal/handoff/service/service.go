// Package service implements handoff record keeping and notification fan-out.
package service

import (
	"context"
	"fmt"
	"time"

	"spacematch_backend/internal/events"
	"spacematch_backend/internal/handoff/repository"
	"spacematch_backend/internal/handoff/transport"
	"spacematch_backend/platform/logger"

	"github.com/google/uuid"
)

const defaultListLimit = 20

// Notifier enqueues the background notification for a persisted handoff.
type Notifier interface {
	ScheduleHandoffNotify(ctx context.Context, handoffID string) error
}

// Service persists completed intakes and notifies the matching team.
type Service struct {
	repo     *repository.Repository
	notifier Notifier
	log      *logger.Logger
}

func New(repo *repository.Repository, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// RegisterHandlers subscribes the service to the events it reacts to.
func (s *Service) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.HandoffReady{}.EventName(), events.HandlerFunc(s.HandleHandoffReady))
}

// HandleHandoffReady persists the completed intake and schedules the team
// notification.
func (s *Service) HandleHandoffReady(ctx context.Context, event events.Event) error {
	ready, ok := event.(events.HandoffReady)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	now := time.Now()
	record := &repository.Handoff{
		ID:         uuid.New(),
		SessionID:  ready.SessionID,
		EntityType: ready.EntityType,
		Location:   ready.Location,
		SizeSqft:   ready.SizeSqft,
		AmountINR:  ready.AmountINR,
		AmountSlot: ready.AmountSlot,
		Status:     repository.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return err
	}

	if s.log != nil {
		s.log.Info("handoff recorded",
			"handoff_id", record.ID.String(),
			"session_id", record.SessionID,
			"entity_type", record.EntityType,
		)
	}

	if s.notifier == nil {
		return nil
	}
	if err := s.notifier.ScheduleHandoffNotify(ctx, record.ID.String()); err != nil {
		// The record is already persisted; a failed enqueue must not fail
		// the conversation turn that triggered it.
		if s.log != nil {
			s.log.Error("failed to schedule handoff notification", "error", err, "handoff_id", record.ID.String())
		}
	}

	return nil
}

// Get returns a single handoff by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.HandoffResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.HandoffResponse{}, err
	}
	return transport.NewHandoffResponse(record), nil
}

// List returns a page of handoffs, newest first.
func (s *Service) List(ctx context.Context, req transport.ListHandoffsRequest) (transport.ListHandoffsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	records, err := s.repo.List(ctx, req.EntityType, limit, offset)
	if err != nil {
		return transport.ListHandoffsResponse{}, err
	}

	out := make([]transport.HandoffResponse, 0, len(records))
	for i := range records {
		out = append(out, transport.NewHandoffResponse(&records[i]))
	}

	return transport.ListHandoffsResponse{
		Handoffs: out,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// MarkNotified flags the handoff as notified. Called by the worker after the
// email goes out.
func (s *Service) MarkNotified(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkNotified(ctx, id)
}
