package scheduler

import (
	"context"
	"fmt"

	"spacematch_backend/internal/conversation/domain"
	"spacematch_backend/internal/email"
	"spacematch_backend/internal/handoff/repository"
	"spacematch_backend/platform/config"
	"spacematch_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Worker struct {
	server      *asynq.Server
	mux         *asynq.ServeMux
	repo        *repository.Repository
	sender      email.Sender
	teamAddress string
	log         *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, emailCfg config.EmailConfig, pool *pgxpool.Pool, sender email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:      server,
		mux:         mux,
		repo:        repository.New(pool),
		sender:      sender,
		teamAddress: emailCfg.GetIntakeTeamAddress(),
		log:         log,
	}

	mux.HandleFunc(TaskHandoffNotify, w.handleHandoffNotify)

	return w, nil
}

func (w *Worker) handleHandoffNotify(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseHandoffNotifyPayload(task)
	if err != nil {
		return err
	}

	handoffID, err := uuid.Parse(payload.HandoffID)
	if err != nil {
		return err
	}

	record, err := w.repo.GetByID(ctx, handoffID)
	if err != nil {
		return err
	}

	// Redelivered tasks must not spam the team.
	if record.Status == repository.StatusNotified {
		return nil
	}

	if w.teamAddress == "" {
		w.log.Warn("intake team address not configured; skipping handoff email", "handoff_id", record.ID.String())
		return w.repo.MarkNotified(ctx, record.ID)
	}

	data := email.HandoffEmailData{
		EntityType:      record.EntityType,
		Location:        record.Location,
		SizeFormatted:   domain.FormatAmount(record.SizeSqft),
		AmountFormatted: domain.FormatAmount(record.AmountINR),
		AmountLabel:     amountLabel(record.AmountSlot),
		SessionID:       record.SessionID,
	}
	if err := w.sender.SendHandoffEmail(ctx, w.teamAddress, data); err != nil {
		return err
	}

	if err := w.repo.MarkNotified(ctx, record.ID); err != nil {
		return err
	}

	w.log.Info("handoff notification sent",
		"handoff_id", record.ID.String(),
		"entity_type", record.EntityType,
	)

	return nil
}

func amountLabel(slot string) string {
	if slot == string(domain.SlotBudget) {
		return "Monthly budget"
	}
	return "Expected rent"
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
