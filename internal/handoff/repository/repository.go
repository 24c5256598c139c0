package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spacematch_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handoff represents the handoff database model
type Handoff struct {
	ID         uuid.UUID  `db:"id"`
	SessionID  string     `db:"session_id"`
	EntityType string     `db:"entity_type"`
	Location   string     `db:"location"`
	SizeSqft   int64      `db:"size_sqft"`
	AmountINR  int64      `db:"amount_inr"`
	AmountSlot string     `db:"amount_slot"`
	Status     string     `db:"status"`
	NotifiedAt *time.Time `db:"notified_at"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

const (
	StatusPending  = "pending"
	StatusNotified = "notified"
)

const handoffNotFoundMsg = "handoff not found"

// Repository provides database operations for handoffs
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new handoff repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new handoff record
func (r *Repository) Create(ctx context.Context, h *Handoff) error {
	query := `
		INSERT INTO handoffs (
			id, session_id, entity_type, location, size_sqft, amount_inr,
			amount_slot, status, notified_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)`

	_, err := r.pool.Exec(ctx, query,
		h.ID, h.SessionID, h.EntityType, h.Location, h.SizeSqft, h.AmountINR,
		h.AmountSlot, h.Status, h.NotifiedAt, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create handoff: %w", err)
	}

	return nil
}

// GetByID retrieves a handoff by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Handoff, error) {
	var h Handoff
	query := `SELECT id, session_id, entity_type, location, size_sqft, amount_inr,
		amount_slot, status, notified_at, created_at, updated_at
		FROM handoffs WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.SessionID, &h.EntityType, &h.Location, &h.SizeSqft, &h.AmountINR,
		&h.AmountSlot, &h.Status, &h.NotifiedAt, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(handoffNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get handoff: %w", err)
	}

	return &h, nil
}

// GetBySessionID retrieves the most recent handoff for a session, or nil when
// the session never completed an intake.
func (r *Repository) GetBySessionID(ctx context.Context, sessionID string) (*Handoff, error) {
	var h Handoff
	query := `SELECT id, session_id, entity_type, location, size_sqft, amount_inr,
		amount_slot, status, notified_at, created_at, updated_at
		FROM handoffs WHERE session_id = $1 ORDER BY created_at DESC LIMIT 1`

	err := r.pool.QueryRow(ctx, query, sessionID).Scan(
		&h.ID, &h.SessionID, &h.EntityType, &h.Location, &h.SizeSqft, &h.AmountINR,
		&h.AmountSlot, &h.Status, &h.NotifiedAt, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get handoff by session: %w", err)
	}

	return &h, nil
}

// List retrieves handoffs newest-first, optionally filtered by entity type.
func (r *Repository) List(ctx context.Context, entityType string, limit, offset int) ([]Handoff, error) {
	query := `SELECT id, session_id, entity_type, location, size_sqft, amount_inr,
		amount_slot, status, notified_at, created_at, updated_at
		FROM handoffs
		WHERE ($1 = '' OR entity_type = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, entityType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list handoffs: %w", err)
	}
	defer rows.Close()

	var handoffs []Handoff
	for rows.Next() {
		var h Handoff
		if err := rows.Scan(
			&h.ID, &h.SessionID, &h.EntityType, &h.Location, &h.SizeSqft, &h.AmountINR,
			&h.AmountSlot, &h.Status, &h.NotifiedAt, &h.CreatedAt, &h.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan handoff: %w", err)
		}
		handoffs = append(handoffs, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read handoffs: %w", err)
	}

	return handoffs, nil
}

// MarkNotified records that the intake team was notified about the handoff.
func (r *Repository) MarkNotified(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE handoffs SET status = $2, notified_at = NOW(), updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, StatusNotified)
	if err != nil {
		return fmt.Errorf("failed to mark handoff notified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(handoffNotFoundMsg)
	}

	return nil
}
