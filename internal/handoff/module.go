// Package handoff provides the handoff domain module.
package handoff

import (
	"spacematch_backend/internal/events"
	"spacematch_backend/internal/handoff/handler"
	"spacematch_backend/internal/handoff/repository"
	"spacematch_backend/internal/handoff/service"
	apphttp "spacematch_backend/internal/http"
	"spacematch_backend/platform/logger"
	"spacematch_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the handoff domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new handoff module with all dependencies wired
func NewModule(pool *pgxpool.Pool, notifier service.Notifier, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, notifier, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Service exposes the handoff service for the worker and event wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterHandlers subscribes the module to domain events.
func (m *Module) RegisterHandlers(bus events.Bus) {
	m.service.RegisterHandlers(bus)
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "handoff"
}

// RegisterRoutes registers the module's routes under /api/v1/handoffs
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	handoffs := ctx.Public.Group("/handoffs")
	m.handler.RegisterRoutes(handoffs)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
