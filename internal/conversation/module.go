// Package conversation provides the intake conversation domain module.
package conversation

import (
	"spacematch_backend/internal/conversation/engine"
	"spacematch_backend/internal/conversation/handler"
	"spacematch_backend/internal/conversation/service"
	"spacematch_backend/internal/conversation/session"
	"spacematch_backend/internal/events"
	apphttp "spacematch_backend/internal/http"
	"spacematch_backend/platform/logger"
	"spacematch_backend/platform/validator"
)

// Module represents the conversation domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new conversation module with all dependencies wired
func NewModule(eng *engine.Engine, store session.Store, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(eng, store, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "conversation"
}

// RegisterRoutes registers the module's routes under /api/v1/conversation
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	conversation := ctx.Public.Group("/conversation")
	m.handler.RegisterRoutes(conversation)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
