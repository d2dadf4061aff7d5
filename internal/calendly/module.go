// Package calendly proxies the brokerage's Calendly event types to the site.
package calendly

import (
	apphttp "homeloans_backend/internal/http"
	"homeloans_backend/platform/config"
	"homeloans_backend/platform/logger"
)

// Module wires the Calendly events route.
type Module struct {
	handler *Handler
}

func NewModule(cfg config.CalendlyConfig, log *logger.Logger) *Module {
	svc := NewService(cfg, log)
	h := NewHandler(svc)
	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "calendly"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.GET("/calendly-events", m.handler.ListEventTypes)
}

var _ apphttp.Module = (*Module)(nil)
