// Package admin issues the access tokens that guard the /api/admin routes.
package admin

import (
	apphttp "homeloans_backend/internal/http"
	"homeloans_backend/platform/config"
	"homeloans_backend/platform/logger"
	"homeloans_backend/platform/validator"
)

// Module is the admin login bounded context implementing http.Module.
type Module struct {
	handler *Handler
}

func NewModule(cfg config.AdminConfig, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(NewService(cfg), val, log)}
}

func (m *Module) Name() string {
	return "admin"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.AdminPublic.POST("/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)
}

var _ apphttp.Module = (*Module)(nil)
