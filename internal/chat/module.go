// Package chat answers chat turns: it routes each message to the booking
// reply, the qualification dialogue or the language model.
package chat

import (
	"homeloans_backend/internal/content"
	apphttp "homeloans_backend/internal/http"
	"homeloans_backend/internal/qualification"
	"homeloans_backend/platform/logger"
	"homeloans_backend/platform/validator"
)

// Module is the chat bounded context implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule wires the turn service. A nil relay answers free-form
// questions with the not-configured error.
func NewModule(cat *content.Catalogue, relay Sender, rates RateSource, leads LeadRecorder, val *validator.Validator, log *logger.Logger) *Module {
	svc := NewService(
		DefaultRouter(),
		qualification.NewFlow(cat.QualificationMessages),
		relay,
		rates,
		leads,
		Copy{
			BookingReply:     cat.BookingReply,
			RelayUnavailable: cat.RelayUnavailable,
			RelayFailed:      cat.RelayFailed,
			LLMNotConfigured: cat.LLMNotConfigured,
		},
		log,
	)
	return &Module{handler: NewHandler(svc, val)}
}

func (m *Module) Name() string {
	return "chat"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Root.POST("/chatbot-api", ctx.ChatRateLimiter.RateLimit(), m.handler.Turn)
}

var _ apphttp.Module = (*Module)(nil)
