package calendly

import (
	"errors"
	"net/http"

	"homeloans_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the Calendly passthrough.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListEventTypes handles GET /api/calendly-events
func (h *Handler) ListEventTypes(c *gin.Context) {
	items, err := h.svc.ListEventTypes(c.Request.Context())
	if errors.Is(err, ErrNotConfigured) {
		httpkit.Error(c, http.StatusInternalServerError, "Calendly API key or user URI not configured", nil)
		return
	}
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "Failed to fetch Calendly events", nil)
		return
	}

	httpkit.OK(c, EventTypesResponse{EventTypes: items})
}
