package chat

import (
	"net/http"

	"homeloans_backend/platform/httpkit"
	"homeloans_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidInput     = "Invalid input"
	msgValidationFailed = "Validation failed"
)

// Handler serves the chat endpoint.
type Handler struct {
	svc *Service
	val *validator.Validator
}

func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Turn handles POST /chatbot-api
func (h *Handler) Turn(c *gin.Context) {
	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidInput, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Describe(err))
		return
	}

	resp, err := h.svc.Turn(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}
