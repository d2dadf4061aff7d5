package admin

import (
	"net/http"

	"homeloans_backend/platform/apperr"
	"homeloans_backend/platform/httpkit"
	"homeloans_backend/platform/logger"
	"homeloans_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "Invalid request"
	msgValidationFailed = "Validation failed"
)

type Handler struct {
	svc *Service
	val *validator.Validator
	log *logger.Logger
}

func NewHandler(svc *Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, val: val, log: log}
}

// Login handles POST /api/admin/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Describe(err))
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req.Password)
	log := h.log.WithContext(c.Request.Context())
	if err != nil {
		log.AuthEvent("admin_login", c.ClientIP(), false, apperrReason(err))
		httpkit.HandleError(c, err)
		return
	}
	log.AuthEvent("admin_login", c.ClientIP(), true, "")
	httpkit.OK(c, resp)
}

func apperrReason(err error) string {
	switch apperr.GetKind(err) {
	case apperr.KindUnauthorized:
		return "invalid_credentials"
	case apperr.KindForbidden:
		return "disabled"
	}
	return "error"
}
