package leads

import (
	"net/http"

	"homeloans_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves the admin lead endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /api/admin/leads
func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"leads": items, "count": len(items)})
}

// Stats handles GET /api/admin/leads/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, stats)
}

// ExportCSV handles GET /api/admin/leads/export.csv
func (h *Handler) ExportCSV(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	data, err := RenderCSV(items)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "Failed to render export", nil)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=leads.csv")
	c.Data(http.StatusOK, csvContentType+"; charset=utf-8", data)
}

// Archive handles POST /api/admin/leads/export/archive
func (h *Handler) Archive(c *gin.Context) {
	url, err := h.svc.Archive(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, url)
}
