// Package leads owns completed qualifications: recording them from the chat
// flow and the admin list, stats and CSV export views.
package leads

import (
	"homeloans_backend/internal/adapters/storage"
	"homeloans_backend/internal/events"
	apphttp "homeloans_backend/internal/http"
	"homeloans_backend/internal/leads/repository"
	"homeloans_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule wires the lead repository. A nil storageSvc disables archiving.
func NewModule(pool *pgxpool.Pool, bus events.Bus, storageSvc storage.StorageService, bucket string, log *logger.Logger) *Module {
	svc := NewService(repository.New(pool), bus, log)
	if storageSvc != nil {
		svc.SetArchiveStorage(storageSvc, bucket)
	}
	return &Module{
		handler: NewHandler(svc),
		service: svc,
	}
}

// Service exposes the lead service to the chat module.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) Name() string {
	return "leads"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.Admin.Group("/leads")
	g.GET("", m.handler.List)
	g.GET("/stats", m.handler.Stats)
	g.GET("/export.csv", m.handler.ExportCSV)
	g.POST("/export/archive", m.handler.Archive)
}

var _ apphttp.Module = (*Module)(nil)
