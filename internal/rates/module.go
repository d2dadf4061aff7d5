// Package rates owns the brokerage rate sheet: a singleton Postgres row
// fronted by an optional Redis cache.
package rates

import (
	"time"

	"homeloans_backend/internal/events"
	apphttp "homeloans_backend/internal/http"
	"homeloans_backend/platform/logger"
	"homeloans_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Module is the rates bounded context implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule wires the rate store. A nil rdb disables caching.
func NewModule(pool *pgxpool.Pool, rdb *redis.Client, cacheTTL time.Duration, defaultRate float64, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	var store Store = NewRepository(pool)
	if rdb != nil {
		store = NewCachedStore(store, rdb, cacheTTL, log)
	}
	svc := NewService(store, bus, defaultRate, log)
	return &Module{
		handler: NewHandler(svc, val),
		service: svc,
	}
}

// Service exposes the rate service for other modules.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) Name() string {
	return "rates"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.GET("/rates", m.handler.Get)
	ctx.Admin.PUT("/rates", m.handler.Update)
}

var _ apphttp.Module = (*Module)(nil)
