package rates

import (
	"context"
	"errors"

	"homeloans_backend/internal/events"
	"homeloans_backend/platform/apperr"
	"homeloans_backend/platform/logger"
)

// Service exposes rate sheet reads and admin updates.
type Service struct {
	store       Store
	bus         events.Bus
	defaultRate float64
	log         *logger.Logger
}

func NewService(store Store, bus events.Bus, defaultRate float64, log *logger.Logger) *Service {
	return &Service{store: store, bus: bus, defaultRate: defaultRate, log: log}
}

// Current returns the rate sheet, mapping a missing sheet to a not found error.
func (s *Service) Current(ctx context.Context) (RateSheet, error) {
	sheet, err := s.store.Read(ctx)
	if errors.Is(err, ErrNotFound) {
		return RateSheet{}, apperr.NotFound("Rates not available")
	}
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("read rate sheet", err)
		return RateSheet{}, apperr.Wrap(apperr.KindInternal, "Failed to load rates", err)
	}
	return sheet, nil
}

// FixedRate returns the posted 5-year fixed rate, or the configured default
// when no usable sheet is available.
func (s *Service) FixedRate(ctx context.Context) float64 {
	sheet, err := s.store.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.WithContext(ctx).DatabaseError("read rate sheet", err)
		}
		return s.defaultRate
	}
	if sheet.FixedRate <= 0 {
		return s.defaultRate
	}
	return sheet.FixedRate
}

// Update writes a new sheet and announces it.
func (s *Service) Update(ctx context.Context, req UpdateRatesRequest) (RateSheet, error) {
	sheet, err := s.store.Write(ctx, RateSheet{
		FixedRate:          req.FixedRate,
		VariableRate:       req.VariableRate,
		ThreeYearFixedRate: req.ThreeYearFixedRate,
	})
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("write rate sheet", err)
		return RateSheet{}, apperr.Wrap(apperr.KindInternal, "Failed to update rates", err)
	}

	s.bus.Publish(ctx, events.RatesUpdated{
		BaseEvent:          events.NewBaseEvent(),
		FixedRate:          sheet.FixedRate,
		VariableRate:       sheet.VariableRate,
		ThreeYearFixedRate: sheet.ThreeYearFixedRate,
	})
	return sheet, nil
}
