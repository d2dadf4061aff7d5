package rates

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no rate sheet has been written yet.
var ErrNotFound = errors.New("rate sheet not found")

// RateSheet is the brokerage's current posted rates, in percent.
type RateSheet struct {
	FixedRate          float64   `json:"fixed_rate"`
	VariableRate       float64   `json:"variable_rate"`
	ThreeYearFixedRate float64   `json:"three_year_fixed_rate"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Store reads and writes the singleton rate sheet.
type Store interface {
	Read(ctx context.Context) (RateSheet, error)
	Write(ctx context.Context, sheet RateSheet) (RateSheet, error)
}

// UpdateRatesRequest is the admin payload for PUT /api/admin/rates.
type UpdateRatesRequest struct {
	FixedRate          float64 `json:"fixed_rate" validate:"gt=0,lt=100"`
	VariableRate       float64 `json:"variable_rate" validate:"gt=0,lt=100"`
	ThreeYearFixedRate float64 `json:"three_year_fixed_rate" validate:"gt=0,lt=100"`
}
