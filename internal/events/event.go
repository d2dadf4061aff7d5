// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"homeloans_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event     = events.Event
	Bus       = events.Bus
	Handler   = events.Handler
	BaseEvent = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadQualified is published after a completed qualification has been stored.
type LeadQualified struct {
	BaseEvent
	LeadID           uuid.UUID `json:"leadId"`
	SessionID        string    `json:"sessionId"`
	LeadScore        string    `json:"leadScore"`
	AnnualIncome     *float64  `json:"annualIncome,omitempty"`
	DownPayment      *float64  `json:"downPayment,omitempty"`
	CreditScore      *string   `json:"creditScore,omitempty"`
	Timeline         *string   `json:"timeline,omitempty"`
	MaxMortgage      float64   `json:"maxMortgage"`
	MaxPropertyValue float64   `json:"maxPropertyValue"`
	MonthlyPayment   float64   `json:"monthlyPayment"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (e LeadQualified) EventName() string { return "leads.lead.qualified" }

// =============================================================================
// Rates Domain Events
// =============================================================================

// RatesUpdated is published when an admin writes a new rate sheet.
type RatesUpdated struct {
	BaseEvent
	FixedRate          float64 `json:"fixedRate"`
	VariableRate       float64 `json:"variableRate"`
	ThreeYearFixedRate float64 `json:"threeYearFixedRate"`
}

func (e RatesUpdated) EventName() string { return "rates.sheet.updated" }
