package qualification

import (
	"errors"
	"fmt"
)

// ErrStateOutOfRange is returned for client state that no transition can produce.
var ErrStateOutOfRange = errors.New("qualification state out of range")

// State is the caller-held progress through the dialogue.
type State struct {
	InProgress         bool `json:"in_progress"`
	CurrentQuestion    int  `json:"current_question"`
	WaitingForResponse bool `json:"waiting_for_response"`
	Completed          bool `json:"completed"`
}

// Phase is the derived position of a State.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseAwaitingConsent
	PhaseAsking
	PhaseCompleted
)

// Validate rejects states outside the dialogue.
func (s State) Validate() error {
	if s.CurrentQuestion < 0 || s.CurrentQuestion > TotalQuestions {
		return fmt.Errorf("%w: current_question must be between 0 and %d", ErrStateOutOfRange, TotalQuestions)
	}
	if s.WaitingForResponse && (!s.InProgress || s.CurrentQuestion != 0) {
		return fmt.Errorf("%w: waiting_for_response requires in_progress and current_question 0", ErrStateOutOfRange)
	}
	return nil
}

// Phase reports where the dialogue stands.
func (s State) Phase() Phase {
	switch {
	case s.Completed && !s.InProgress:
		return PhaseCompleted
	case s.WaitingForResponse:
		return PhaseAwaitingConsent
	case s.InProgress && s.CurrentQuestion >= 1:
		return PhaseAsking
	default:
		return PhaseNotStarted
	}
}

// AwaitingConsent is the state while the yes/no gate is open.
func AwaitingConsent() State {
	return State{InProgress: true, WaitingForResponse: true}
}

func askingState(ordinal int) State {
	return State{InProgress: true, CurrentQuestion: ordinal}
}

func completedState() State {
	return State{Completed: true}
}

// LeadRecord accumulates answers. Unanswered fields are nil.
type LeadRecord struct {
	AnnualIncome  *float64 `json:"annual_income,omitempty"`
	DownPayment   *float64 `json:"down_payment,omitempty"`
	MonthlyDebt   *float64 `json:"monthly_debt,omitempty"`
	CreditScore   *string  `json:"credit_score,omitempty"`
	PropertyCosts *float64 `json:"property_costs,omitempty"`
	Timeline      *string  `json:"timeline,omitempty"`
}

// With returns a copy of r with the answer written to its field.
func (r LeadRecord) With(a Answer) LeadRecord {
	switch a.Field {
	case FieldAnnualIncome:
		r.AnnualIncome = ptr(a.Number)
	case FieldDownPayment:
		r.DownPayment = ptr(a.Number)
	case FieldMonthlyDebt:
		r.MonthlyDebt = ptr(a.Number)
	case FieldCreditScore:
		r.CreditScore = ptr(a.Label)
	case FieldPropertyCosts:
		r.PropertyCosts = ptr(a.Number)
	case FieldTimeline:
		r.Timeline = ptr(a.Label)
	}
	return r
}

func ptr[T any](v T) *T { return &v }

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
