// Package notification reacts to domain events by alerting the broker.
// Qualified hot and warm leads are emailed to BROKER_EMAIL, through the
// asynq queue when one is configured and inline otherwise.
package notification

import (
	"context"
	"errors"
	"fmt"

	"homeloans_backend/internal/email"
	"homeloans_backend/internal/events"
	leadrepo "homeloans_backend/internal/leads/repository"
	"homeloans_backend/internal/qualification"
	"homeloans_backend/platform/logger"

	"github.com/google/uuid"
)

// LeadReader loads a stored lead.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (leadrepo.Lead, error)
}

// AlertQueue defers alert delivery to the worker process.
type AlertQueue interface {
	EnqueueLeadAlert(ctx context.Context, leadID uuid.UUID) error
}

// Module handles the notification-related event subscriptions.
type Module struct {
	sender      email.Sender
	leads       LeadReader
	queue       AlertQueue
	brokerEmail string
	log         *logger.Logger
}

// New creates a notification module. Alerts are disabled when brokerEmail is empty.
func New(sender email.Sender, leads LeadReader, brokerEmail string, log *logger.Logger) *Module {
	if sender == nil {
		sender = email.NoopSender{}
	}
	return &Module{
		sender:      sender,
		leads:       leads,
		brokerEmail: brokerEmail,
		log:         log,
	}
}

// SetAlertQueue routes lead alerts through q instead of sending inline.
func (m *Module) SetAlertQueue(q AlertQueue) {
	m.queue = q
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadQualified{}.EventName(), m)
	bus.Subscribe(events.RatesUpdated{}.EventName(), m)
}

// Handle implements events.Handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadQualified:
		return m.handleLeadQualified(ctx, e)
	case events.RatesUpdated:
		m.log.WithContext(ctx).Info("rate sheet updated",
			"fixed_rate", e.FixedRate,
			"variable_rate", e.VariableRate,
			"three_year_fixed_rate", e.ThreeYearFixedRate,
		)
		return nil
	}
	return nil
}

func (m *Module) handleLeadQualified(ctx context.Context, e events.LeadQualified) error {
	if m.brokerEmail == "" || !alertable(e.LeadScore) {
		return nil
	}

	if m.queue != nil {
		if err := m.queue.EnqueueLeadAlert(ctx, e.LeadID); err != nil {
			return fmt.Errorf("enqueue lead alert: %w", err)
		}
		m.log.WithContext(ctx).Info("lead alert queued", "lead_id", e.LeadID, "lead_score", e.LeadScore)
		return nil
	}
	return m.DeliverLeadAlert(ctx, e.LeadID)
}

// DeliverLeadAlert loads the lead and emails it to the broker.
func (m *Module) DeliverLeadAlert(ctx context.Context, leadID uuid.UUID) error {
	if m.brokerEmail == "" {
		return nil
	}
	if m.leads == nil {
		return errors.New("lead reader not configured")
	}

	lead, err := m.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, leadrepo.ErrNotFound) {
			m.log.WithContext(ctx).Warn("lead alert dropped, lead not found", "lead_id", leadID)
			return nil
		}
		return fmt.Errorf("load lead %s: %w", leadID, err)
	}

	if err := m.sender.SendLeadAlert(ctx, m.brokerEmail, alertFromLead(lead)); err != nil {
		return fmt.Errorf("send lead alert: %w", err)
	}
	m.log.WithContext(ctx).Info("lead alert sent", "lead_id", leadID, "lead_score", lead.LeadScore)
	return nil
}

func alertable(score string) bool {
	tier := qualification.Tier(score)
	return tier == qualification.TierHot || tier == qualification.TierWarm
}

func alertFromLead(l leadrepo.Lead) email.LeadAlert {
	return email.LeadAlert{
		LeadID:           l.ID.String(),
		SessionID:        l.SessionID,
		LeadScore:        l.LeadScore,
		AnnualIncome:     l.AnnualIncome,
		DownPayment:      l.DownPayment,
		MonthlyDebt:      l.MonthlyDebt,
		CreditScore:      l.CreditScore,
		PropertyCosts:    l.PropertyCosts,
		Timeline:         l.Timeline,
		MaxMortgage:      l.MaxMortgage,
		MaxPropertyValue: l.MaxPropertyValue,
		MonthlyPayment:   l.MonthlyPayment,
		FixedRate:        l.FixedRate,
		CreatedAt:        l.CreatedAt,
	}
}
