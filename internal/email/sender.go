package email

import (
	"context"
	"time"
)

// LeadAlert is what the broker is told about a freshly qualified lead.
type LeadAlert struct {
	LeadID           string
	SessionID        string
	LeadScore        string
	AnnualIncome     *float64
	DownPayment      *float64
	MonthlyDebt      *float64
	CreditScore      *string
	PropertyCosts    *float64
	Timeline         *string
	MaxMortgage      *float64
	MaxPropertyValue *float64
	MonthlyPayment   *float64
	FixedRate        float64
	CreatedAt        time.Time
}

type Sender interface {
	SendLeadAlert(ctx context.Context, toEmail string, alert LeadAlert) error
}

type NoopSender struct{}

func (NoopSender) SendLeadAlert(ctx context.Context, toEmail string, alert LeadAlert) error {
	return nil
}
