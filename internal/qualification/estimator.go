package qualification

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultFixedRate is used when no rate sheet is available.
	DefaultFixedRate = 5.5
	// AmortizationPayments is a 25-year term paid monthly.
	AmortizationPayments = 300
	incomeMultiple       = 4.5
)

// Estimate is a rough affordability figure.
type Estimate struct {
	MaxMortgage      float64 `json:"max_mortgage"`
	MaxPropertyValue float64 `json:"max_property_value"`
	MonthlyPayment   float64 `json:"monthly_payment"`
	FixedRate        float64 `json:"fixed_rate"`
}

// EstimateMortgage computes affordability from the record. It reports false
// when annual income is missing.
func EstimateMortgage(r LeadRecord, fixedRate float64) (Estimate, bool) {
	if r.AnnualIncome == nil {
		return Estimate{FixedRate: fixedRate}, false
	}
	maxMortgage := *r.AnnualIncome * incomeMultiple
	return Estimate{
		MaxMortgage:      maxMortgage,
		MaxPropertyValue: maxMortgage + valueOr(r.DownPayment, 0),
		MonthlyPayment:   MonthlyPayment(maxMortgage, fixedRate, AmortizationPayments),
		FixedRate:        fixedRate,
	}, true
}

// MonthlyPayment is the standard amortized payment for principal at an annual
// percentage rate over n monthly payments. Degenerate inputs yield 0.
func MonthlyPayment(principal, annualRatePct float64, n int) float64 {
	r := annualRatePct / 100 / 12
	if r <= 0 || n <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	payment := principal * r / (1 - math.Pow(1+r, -float64(n)))
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return 0
	}
	return payment
}

var moneyPrinter = message.NewPrinter(language.English)

func formatMoney(v float64) string {
	return moneyPrinter.Sprintf("$%.0f", v)
}

func formatCents(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", v)
}

func formatRate(v float64) string {
	return moneyPrinter.Sprintf("%.2f%%", v)
}

// Describe renders the estimate into the copy template. Placeholders are
// {max_mortgage}, {max_property_value}, {monthly_payment} and {fixed_rate}.
func (e Estimate) Describe(template string) string {
	return strings.NewReplacer(
		"{max_mortgage}", formatMoney(e.MaxMortgage),
		"{max_property_value}", formatMoney(e.MaxPropertyValue),
		"{monthly_payment}", formatCents(e.MonthlyPayment),
		"{fixed_rate}", formatRate(e.FixedRate),
	).Replace(template)
}
