package qualification

import (
	"math"
	"strings"
	"testing"
)

func TestScore(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	s := func(v string) *string { return &v }

	tests := []struct {
		name   string
		record LeadRecord
		want   Tier
	}{
		{
			name:   "hot immediate buyer",
			record: LeadRecord{AnnualIncome: f(120000), DownPayment: f(50000), CreditScore: s(CreditExcellent), Timeline: s(TimelineImmediately)},
			want:   TierHot,
		},
		{
			name:   "hot within three months good credit",
			record: LeadRecord{AnnualIncome: f(100000), CreditScore: s(CreditGood), Timeline: s(TimelineZeroToThree)},
			want:   TierHot,
		},
		{
			name:   "fair credit is below threshold",
			record: LeadRecord{AnnualIncome: f(200000), CreditScore: s(CreditFair), Timeline: s(TimelineImmediately)},
			want:   TierCold,
		},
		{
			name:   "warm mid timeline",
			record: LeadRecord{AnnualIncome: f(75000), CreditScore: s(CreditGood), Timeline: s(TimelineThreeToSix)},
			want:   TierWarm,
		},
		{
			name:   "warm needs income",
			record: LeadRecord{AnnualIncome: f(74999), CreditScore: s(CreditGood), Timeline: s(TimelineThreeToSix)},
			want:   TierCold,
		},
		{
			name:   "immediate with low income is not warm",
			record: LeadRecord{AnnualIncome: f(90000), CreditScore: s(CreditExcellent), Timeline: s(TimelineImmediately)},
			want:   TierCold,
		},
		{
			name:   "not sure credit",
			record: LeadRecord{AnnualIncome: f(150000), CreditScore: s(CreditNotSure), Timeline: s(TimelineImmediately)},
			want:   TierCold,
		},
		{
			name:   "long timeline",
			record: LeadRecord{AnnualIncome: f(60000), Timeline: s(TimelineLonger)},
			want:   TierCold,
		},
		{
			name:   "empty record",
			record: LeadRecord{},
			want:   TierCold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.record); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestEstimateMortgage(t *testing.T) {
	income, down := 100000.0, 20000.0
	est, ok := EstimateMortgage(LeadRecord{AnnualIncome: &income, DownPayment: &down}, 5.5)
	if !ok {
		t.Fatal("expected estimate")
	}
	if est.MaxMortgage != 450000 {
		t.Fatalf("expected max mortgage 450000, got %v", est.MaxMortgage)
	}
	if est.MaxPropertyValue != 470000 {
		t.Fatalf("expected max property value 470000, got %v", est.MaxPropertyValue)
	}

	r := 5.5 / 100 / 12
	want := 450000 * r / (1 - math.Pow(1+r, -300))
	if math.Abs(est.MonthlyPayment-want) > 1e-6 {
		t.Fatalf("expected payment %v, got %v", want, est.MonthlyPayment)
	}
	if est.MonthlyPayment < 2750 || est.MonthlyPayment > 2780 {
		t.Fatalf("expected payment near 2765, got %v", est.MonthlyPayment)
	}
}

func TestEstimateMortgageMissingDownPayment(t *testing.T) {
	income := 80000.0
	est, ok := EstimateMortgage(LeadRecord{AnnualIncome: &income}, 5.5)
	if !ok {
		t.Fatal("expected estimate")
	}
	if est.MaxPropertyValue != est.MaxMortgage {
		t.Fatalf("expected property value to equal mortgage, got %v and %v", est.MaxPropertyValue, est.MaxMortgage)
	}
}

func TestEstimateMortgageMissingIncome(t *testing.T) {
	if _, ok := EstimateMortgage(LeadRecord{}, 5.5); ok {
		t.Fatal("expected no estimate without income")
	}
}

func TestMonthlyPaymentDegenerateRates(t *testing.T) {
	for _, rate := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if got := MonthlyPayment(450000, rate, 300); got != 0 {
			t.Fatalf("rate %v: expected 0, got %v", rate, got)
		}
	}
}

func TestEstimateDescribeFillsPlaceholders(t *testing.T) {
	income := 100000.0
	est, _ := EstimateMortgage(LeadRecord{AnnualIncome: &income}, 5.5)

	got := est.Describe("{max_mortgage} / {max_property_value} / {monthly_payment} / {fixed_rate}")
	if strings.Contains(got, "{") {
		t.Fatalf("expected placeholders replaced, got %q", got)
	}
	for _, want := range []string{"$450", "5.50%"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}
