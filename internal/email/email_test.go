package email

import (
	"strings"
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

func TestRenderLeadAlertWithEstimate(t *testing.T) {
	alert := LeadAlert{
		LeadID:           "c0ffee00-0000-0000-0000-000000000000",
		SessionID:        "sess-<1>",
		LeadScore:        "hot",
		AnnualIncome:     ptr(120000.0),
		DownPayment:      ptr(50000.0),
		CreditScore:      ptr("Excellent (740+)"),
		Timeline:         ptr("Right away / Immediately"),
		MaxMortgage:      ptr(432000.0),
		MaxPropertyValue: ptr(482000.0),
		MonthlyPayment:   ptr(2638.12),
		FixedRate:        5.5,
		CreatedAt:        time.Date(2026, 3, 1, 15, 4, 0, 0, time.UTC),
	}

	body, err := RenderLeadAlert(alert, "6045550123")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"New HOT lead",
		"$120,000",
		"$432,000",
		"$2,638.12",
		"5.50%",
		"(604) 555-0123",
		"sess-&lt;1&gt;",
		"Mar 1, 2026 15:04 UTC",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body:\n%s", want, body)
		}
	}
	if strings.Contains(body, "did not give an income") {
		t.Fatal("expected estimate section")
	}
	if got := LeadAlertSubject(alert); got != "New hot lead from the mortgage assistant" {
		t.Fatalf("unexpected subject %q", got)
	}
}

func TestRenderLeadAlertWithoutEstimate(t *testing.T) {
	body, err := RenderLeadAlert(LeadAlert{LeadScore: "warm"}, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(body, "did not give an income") {
		t.Fatalf("expected missing-estimate note, got:\n%s", body)
	}
	if strings.Contains(body, "&middot;") {
		t.Fatal("expected no phone in footer")
	}
}
