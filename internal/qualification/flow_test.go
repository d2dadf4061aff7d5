package qualification

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func testMessages() Messages {
	return Messages{
		Intro:           "Let's see what you could qualify for.",
		Decline:         "No problem. Ask me anything else.",
		NumericGuidance: "Please answer with a number.",
		ChoiceGuidance:  "Please pick one of the options.",
		EstimateSummary: "Mortgage {max_mortgage}, home {max_property_value}, payment {monthly_payment} at {fixed_rate}. This is a rough estimate.",
		MissingIncome:   "I need your income to estimate.",
		Tiers: map[Tier]string{
			TierHot:  "HOT",
			TierWarm: "WARM",
			TierCold: "COLD",
		},
		ResourcesHeading: "Resources:",
		Resources: []Resource{
			{Title: "CMHC", URL: "https://example.org/cmhc"},
			{Title: "FCAC mortgages", URL: "https://example.org/fcac-mortgages"},
			{Title: "FCAC credit", URL: "https://example.org/fcac-credit"},
		},
	}
}

func TestStartEmitsFirstQuestion(t *testing.T) {
	step := NewFlow(testMessages()).Start()

	want := State{InProgress: true, CurrentQuestion: 1}
	if step.State != want {
		t.Fatalf("expected state %+v, got %+v", want, step.State)
	}
	if !strings.Contains(step.Reply, "Question 1 of 6.") {
		t.Fatalf("expected first question in reply, got %q", step.Reply)
	}
	if step.Outcome != OutcomeStarted {
		t.Fatalf("expected outcome started, got %v", step.Outcome)
	}
}

func TestAdvanceFullDialogue(t *testing.T) {
	flow := NewFlow(testMessages())
	step := flow.Start()

	answers := []string{"120,000", "50000", "400", "780", "600", "right away"}
	for i, answer := range answers {
		step = flow.Advance(step.State, step.Record, answer)
		if i < len(answers)-1 {
			if step.Outcome != OutcomeAdvanced {
				t.Fatalf("answer %d: expected advanced, got %v", i+1, step.Outcome)
			}
			prefix := fmt.Sprintf("Question %d of 6.", i+2)
			if !strings.HasPrefix(step.Reply, prefix) {
				t.Fatalf("answer %d: expected reply prefix %q, got %q", i+1, prefix, step.Reply)
			}
		}
	}

	if step.Outcome != OutcomeCompleted {
		t.Fatalf("expected completed, got %v", step.Outcome)
	}
	want := State{Completed: true}
	if step.State != want {
		t.Fatalf("expected state %+v, got %+v", want, step.State)
	}
	if step.State.CurrentQuestion != 0 {
		t.Fatalf("expected current_question 0, got %d", step.State.CurrentQuestion)
	}

	rec := step.Record
	if rec.AnnualIncome == nil || *rec.AnnualIncome != 120000 {
		t.Fatalf("expected annual_income 120000, got %v", rec.AnnualIncome)
	}
	if rec.CreditScore == nil || *rec.CreditScore != CreditExcellent {
		t.Fatalf("expected excellent credit, got %v", rec.CreditScore)
	}
	if rec.Timeline == nil || *rec.Timeline != TimelineImmediately {
		t.Fatalf("expected immediate timeline, got %v", rec.Timeline)
	}

	result := flow.Finalize(rec, DefaultFixedRate)
	if result.Tier != TierHot {
		t.Fatalf("expected hot, got %s", result.Tier)
	}
	if !strings.Contains(result.Message, "HOT") || !strings.Contains(result.Message, "rough estimate") {
		t.Fatalf("unexpected final message %q", result.Message)
	}
}

func TestAdvanceInvalidNumericReprompts(t *testing.T) {
	flow := NewFlow(testMessages())
	state := State{InProgress: true, CurrentQuestion: 2}
	income := 90000.0
	record := LeadRecord{AnnualIncome: &income}

	step := flow.Advance(state, record, "I don't know")

	if step.Outcome != OutcomeReprompt {
		t.Fatalf("expected reprompt, got %v", step.Outcome)
	}
	if step.State != state {
		t.Fatalf("expected state unchanged, got %+v", step.State)
	}
	if step.Record.DownPayment != nil {
		t.Fatalf("expected down_payment untouched, got %v", *step.Record.DownPayment)
	}
	if !strings.Contains(step.Reply, "Question 2 of 6.") || !strings.HasPrefix(step.Reply, "Please answer with a number.") {
		t.Fatalf("unexpected reprompt %q", step.Reply)
	}
}

func TestAdvanceRepromptIsIdempotent(t *testing.T) {
	flow := NewFlow(testMessages())
	state := State{InProgress: true, CurrentQuestion: 4}

	first := flow.Advance(state, LeadRecord{}, "no idea")
	second := flow.Advance(state, LeadRecord{}, "no idea")

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical steps, got %+v and %+v", first, second)
	}
	if !strings.Contains(first.Reply, "Options: "+CreditExcellent) {
		t.Fatalf("expected inline options, got %q", first.Reply)
	}
}

func TestAdvanceConsentGate(t *testing.T) {
	flow := NewFlow(testMessages())

	yes := flow.Advance(AwaitingConsent(), LeadRecord{}, "yes please")
	if yes.State != (State{InProgress: true, CurrentQuestion: 1}) {
		t.Fatalf("expected question 1 after consent, got %+v", yes.State)
	}

	no := flow.Advance(AwaitingConsent(), LeadRecord{}, "no thanks")
	if no.Outcome != OutcomeDeclined {
		t.Fatalf("expected declined, got %v", no.Outcome)
	}
	if no.State != (State{}) {
		t.Fatalf("expected reset state, got %+v", no.State)
	}
	if no.Reply != "No problem. Ask me anything else." {
		t.Fatalf("unexpected decline reply %q", no.Reply)
	}
}

func TestAdvanceInProgressWithoutQuestionRestarts(t *testing.T) {
	step := NewFlow(testMessages()).Advance(State{InProgress: true}, LeadRecord{}, "hello")
	if step.State.CurrentQuestion != 1 {
		t.Fatalf("expected question 1, got %d", step.State.CurrentQuestion)
	}
}

func TestFinalizeColdIncludesResources(t *testing.T) {
	income := 60000.0
	timeline := TimelineLonger
	result := NewFlow(testMessages()).Finalize(LeadRecord{AnnualIncome: &income, Timeline: &timeline}, DefaultFixedRate)

	if result.Tier != TierCold {
		t.Fatalf("expected cold, got %s", result.Tier)
	}
	for _, url := range []string{"https://example.org/cmhc", "https://example.org/fcac-mortgages", "https://example.org/fcac-credit"} {
		if !strings.Contains(result.Message, url) {
			t.Fatalf("expected %s in message %q", url, result.Message)
		}
	}
}

func TestFinalizeWithoutIncome(t *testing.T) {
	result := NewFlow(testMessages()).Finalize(LeadRecord{}, DefaultFixedRate)
	if result.HasEstimate {
		t.Fatal("expected no estimate without income")
	}
	if !strings.HasPrefix(result.Message, "I need your income to estimate.") {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if strings.Contains(result.Message, "$") {
		t.Fatalf("expected no figures, got %q", result.Message)
	}
}

func TestStateValidate(t *testing.T) {
	valid := []State{{}, AwaitingConsent(), {InProgress: true, CurrentQuestion: 6}, {Completed: true}}
	for _, s := range valid {
		if err := s.Validate(); err != nil {
			t.Fatalf("expected %+v valid, got %v", s, err)
		}
	}
	invalid := []State{
		{InProgress: true, CurrentQuestion: 7},
		{CurrentQuestion: -1},
		{InProgress: true, WaitingForResponse: true, CurrentQuestion: 2},
	}
	for _, s := range invalid {
		if err := s.Validate(); err == nil {
			t.Fatalf("expected %+v invalid", s)
		}
	}
}
