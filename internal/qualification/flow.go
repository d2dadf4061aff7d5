package qualification

import (
	"fmt"
	"html"
	"strings"
)

const lineBreak = "<br>"

// Outcome tells the caller what a transition did.
type Outcome int

const (
	OutcomeStarted Outcome = iota
	OutcomeAdvanced
	OutcomeReprompt
	OutcomeDeclined
	OutcomeCompleted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStarted:
		return "started"
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeReprompt:
		return "reprompt"
	case OutcomeDeclined:
		return "declined"
	case OutcomeCompleted:
		return "completed"
	}
	return "unknown"
}

// Resource is an educational link appended to cold-lead replies.
type Resource struct {
	Title string
	URL   string
}

// Messages is the copy the dialogue speaks. It is built once at startup.
type Messages struct {
	Intro            string
	Decline          string
	NumericGuidance  string
	ChoiceGuidance   string
	EstimateSummary  string
	MissingIncome    string
	Tiers            map[Tier]string
	ResourcesHeading string
	Resources        []Resource
}

// Step is the result of one transition. Reply is empty only for
// OutcomeCompleted, where the caller is expected to call Finalize.
type Step struct {
	Reply   string
	State   State
	Record  LeadRecord
	Outcome Outcome
}

// Result is the scored, estimated end of a dialogue.
type Result struct {
	Tier        Tier
	Estimate    Estimate
	HasEstimate bool
	Message     string
}

// Flow drives the dialogue. It holds no per-conversation state.
type Flow struct {
	msgs Messages
}

// NewFlow creates a flow speaking msgs.
func NewFlow(msgs Messages) *Flow {
	return &Flow{msgs: msgs}
}

// Start begins a fresh dialogue at question 1 with an empty record.
func (f *Flow) Start() Step {
	q, _ := QuestionAt(1)
	reply := RenderQuestion(q)
	if f.msgs.Intro != "" {
		reply = f.msgs.Intro + lineBreak + lineBreak + reply
	}
	return Step{
		Reply:   reply,
		State:   askingState(1),
		Record:  LeadRecord{},
		Outcome: OutcomeStarted,
	}
}

// Advance applies one user message to the dialogue.
func (f *Flow) Advance(state State, record LeadRecord, input string) Step {
	switch state.Phase() {
	case PhaseAwaitingConsent:
		if IsAffirmative(input) {
			return f.Start()
		}
		return Step{
			Reply:   f.msgs.Decline,
			State:   State{},
			Record:  LeadRecord{},
			Outcome: OutcomeDeclined,
		}
	case PhaseAsking:
		return f.answer(state, record, input)
	default:
		return f.Start()
	}
}

func (f *Flow) answer(state State, record LeadRecord, input string) Step {
	q, _ := QuestionAt(state.CurrentQuestion)
	ans, ok := Extract(q, input)
	if !ok {
		return Step{
			Reply:   f.reprompt(q),
			State:   state,
			Record:  record,
			Outcome: OutcomeReprompt,
		}
	}

	record = record.With(ans)
	if q.Ordinal == TotalQuestions {
		return Step{State: completedState(), Record: record, Outcome: OutcomeCompleted}
	}

	next, _ := QuestionAt(q.Ordinal + 1)
	return Step{
		Reply:   RenderQuestion(next),
		State:   askingState(next.Ordinal),
		Record:  record,
		Outcome: OutcomeAdvanced,
	}
}

func (f *Flow) reprompt(q Question) string {
	guidance := f.msgs.NumericGuidance
	if q.Kind == KindCategorical {
		guidance = f.msgs.ChoiceGuidance
	}
	if guidance == "" {
		return RenderQuestion(q)
	}
	return guidance + lineBreak + RenderQuestion(q)
}

// Finalize scores and estimates a completed record and renders the closing message.
func (f *Flow) Finalize(record LeadRecord, fixedRate float64) Result {
	tier := Score(record)
	est, ok := EstimateMortgage(record, fixedRate)

	parts := make([]string, 0, 3)
	if ok {
		parts = append(parts, est.Describe(f.msgs.EstimateSummary))
	} else {
		parts = append(parts, f.msgs.MissingIncome)
	}
	if msg := f.msgs.Tiers[tier]; msg != "" {
		parts = append(parts, msg)
	}
	if tier == TierCold && len(f.msgs.Resources) > 0 {
		parts = append(parts, f.renderResources())
	}

	return Result{
		Tier:        tier,
		Estimate:    est,
		HasEstimate: ok,
		Message:     strings.Join(parts, lineBreak+lineBreak),
	}
}

func (f *Flow) renderResources() string {
	var b strings.Builder
	b.WriteString(f.msgs.ResourcesHeading)
	for _, r := range f.msgs.Resources {
		if b.Len() > 0 {
			b.WriteString(lineBreak)
		}
		fmt.Fprintf(&b, "<a href='%s' target='_blank'>%s</a>", html.EscapeString(r.URL), html.EscapeString(r.Title))
	}
	return b.String()
}

// RenderQuestion formats q with its position and, for categorical
// questions, the allowed options.
func RenderQuestion(q Question) string {
	text := fmt.Sprintf("Question %d of %d. %s", q.Ordinal, TotalQuestions, q.Prompt)
	if len(q.Options) > 0 {
		text += lineBreak + "Options: " + strings.Join(q.Options, ", ")
	}
	return text
}

var affirmatives = map[string]struct{}{
	"yes": {}, "yeah": {}, "sure": {}, "okay": {}, "ok": {}, "yep": {},
}

// IsAffirmative reports whether any word of text is a yes.
func IsAffirmative(text string) bool {
	for _, w := range tokenize(strings.ToLower(text)) {
		if _, ok := affirmatives[w]; ok {
			return true
		}
	}
	return false
}
