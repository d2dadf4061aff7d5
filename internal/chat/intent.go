package chat

import (
	"regexp"
	"strings"

	"homeloans_backend/internal/qualification"
)

// Intent is the path a turn takes.
type Intent int

const (
	IntentFallback Intent = iota
	IntentBooking
	IntentRestart
	IntentStartQualification
	IntentContinue
)

func (i Intent) String() string {
	switch i {
	case IntentBooking:
		return "booking"
	case IntentRestart:
		return "restart"
	case IntentStartQualification:
		return "start_qualification"
	case IntentContinue:
		return "continue"
	}
	return "fallback"
}

// Matcher decides whether a message triggers a rule.
type Matcher interface {
	Match(text string) bool
}

// PatternMatcher matches when any pattern occurs anywhere in the text.
type PatternMatcher struct {
	patterns []*regexp.Regexp
}

// NewPatternMatcher compiles case-insensitive, unanchored patterns.
func NewPatternMatcher(patterns ...string) PatternMatcher {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	return PatternMatcher{patterns: compiled}
}

func (m PatternMatcher) Match(text string) bool {
	for _, re := range m.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// PhraseMatcher matches the whole trimmed text, ignoring case.
type PhraseMatcher string

func (m PhraseMatcher) Match(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), string(m))
}

type anyText struct{}

func (anyText) Match(string) bool { return true }

// Rule maps a matcher to an intent. A nil Guard always passes.
type Rule struct {
	Intent  Intent
	Matcher Matcher
	Guard   func(qualification.State) bool
}

// Router picks the first rule whose guard and matcher both accept the turn.
type Router struct {
	rules []Rule
}

// NewRouter builds a router over rules in precedence order.
func NewRouter(rules ...Rule) *Router {
	return &Router{rules: rules}
}

// Route classifies text given the caller's state.
func (r *Router) Route(text string, state qualification.State) Intent {
	for _, rule := range r.rules {
		if rule.Guard != nil && !rule.Guard(state) {
			continue
		}
		if rule.Matcher.Match(text) {
			return rule.Intent
		}
	}
	return IntentFallback
}

var (
	bookingPatterns = []string{
		`book`, `schedule`, `appointment`, `meeting`, `get an appointment`,
		`see a broker`, `meet`, `consult`, `call`, `talk to`, `speak to`, `visit`,
	}
	qualificationPatterns = []string{
		`qualif`, `afford`, `pre-?approv`, `budget`, `eligib`,
		`how much (?:can|could) i (?:borrow|get)`,
		`how much (?:house|home|mortgage)`,
		`mortgage calculator`,
	}
)

const restartPhrase = "start qualification"

func notInProgress(s qualification.State) bool { return !s.InProgress }

func inProgress(s qualification.State) bool { return s.InProgress }

// DefaultRouter is booking, then restart, then qualification intent (only
// when no dialogue is running), then flow continuation.
func DefaultRouter() *Router {
	return NewRouter(
		Rule{Intent: IntentBooking, Matcher: NewPatternMatcher(bookingPatterns...)},
		Rule{Intent: IntentRestart, Matcher: PhraseMatcher(restartPhrase)},
		Rule{Intent: IntentStartQualification, Matcher: NewPatternMatcher(qualificationPatterns...), Guard: notInProgress},
		Rule{Intent: IntentContinue, Matcher: anyText{}, Guard: inProgress},
	)
}
