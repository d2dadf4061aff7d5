package qualification

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Answer is a typed value extracted for one question.
type Answer struct {
	Field  Field
	Number float64
	Label  string
}

// Extract parses free text into an answer for q. It reports false when the
// text does not contain a usable value.
func Extract(q Question, text string) (Answer, bool) {
	switch {
	case q.Kind == KindNumeric:
		n, ok := ExtractNumber(text)
		return Answer{Field: q.Field, Number: n}, ok
	case q.Field == FieldCreditScore:
		label, ok := extractCreditScore(q.Options, text)
		return Answer{Field: q.Field, Label: label}, ok
	default:
		label, ok := matchOption(q.Options, text)
		return Answer{Field: q.Field, Label: label}, ok
	}
}

// ExtractNumber returns the first decimal number in text, ignoring thousands separators.
func ExtractNumber(text string) (float64, bool) {
	match := numberPattern.FindString(strings.ReplaceAll(text, ",", ""))
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

var creditKeywords = []struct {
	keyword string
	label   string
}{
	{"excellent", CreditExcellent},
	{"good", CreditGood},
	{"fair", CreditFair},
	{"poor", CreditPoor},
	{"not sure", CreditNotSure},
	{"unsure", CreditNotSure},
}

// extractCreditScore matches a full option label first, since labels such as
// "Poor below 580" carry a band boundary that would band upwards as a number.
func extractCreditScore(options []string, text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, opt := range options {
		if strings.Contains(lower, strings.ToLower(opt)) {
			return opt, true
		}
	}
	if n, ok := ExtractNumber(text); ok {
		return creditBand(n), true
	}
	for _, k := range creditKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.label, true
		}
	}
	return "", false
}

func creditBand(score float64) string {
	switch {
	case score >= 740:
		return CreditExcellent
	case score >= 670:
		return CreditGood
	case score >= 580:
		return CreditFair
	default:
		return CreditPoor
	}
}

// matchOption prefers a full label match anywhere in the text, then falls back
// to any single word of a label. Options are tried in order on each pass.
func matchOption(options []string, text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, opt := range options {
		if strings.Contains(lower, strings.ToLower(opt)) {
			return opt, true
		}
	}

	words := make(map[string]struct{})
	for _, w := range tokenize(lower) {
		words[w] = struct{}{}
	}
	for _, opt := range options {
		for _, w := range tokenize(strings.ToLower(opt)) {
			if _, ok := words[w]; ok {
				return opt, true
			}
		}
	}
	return "", false
}

// tokenize splits on whitespace and trims surrounding punctuation. Tokens with
// no letters or digits (such as "/") are dropped.
func tokenize(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
