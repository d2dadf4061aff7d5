// Package qualification implements the scripted six-question lead qualification
// dialogue together with the lead scorer and mortgage estimator it feeds.
// Everything in this package is pure: state is supplied by the caller and
// every transition returns new values.
package qualification

// Kind is the answer type a question expects.
type Kind int

const (
	KindNumeric Kind = iota
	KindCategorical
)

// Field names the LeadRecord attribute a question fills.
type Field string

const (
	FieldAnnualIncome  Field = "annual_income"
	FieldDownPayment   Field = "down_payment"
	FieldMonthlyDebt   Field = "monthly_debt"
	FieldCreditScore   Field = "credit_score"
	FieldPropertyCosts Field = "property_costs"
	FieldTimeline      Field = "timeline"
)

// Credit score option labels.
const (
	CreditExcellent = "Excellent (740+)"
	CreditGood      = "Good (670-739)"
	CreditFair      = "Fair (580-669)"
	CreditPoor      = "Poor below 580"
	CreditNotSure   = "Not sure"
)

// Timeline option labels.
const (
	TimelineImmediately = "Right away / Immediately"
	TimelineZeroToThree = "0-3 months"
	TimelineThreeToSix  = "3-6 months"
	TimelineLonger      = "Longer than 6 months"
)

// Question is an immutable step of the dialogue.
type Question struct {
	Ordinal int
	Prompt  string
	Field   Field
	Kind    Kind
	Options []string
}

// TotalQuestions is the number of questions in the dialogue.
const TotalQuestions = 6

var questions = [TotalQuestions]Question{
	{
		Ordinal: 1,
		Prompt:  "What is your total annual household income before taxes?",
		Field:   FieldAnnualIncome,
		Kind:    KindNumeric,
	},
	{
		Ordinal: 2,
		Prompt:  "How much do you have saved for a down payment?",
		Field:   FieldDownPayment,
		Kind:    KindNumeric,
	},
	{
		Ordinal: 3,
		Prompt:  "What are your total monthly debt payments (car loans, credit cards, student loans)?",
		Field:   FieldMonthlyDebt,
		Kind:    KindNumeric,
	},
	{
		Ordinal: 4,
		Prompt:  "How would you describe your credit score?",
		Field:   FieldCreditScore,
		Kind:    KindCategorical,
		Options: []string{CreditExcellent, CreditGood, CreditFair, CreditPoor, CreditNotSure},
	},
	{
		Ordinal: 5,
		Prompt:  "What do you expect to pay each month in property taxes and strata fees?",
		Field:   FieldPropertyCosts,
		Kind:    KindNumeric,
	},
	{
		Ordinal: 6,
		Prompt:  "When are you hoping to buy?",
		Field:   FieldTimeline,
		Kind:    KindCategorical,
		Options: []string{TimelineImmediately, TimelineZeroToThree, TimelineThreeToSix, TimelineLonger},
	},
}

// QuestionAt returns the question with the given 1-based ordinal.
func QuestionAt(ordinal int) (Question, bool) {
	if ordinal < 1 || ordinal > TotalQuestions {
		return Question{}, false
	}
	return questions[ordinal-1], true
}

// Questions returns the dialogue in order.
func Questions() []Question {
	out := make([]Question, TotalQuestions)
	copy(out, questions[:])
	return out
}
