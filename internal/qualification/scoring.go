package qualification

// Tier classifies a completed lead.
type Tier string

const (
	TierHot  Tier = "hot"
	TierWarm Tier = "warm"
	TierCold Tier = "cold"
)

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierHot, TierWarm, TierCold:
		return true
	}
	return false
}

const (
	minCreditForHotOrWarm = 650
	hotIncomeThreshold    = 100000
	warmIncomeThreshold   = 75000
)

// CreditScoreValue maps a credit band label to the representative score used
// by the scorer. "Poor below 580" and "Not sure" have no value.
func CreditScoreValue(label string) (int, bool) {
	switch label {
	case CreditExcellent:
		return 740, true
	case CreditGood:
		return 670, true
	case CreditFair:
		return 580, true
	}
	return 0, false
}

// Score classifies a record. Rules are evaluated in order, first match wins.
func Score(r LeadRecord) Tier {
	income := valueOr(r.AnnualIncome, 0)
	timeline := valueOr(r.Timeline, "")
	credit, hasCredit := CreditScoreValue(valueOr(r.CreditScore, ""))
	goodCredit := hasCredit && credit >= minCreditForHotOrWarm

	switch {
	case (timeline == TimelineImmediately || timeline == TimelineZeroToThree) &&
		goodCredit && income >= hotIncomeThreshold:
		return TierHot
	case timeline == TimelineThreeToSix && goodCredit && income >= warmIncomeThreshold:
		return TierWarm
	default:
		return TierCold
	}
}
