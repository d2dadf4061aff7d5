package email

const (
	subjectLeadAlertFmt = "New %s lead from the mortgage assistant"
)
