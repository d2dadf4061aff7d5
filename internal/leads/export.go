package leads

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"homeloans_backend/internal/leads/repository"
	"homeloans_backend/platform/sanitize"
)

const csvContentType = "text/csv"

var csvHeaders = []string{
	"id",
	"created_at",
	"session_id",
	"lead_score",
	"annual_income",
	"down_payment",
	"monthly_debt",
	"credit_score",
	"property_costs",
	"timeline",
	"max_mortgage",
	"max_property_value",
	"monthly_payment",
	"fixed_rate",
}

// WriteCSV writes the header row followed by one row per lead.
func WriteCSV(w io.Writer, items []repository.Lead) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeaders); err != nil {
		return err
	}
	for _, l := range items {
		if err := writer.Write(csvRow(l)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// RenderCSV is WriteCSV into memory.
func RenderCSV(items []repository.Lead) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, items); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func csvRow(l repository.Lead) []string {
	return []string{
		l.ID.String(),
		l.CreatedAt.UTC().Format(time.RFC3339),
		sanitize.CSVCell(l.SessionID),
		l.LeadScore,
		formatNumber(l.AnnualIncome),
		formatNumber(l.DownPayment),
		formatNumber(l.MonthlyDebt),
		formatText(l.CreditScore),
		formatNumber(l.PropertyCosts),
		formatText(l.Timeline),
		formatNumber(l.MaxMortgage),
		formatNumber(l.MaxPropertyValue),
		formatNumber(l.MonthlyPayment),
		strconv.FormatFloat(l.FixedRate, 'f', -1, 64),
	}
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatText(v *string) string {
	if v == nil {
		return ""
	}
	return sanitize.CSVCell(*v)
}
