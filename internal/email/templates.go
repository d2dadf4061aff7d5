package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"homeloans_backend/platform/phone"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

var moneyPrinter = message.NewPrinter(language.English)

type baseEmailData struct {
	Title       string
	Heading     string
	Subheading  string
	BrokerPhone string
}

type leadAlertRow struct {
	Label string
	Value string
}

type leadAlertEmailData struct {
	baseEmailData
	LeadScore string
	Rows      []leadAlertRow
	Estimate  []leadAlertRow
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func newLeadAlertData(alert LeadAlert, brokerPhone string) leadAlertEmailData {
	tier := strings.ToUpper(alert.LeadScore)
	data := leadAlertEmailData{
		baseEmailData: baseEmailData{
			Title:       "New qualified lead",
			Heading:     "New " + tier + " lead",
			Subheading:  "Received " + alert.CreatedAt.UTC().Format("Jan 2, 2006 15:04 MST"),
			BrokerPhone: phone.FormatNational(brokerPhone),
		},
		LeadScore: tier,
		Rows: []leadAlertRow{
			{Label: "Annual income", Value: formatCurrencyCAD(alert.AnnualIncome, 0)},
			{Label: "Down payment", Value: formatCurrencyCAD(alert.DownPayment, 0)},
			{Label: "Monthly debt", Value: formatCurrencyCAD(alert.MonthlyDebt, 0)},
			{Label: "Credit score", Value: deref(alert.CreditScore)},
			{Label: "Property costs", Value: formatCurrencyCAD(alert.PropertyCosts, 0)},
			{Label: "Timeline", Value: deref(alert.Timeline)},
			{Label: "Session", Value: alert.SessionID},
		},
	}
	if alert.MaxMortgage != nil {
		data.Estimate = []leadAlertRow{
			{Label: "Max mortgage", Value: formatCurrencyCAD(alert.MaxMortgage, 0)},
			{Label: "Max property value", Value: formatCurrencyCAD(alert.MaxPropertyValue, 0)},
			{Label: "Monthly payment", Value: formatCurrencyCAD(alert.MonthlyPayment, 2)},
			{Label: "Fixed rate", Value: moneyPrinter.Sprintf("%.2f%%", alert.FixedRate)},
		}
	}
	return data
}

func formatCurrencyCAD(v *float64, decimals int) string {
	if v == nil {
		return "-"
	}
	if decimals == 0 {
		return moneyPrinter.Sprintf("$%.0f", *v)
	}
	return moneyPrinter.Sprintf("$%.2f", *v)
}

func deref(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}
