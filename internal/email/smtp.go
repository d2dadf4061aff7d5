package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"homeloans_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender delivers broker alerts over SMTP via go-mail.
type SMTPSender struct {
	host        string
	port        int
	username    string
	password    string
	fromName    string
	fromEmail   string
	brokerPhone string
}

// NewSMTPSender creates a sender from the email settings. brokerPhone is
// printed in the footer of every message.
func NewSMTPSender(cfg config.EmailConfig, brokerPhone string) *SMTPSender {
	return &SMTPSender{
		host:        cfg.GetSMTPHost(),
		port:        cfg.GetSMTPPort(),
		username:    cfg.GetSMTPUsername(),
		password:    cfg.GetSMTPPassword(),
		fromName:    cfg.GetEmailFromName(),
		fromEmail:   cfg.GetEmailFromAddress(),
		brokerPhone: brokerPhone,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15 * time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	}
	if s.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendLeadAlert(ctx context.Context, toEmail string, alert LeadAlert) error {
	content, err := RenderLeadAlert(alert, s.brokerPhone)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, LeadAlertSubject(alert), content)
}

// RenderLeadAlert renders the HTML body of a lead alert.
func RenderLeadAlert(alert LeadAlert, brokerPhone string) (string, error) {
	return renderEmailTemplate("lead_alert.html", newLeadAlertData(alert, brokerPhone))
}

func LeadAlertSubject(alert LeadAlert) string {
	return fmt.Sprintf(subjectLeadAlertFmt, alert.LeadScore)
}
