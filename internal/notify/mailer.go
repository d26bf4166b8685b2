// Package notify delivers budget alert notifications by email.
package notify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

// BudgetAlert carries the details of one triggered budget alert for
// notification rendering.
type BudgetAlert struct {
	Category       string
	Message        string
	PercentageUsed float64
	Spent          decimal.Decimal
	Budget         decimal.Decimal
}

// Mailer sends budget alert notifications. Implementations own the
// transport; callers only supply the recipient and the alerts.
type Mailer interface {
	SendBudgetAlerts(to string, alerts []BudgetAlert) error
}

// SMTPConfig holds the SMTP connection settings.
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Password string
}

// SMTPMailer implements Mailer over SMTP using gomail.
type SMTPMailer struct {
	cfg SMTPConfig
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer for the given SMTP settings.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendBudgetAlerts sends a single email summarizing the triggered alerts.
func (m *SMTPMailer) SendBudgetAlerts(to string, alerts []BudgetAlert) error {
	if m.cfg.Host == "" || m.cfg.From == "" {
		return fmt.Errorf("smtp is not configured")
	}
	if len(alerts) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Budget Alert: %d budget(s) need attention", len(alerts))

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", renderBudgetAlerts(alerts))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.From, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func renderBudgetAlerts(alerts []BudgetAlert) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: 'Segoe UI', Roboto, Arial, sans-serif; color: #333;">
  <h2 style="color: #d9534f;">Budget Alerts</h2>
  <p>The following budgets have crossed their alert threshold:</p>
  <table style="border-collapse: collapse;">
    <tr>
      <th style="border: 1px solid #ddd; padding: 6px 10px;">Category</th>
      <th style="border: 1px solid #ddd; padding: 6px 10px;">Spent</th>
      <th style="border: 1px solid #ddd; padding: 6px 10px;">Budget</th>
      <th style="border: 1px solid #ddd; padding: 6px 10px;">Used</th>
    </tr>
`)
	for _, alert := range alerts {
		fmt.Fprintf(&b, `    <tr>
      <td style="border: 1px solid #ddd; padding: 6px 10px;">%s</td>
      <td style="border: 1px solid #ddd; padding: 6px 10px;">$%s</td>
      <td style="border: 1px solid #ddd; padding: 6px 10px;">$%s</td>
      <td style="border: 1px solid #ddd; padding: 6px 10px;">%.1f%%</td>
    </tr>
`,
			alert.Category, alert.Spent.StringFixed(2), alert.Budget.StringFixed(2), alert.PercentageUsed*100)
	}
	b.WriteString(`  </table>
  <p style="color: #777; font-size: 12px;">Sent by spendwise. Review your budgets to silence these alerts.</p>
</body>
</html>`)
	return b.String()
}
