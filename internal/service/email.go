package service

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/tpanh/rentd/internal/config"
	"github.com/tpanh/rentd/internal/domain"
)

// Mailer sends transactional mail over plain SMTP. When no SMTP address is
// configured every send is a logged no-op so a development setup works
// without a mail server.
type Mailer struct {
	config config.Email
	logger hclog.Logger
}

func NewMailer(config config.Email) *Mailer {
	return &Mailer{
		config: config,
		logger: hclog.Default().Named("mailer"),
	}
}

func (m *Mailer) SendInvitation(to, link string, expiresAt time.Time) error {
	body := fmt.Sprintf(
		"You have been invited to join a rental room.\r\n\r\n"+
			"Accept the invitation before %s:\r\n\r\n%s\r\n",
		expiresAt.Format("2006-01-02"), link)

	return m.send(to, "Rental invitation", body)
}

func (m *Mailer) SendInvoice(to, tenantName, roomNo string, invoice *domain.Invoice) error {
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"Your invoice for room %s, period %s is ready.\r\n\r\n"+
			"Room price: %d\r\nElectricity: %d\r\nWater: %d\r\nTotal: %d\r\n\r\n"+
			"Due date: %s\r\n",
		tenantName, roomNo, invoice.Period,
		invoice.RoomPrice, invoice.ElecAmount, invoice.WaterAmount, invoice.TotalAmount,
		invoice.DueDate.Format("2006-01-02"))

	return m.send(to, fmt.Sprintf("Invoice %s for room %s", invoice.Period, roomNo), body)
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.config.Enabled() {
		m.logger.Debug("Mail delivery is disabled, dropping message", "to", to, "subject", subject)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.config.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	var a smtp.Auth
	if m.config.Username != "" {
		host := m.config.SmtpAddr
		if i := strings.LastIndex(host, ":"); i != -1 {
			host = host[:i]
		}
		a = smtp.PlainAuth("", m.config.Username, m.config.Password, host)
	}

	return smtp.SendMail(m.config.SmtpAddr, a, m.config.From, []string{to}, []byte(msg))
}
