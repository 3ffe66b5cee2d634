// Package mailer delivers reporter notifications over SMTP. Delivery is
// best effort and at most once: the triggering mutation is already committed
// when Notify runs, and a failure is logged, never retried or propagated.
package mailer

import (
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/lostnfound/backend/internal/config"
)

type Mailer struct {
	host     string
	port     int
	sender   string
	password string
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		sender:   cfg.EmailSender,
		password: cfg.EmailPass,
	}
}

// Notify sends one plain-text message and reports success. STARTTLS is
// negotiated by the dialer on the standard submission port.
func (m *Mailer) Notify(to, subject, body string) bool {
	if m.sender == "" {
		slog.Warn("mail not configured, dropping notification", "to", to, "subject", subject)
		return false
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.sender, m.password)
	if err := d.DialAndSend(msg); err != nil {
		slog.Error("notification delivery failed", "to", to, "subject", subject, "error", err)
		return false
	}
	slog.Info("notification sent", "to", to, "subject", subject)
	return true
}
