// Package mail sends transactional email over SMTP.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"waypoint/internal/config"
	"waypoint/internal/middleware"
)

// Mailer sends a single message to one recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewSMTPMailer builds a Mailer from SMTP settings in the config.
func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	if m.host == "" {
		return fmt.Errorf("smtp is not configured")
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	middleware.Logger.Info("mail sent", "to", to, "subject", subject)
	return nil
}

// NoopMailer discards messages. Used in development and tests when no SMTP
// server is configured.
type NoopMailer struct{}

func (NoopMailer) Send(to, subject, _ string) error {
	middleware.Logger.Info("mail suppressed (no smtp configured)", "to", to, "subject", subject)
	return nil
}
