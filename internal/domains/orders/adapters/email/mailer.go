// Package email sends the monthly report over SMTP.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/devqueiroz/landing-orders/internal/domains/orders/ports"
)

var _ ports.ReportMailer = (*Mailer)(nil)

// Config carries the SMTP account and the fixed recipient set.
type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
}

// Mailer delivers report emails through an SMTP account.
type Mailer struct {
	dialer     *gomail.Dialer
	from       string
	recipients []string
}

// New creates a Mailer from SMTP settings. From defaults to the username.
func New(cfg Config) (*Mailer, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp host and credentials are required")
	}
	if len(cfg.Recipients) == 0 {
		return nil, fmt.Errorf("at least one report recipient is required")
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	return &Mailer{
		dialer:     gomail.NewDialer(cfg.Host, port, cfg.Username, cfg.Password),
		from:       from,
		recipients: cfg.Recipients,
	}, nil
}

// SendMonthlyReport sends a plain-text report to the configured recipients.
// gomail dials synchronously; the context deadline is checked up front since
// the underlying SMTP client does not accept one.
func (m *Mailer) SendMonthlyReport(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain; charset=utf-8", body)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending report email: %w", err)
	}
	return nil
}
