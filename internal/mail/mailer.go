// Package mail delivers account mail. The only message today is the
// activation link sent on registration.
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/hourglass-app/hourglass-backend/config"
	"github.com/hourglass-app/hourglass-backend/internal/logging"
)

type Mailer interface {
	SendActivationMail(ctx context.Context, to, activationURL string) error
}

// SMTPMailer sends through a plain-auth SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendActivationMail(_ context.Context, to, activationURL string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)

	msg := []byte("From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: Activate your account\r\n" +
		"\r\n" +
		"Follow the link to activate your account:\r\n" +
		activationURL + "\r\n")

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send activation mail: %w", err)
	}
	return nil
}

// LogMailer writes the activation link to the log instead of sending it.
// Used in development when no SMTP host is configured.
type LogMailer struct {
	log logging.Logger
}

func NewLogMailer(log logging.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendActivationMail(ctx context.Context, to, activationURL string) error {
	m.log.Info(ctx, "activation mail (log only)", "to", to, "url", activationURL)
	return nil
}
