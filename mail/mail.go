// Package mail sends bug-report messages on behalf of authenticated users.
//
// Mail failures are reported to the caller but never roll back anything; the
// rest of the service sees only the Sender interface.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers a message to the configured receiver.
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

// SMTPConfig configures the SMTP sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Receiver string
}

// SMTPSender sends mail over plain SMTP with auth.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates a sender for the given server.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers the message. The context is consulted before dialing;
// net/smtp itself has no cancellation hook.
func (s *SMTPSender) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + s.cfg.Receiver,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{s.cfg.Receiver}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
