package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig holds the transactional email settings.
type SMTPConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer implements Mailer over plain SMTP with optional auth.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates a Mailer from the given configuration.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers one message. The context is consulted before dialing since
// net/smtp itself is not context-aware.
func (m *SMTPMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}
	if len(to) == 0 {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.cfg.From + "\r\n")
	msg.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}
