package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/charmbracelet/log"
)

// Mailer is the outbound-mail capability injected into anything that needs to
// send. The core never talks to a transport directly.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer delivers through a plain SMTP relay (mailhog/maildev locally,
// a real relay in production).
type SMTPMailer struct {
	addr string
	from string
}

func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	msg := buildMessage(m.from, to, subject, htmlBody)
	if err := smtp.SendMail(m.addr, nil, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

// DevConsoleMailer logs instead of sending. Used when no SMTP relay is
// configured (local development, tests of surrounding wiring).
type DevConsoleMailer struct {
	logger *log.Logger
}

func NewDevConsoleMailer(logger *log.Logger) *DevConsoleMailer {
	return &DevConsoleMailer{logger: logger}
}

func (m *DevConsoleMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.logger.Info("dev mailer: skipping real delivery", "to", to, "subject", subject, "body_bytes", len(htmlBody))
	return nil
}
