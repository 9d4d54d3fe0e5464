package notify

import (
	"fmt"
	"net/smtp"
	"os"
)

// EmailSender delivers HTML mail. Delivery is best-effort at every call
// site: callers log failures, they never propagate them.
type EmailSender interface {
	SendEmail(from, to, subject, html string) error
}

type smtpSender struct{}

func NewSMTPSender() EmailSender {
	return &smtpSender{}
}

func (s *smtpSender) SendEmail(from, to, subject, html string) error {
	if from == "" {
		from = os.Getenv("FROM_EMAIL")
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		from, to, subject, html,
	)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	if err := smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
