// Package mail sends transactional email over SMTP with embedded HTML
// templates.
package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/google/uuid"
)

// SenderConfig configures the SMTP sender.
type SenderConfig struct {
	SMTPHost     string // SMTP server hostname
	SMTPPort     string // SMTP server port (typically 587 for TLS, 25 for plaintext)
	SMTPUsername string // SMTP username (optional for auth)
	SMTPPassword string // SMTP password (optional for auth)
	FromAddress  string // From email address
	FromName     string // From display name
	UseTLS       bool   // Use STARTTLS (recommended for port 587)
}

// Sender delivers rendered email messages via SMTP.
type Sender struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromAddress  string
	fromName     string
	useTLS       bool
}

// NewSender creates a new SMTP sender.
func NewSender(cfg SenderConfig) *Sender {
	return &Sender{
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUsername: cfg.SMTPUsername,
		smtpPassword: cfg.SMTPPassword,
		fromAddress:  cfg.FromAddress,
		fromName:     cfg.FromName,
		useTLS:       cfg.UseTLS,
	}
}

// Send delivers a single HTML email to the recipient.
func (s *Sender) Send(to, subject, htmlBody string) error {
	from := s.fromAddress
	if s.fromName != "" {
		from = fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"Message-ID: <%s@%s>\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		from, to, subject, uuid.NewString(), s.smtpHost, htmlBody,
	))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)

	var auth smtp.Auth
	if s.smtpUsername != "" && s.smtpPassword != "" {
		auth = smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	}

	if s.useTLS {
		return s.sendMailTLS(addr, auth, s.fromAddress, []string{to}, msg)
	}

	return smtp.SendMail(addr, auth, s.fromAddress, []string{to}, msg)
}

// sendMailTLS sends email with STARTTLS support.
func (s *Sender) sendMailTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if err = client.StartTLS(&tls.Config{
		ServerName: s.smtpHost,
	}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}
