package services

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/rolodex-hq/rolodex/pkg/mail"
)

// MailSender delivers a rendered message. Satisfied by *mail.Sender; tests
// substitute a recorder.
type MailSender interface {
	Send(to, subject, htmlBody string) error
}

// EmailService renders and sends verification and password reset mail. Token
// creation is delegated to the auth service so email links carry the same
// JWTs the API verifies.
type EmailService struct {
	sender   MailSender
	resolver *mail.TemplateResolver
	auth     *AuthService
	baseURL  string
	log      hclog.Logger
}

// NewEmailService returns an email service that links back to baseURL.
func NewEmailService(sender MailSender, auth *AuthService, baseURL string, log hclog.Logger) (*EmailService, error) {
	resolver, err := mail.NewTemplateResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize template resolver: %w", err)
	}
	return &EmailService{
		sender:   sender,
		resolver: resolver,
		auth:     auth,
		baseURL:  baseURL,
		log:      log,
	}, nil
}

// SendVerification sends the confirm-your-email message. Failures are logged
// and returned but callers typically treat them as best-effort.
func (s *EmailService) SendVerification(ctx context.Context, email, username string) error {
	token, err := s.auth.CreateEmailToken(email)
	if err != nil {
		return err
	}
	return s.send(mail.MessageTypeVerifyEmail, email, username, token)
}

// SendPasswordReset sends the password reset message.
func (s *EmailService) SendPasswordReset(ctx context.Context, email, username string) error {
	token, err := s.auth.CreateResetToken(email)
	if err != nil {
		return err
	}
	return s.send(mail.MessageTypeResetPassword, email, username, token)
}

func (s *EmailService) send(msgType mail.MessageType, email, username, token string) error {
	content, err := s.resolver.Resolve(msgType, map[string]any{
		"Username": username,
		"Host":     s.baseURL,
		"Token":    token,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve templates: %w", err)
	}

	if err := s.sender.Send(email, content.Subject, content.BodyHTML); err != nil {
		s.log.Error("error sending email",
			"type", msgType,
			"recipient", email,
			"error", err,
		)
		return err
	}

	s.log.Debug("sent email", "type", msgType, "recipient", email)
	return nil
}
