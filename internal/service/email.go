package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

var ErrMailerNotConfigured = errors.New("email service not configured (missing RESEND_API_KEY)")

// Mailer delivers a single HTML message.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
}

func NewEmailService(apiKey, fromEmail string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
	}
}

// Send delivers through Resend. In development only the envelope is logged;
// bodies carry reset tokens and never reach the log.
func (s *EmailService) Send(ctx context.Context, to, subject, htmlBody string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "to", to, "subject", subject, "bytes", len(htmlBody))
		return nil
	}

	if s.client == nil {
		return ErrMailerNotConfigured
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return err
	}

	slog.Info("email sent", "to", to, "subject", subject)
	return nil
}
