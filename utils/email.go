package utils

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridNotifier e-mails order messages to the manager
type SendGridNotifier struct {
	client *sendgrid.Client
	from   *mail.Email
	to     *mail.Email
	logger zerolog.Logger
}

// NewSendGridNotifier creates a notifier delivering to managerEmail
func NewSendGridNotifier(apiKey, fromEmail, managerEmail string, logger zerolog.Logger) (*SendGridNotifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY is not set")
	}
	if managerEmail == "" {
		return nil, fmt.Errorf("manager e-mail is not set")
	}
	return &SendGridNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("Skinglow AI", fromEmail),
		to:     mail.NewEmail("Manager", managerEmail),
		logger: logger,
	}, nil
}

// Notify sends a plain-text e-mail
func (n *SendGridNotifier) Notify(ctx context.Context, subject, text string) error {
	message := mail.NewSingleEmail(n.from, subject, n.to, text, "")

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send e-mail to %s: %w", n.to.Address, err)
	}
	if response.StatusCode >= 400 {
		n.logger.Error().Int("status", response.StatusCode).Str("body", response.Body).Msg("SendGrid API error")
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	n.logger.Info().Str("to", n.to.Address).Int("status", response.StatusCode).Msg("e-mail sent")
	return nil
}
