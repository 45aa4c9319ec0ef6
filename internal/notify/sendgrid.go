package notify

import (
	"context"
	"fmt"

	"rentalmotor-backend/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender sends email through the SendGrid v3 API
type SendGridSender struct {
	client    sendGridClient
	fromEmail string
	fromName  string
}

func NewSendGridSender(apiKey, fromEmail, fromName string) *SendGridSender {
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *SendGridSender) SendEmail(ctx context.Context, email Email) error {
	logger.ExternalServiceCall("sendgrid", "SendEmail", "to", email.To, "subject", email.Subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(email.ToName, email.To)
	html := email.HTML
	if html == "" {
		html = "<p>" + email.Text + "</p>"
	}
	msg := mail.NewSingleEmail(from, email.Subject, recipient, email.Text, html)

	response, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		err = fmt.Errorf("failed to send email: %w", err)
		logger.ExternalServiceResult("sendgrid", "SendEmail", err)
		return err
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "SendEmail", err)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "SendEmail", nil, "status", response.StatusCode)
	return nil
}
