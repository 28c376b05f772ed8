package notify

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer delivers transactional email through the SendGrid API.
// It satisfies common.EmailSender.
type SendGridMailer struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// Send delivers a single HTML email.
func (s *SendGridMailer) Send(to, subject, html string) error {
	from := mail.NewEmail(s.FromName, s.FromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, "", html)

	client := sendgrid.NewSendClient(s.APIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
