// Package services: services/email_service.go
package services

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"

	"irontrack/logger"
)

const (
	confirmationSubject = "IronTrack account confirmation"
	confirmationBody    = "Welcome to Iron Track!\n" +
		"This email is just to confirm your account registration for your records.\n" +
		"If you have any questions, feel free to respond to this."
)

// EmailServiceInterface is implemented by EmailService and by the test mock.
type EmailServiceInterface interface {
	SendConfirmationEmail(recipient string) error
}

// EmailService sends outbound mail through SES. One client is created at
// startup and reused for every send.
type EmailService struct {
	client sesiface.SESAPI
	sender string
}

// NewEmailService creates an EmailService sending from the given address.
// SES credentials come from the environment via the default chain.
func NewEmailService(sender string) *EmailService {
	return &EmailService{
		client: ses.New(session.Must(session.NewSession())),
		sender: sender,
	}
}

// SendConfirmationEmail sends the registration confirmation to a new
// account. Callers fire it from a goroutine; a failure never affects the
// registration response.
func (s *EmailService) SendConfirmationEmail(recipient string) error {
	_, err := s.client.SendEmail(&ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &ses.Destination{
			ToAddresses: []*string{aws.String(recipient)},
		},
		Message: &ses.Message{
			Subject: &ses.Content{Data: aws.String(confirmationSubject)},
			Body: &ses.Body{
				Text: &ses.Content{Data: aws.String(confirmationBody)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	logger.Info.Printf("SendConfirmationEmail: confirmation sent to %s", recipient)
	return nil
}
