package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"bloodlink-backend/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService builds the SendGrid-backed notification sender.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) send(_ context.Context, to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("sendgrid", "Send", "to", to, "subject", subject)
	response, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "Send", err)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridEmailService) SendDonorAssignedNotification(ctx context.Context, requesterEmail, requesterName, donorName, recipientName string) error {
	subject := "A donor has volunteered for your request"
	plainText := fmt.Sprintf("%s has volunteered to donate blood for %s.", donorName, recipientName)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Donor Found</h2>
				<p><strong>%s</strong> has volunteered to donate blood for <strong>%s</strong>.</p>
				<p>Please coordinate with the donor before the scheduled date.</p>
			</body>
		</html>
	`, donorName, recipientName)
	return s.send(ctx, requesterEmail, requesterName, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendRequestStatusNotification(ctx context.Context, email, name, recipientName, status string) error {
	subject := fmt.Sprintf("Donation request for %s is now %s", recipientName, status)
	plainText := fmt.Sprintf("The donation request for %s has been marked %s.", recipientName, status)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Request Update</h2>
				<p>The donation request for <strong>%s</strong> has been marked <strong>%s</strong>.</p>
			</body>
		</html>
	`, recipientName, status)
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendAccountStatusNotification(ctx context.Context, email, name, status string) error {
	subject := fmt.Sprintf("Your account status is now %s", status)
	plainText := fmt.Sprintf("Hello %s, an administrator has set your account status to %s.", name, status)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Account Status Changed</h2>
				<p>Hello %s, an administrator has set your account status to <strong>%s</strong>.</p>
			</body>
		</html>
	`, name, status)
	return s.send(ctx, email, name, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendDonationReminder(ctx context.Context, donorEmail, donorName, hospitalName, donationDate, donationTime string) error {
	subject := "Reminder: blood donation tomorrow"
	plainText := fmt.Sprintf("Hello %s, this is a reminder of your donation at %s on %s at %s.", donorName, hospitalName, donationDate, donationTime)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Donation Reminder</h2>
				<p>Hello %s,</p>
				<p>This is a reminder of your blood donation at <strong>%s</strong> on <strong>%s</strong> at <strong>%s</strong>.</p>
				<p>Please eat well and stay hydrated beforehand.</p>
			</body>
		</html>
	`, donorName, hospitalName, donationDate, donationTime)
	return s.send(ctx, donorEmail, donorName, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendEligibilityReminder(ctx context.Context, donorEmail, donorName string) error {
	subject := "You are eligible to donate blood again"
	plainText := fmt.Sprintf("Hello %s, it has been over 90 days since your last donation. You can donate again.", donorName)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Eligible Again</h2>
				<p>Hello %s,</p>
				<p>It has been over 90 days since your last donation. You are eligible to donate again and there are people waiting for your help.</p>
			</body>
		</html>
	`, donorName)
	return s.send(ctx, donorEmail, donorName, subject, plainText, htmlContent)
}
