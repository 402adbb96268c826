// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	// SendInvite mails a freshly created user their credentials and a
	// link to the admin console.
	SendInvite(toEmail, fullName, temporaryPassword string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	siteTitle   string
	frontendURL string
}

func NewEmailService(host string, port int, username, password, senderEmail, siteTitle, frontendURL string) IEmailService {
	if siteTitle == "" {
		siteTitle = "RAG Platform"
	}
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		siteTitle:   siteTitle,
		frontendURL: frontendURL,
	}
}

func (s *emailService) SendInvite(toEmail, fullName, temporaryPassword string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("You have been invited to %s", s.siteTitle))

	loginLink := s.frontendURL + "/login"

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to %s, %s!</h2>
			<p>An administrator created an account for you. Sign in with:</p>
			<p><strong>Email:</strong> %s</p>
			<p><strong>Temporary password:</strong> <code>%s</code></p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Sign in</a>
			<p>Please change your password after your first login.</p>
			<p>If you didn't expect this invitation, you can ignore this email.</p>
		</div>
	`, s.siteTitle, fullName, toEmail, temporaryPassword, loginLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send invite to %s: %w", toEmail, err)
	}
	return nil
}
