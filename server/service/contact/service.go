// Package contact validates the three-field contact form and forwards it as a
// single plain-text email through the SMTP relay. One delivery attempt, no
// retries; auth failures are reported distinctly from other send failures.
package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/hrygo/cookbot/internal/profile"
	apperrors "github.com/hrygo/cookbot/server/internal/errors"
)

// Form is a validated contact-form submission.
type Form struct {
	Name    string
	Email   string
	Message string
}

// Sender delivers one composed message. Implemented by the SMTP relay; tests
// substitute a fake.
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

// Service is the contact relay.
type Service struct {
	profile *profile.Profile
	sender  Sender
}

// NewService creates a contact service delivering via SMTP with the profile's
// relay credentials.
func NewService(p *profile.Profile) *Service {
	return &Service{profile: p, sender: &smtpSender{profile: p}}
}

// NewServiceWithSender creates a contact service with a custom sender.
func NewServiceWithSender(p *profile.Profile, sender Sender) *Service {
	return &Service{profile: p, sender: sender}
}

// Submit validates the form and makes exactly one delivery attempt. The
// returned error is always a *errors.ServiceError.
func (s *Service) Submit(ctx context.Context, form Form) error {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Message = strings.TrimSpace(form.Message)
	if form.Name == "" || form.Email == "" || form.Message == "" {
		return apperrors.InvalidArgument("All fields are required.")
	}

	if !s.profile.IsContactEnabled() {
		return apperrors.NotConfigured("Email service not configured.")
	}

	subject := fmt.Sprintf("Chef Byte Contact Form: %s", form.Name)
	body := fmt.Sprintf("Name: %s\r\nEmail: %s\r\nMessage:\r\n%s\r\n", form.Name, form.Email, form.Message)

	if err := s.sender.Send(ctx, subject, body); err != nil {
		if isAuthError(err) {
			return apperrors.RelayAuthFailed(err)
		}
		return apperrors.RelaySendFailed(err)
	}
	return nil
}

// smtpSender delivers over implicit TLS (port 465 by default).
type smtpSender struct {
	profile *profile.Profile
}

func (s *smtpSender) Send(ctx context.Context, subject, body string) error {
	p := s.profile

	client, err := mail.NewClient(p.SMTPHost,
		mail.WithPort(p.SMTPPort),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(p.SenderEmail),
		mail.WithPassword(p.SenderPassword),
	)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(p.SenderEmail); err != nil {
		return err
	}
	if err := msg.To(p.ReceiverEmail); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return client.DialAndSendWithContext(ctx, msg)
}

// isAuthError sniffs SMTP authentication failures out of the relay error. The
// 53x reply codes cover bad credentials and auth-required rejections.
func isAuthError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"535", "534", "530", "auth"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
