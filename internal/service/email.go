package service

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/models"
)

// mailSender is satisfied by *gomail.Dialer.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailService struct {
	sender   mailSender
	from     string
	fromName string
}

// NewEmailService builds a sender from the SMTP settings. Without SMTP_HOST
// messages are logged instead of sent.
func NewEmailService(cfg *config.Config) *EmailService {
	s := &EmailService{from: cfg.EmailFrom, fromName: cfg.EmailFromName}
	if cfg.SMTPHost != "" {
		s.sender = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}
	logging.Info().
		Str("smtp_host", cfg.SMTPHost).
		Bool("delivery_enabled", s.sender != nil).
		Msg("email service initialized")
	return s
}

func (s *EmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	if s.sender == nil {
		logging.Ctx(ctx).Info().
			Str("to", to).
			Str("subject", subject).
			Str("body", body).
			Msg("SMTP not configured, logging email")
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	logging.Ctx(ctx).Debug().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

func (s *EmailService) SendActivationEmail(ctx context.Context, user *models.User, link string) error {
	return s.SendEmail(ctx, user.Email, "Activate your RecipeShare account", buildActivationEmailBody(user, link))
}

func buildActivationEmailBody(user *models.User, link string) string {
	escaped := html.EscapeString(link)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Activate your account</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2>Hi %s,</h2>
	<p>Thanks for signing up. Please confirm your email address to activate your account:</p>
	<p style="text-align: center; margin: 30px 0;">
		<a href="%s" style="background-color: #4CAF50; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px;">Activate account</a>
	</p>
	<p style="color: #666; font-size: 14px;">If the button does not work, paste this link into your browser:</p>
	<p style="word-break: break-all; font-size: 12px;">%s</p>
</body>
</html>`, html.EscapeString(user.Username), escaped, escaped)
}
