package email

import (
	"fmt"

	"jobportal_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPDispatcher отправляет письма через SMTP (gomail)
type SMTPDispatcher struct {
	cfg *config.Config
}

func NewSMTPDispatcher(cfg *config.Config) *SMTPDispatcher {
	return &SMTPDispatcher{cfg: cfg}
}

func (d *SMTPDispatcher) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(d.cfg.Email.FromEmail, d.cfg.Email.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	dialer := gomail.NewDialer(
		d.cfg.Email.SMTPHost,
		d.cfg.Email.SMTPPort,
		d.cfg.Email.SMTPUsername,
		d.cfg.Email.SMTPPassword,
	)

	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
