package infra

import (
	"fmt"
	"net/smtp"

	"github.com/Aniket-89/recrm/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending emails with PDF attachments.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Send delivers a plain-text email, optionally attaching a file.
func (m *Mailer) Send(to []string, subject, body, attachmentPath string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = to
	e.Subject = subject
	e.Text = []byte(body)

	if attachmentPath != "" {
		if _, err := e.AttachFile(attachmentPath); err != nil {
			return fmt.Errorf("mailer: attach file: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
