package email

import (
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"prism/config"
)

// Notifier delivers operational notifications to the site admin.
type Notifier interface {
	NotifyAdmin(subject, body string) error
}

type Sender struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{
		dialer:     gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:       cfg.SMTPFrom,
		adminEmail: cfg.AdminEmail,
	}
}

func (s *Sender) NotifyAdmin(subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.adminEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("admin notification failed")
		return err
	}
	return nil
}
