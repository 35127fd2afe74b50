package mail

import (
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/interfaces/maileriface"

	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var _ maileriface.Mailer = (*SmtpMailer)(nil)

// SmtpMailer sends through the configured SMTP relay.
type SmtpMailer struct {
	dialer *gomail.Dialer
}

func New(host string, port int, user, password string) *SmtpMailer {
	return &SmtpMailer{dialer: gomail.NewDialer(host, port, user, password)}
}

func (m *SmtpMailer) SendMail(to, from, subject, html, text string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.WithError(err).WithField("to", to).Error("Failed to send mail over smtp.")
		return err
	}
	return nil
}
