package mail

import (
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/interfaces/maileriface"

	log "github.com/sirupsen/logrus"
)

var _ maileriface.Mailer = (*DummyMailer)(nil)

// DummyMailer logs instead of sending. Used when SMTP is not configured,
// typically on development boxes.
type DummyMailer struct{}

func NewDummyMailer() *DummyMailer {
	return &DummyMailer{}
}

func (m *DummyMailer) SendMail(to, from, subject, html, text string) error {
	log.WithFields(log.Fields{
		"to":      to,
		"from":    from,
		"subject": subject,
	}).Info("Dummy mailer. Skipped sending mail.")
	return nil
}
