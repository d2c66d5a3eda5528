package mail

import (
	"gopkg.in/gomail.v2"
)

// Message is a single outbound email. Bodies are HTML.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer dispatches messages. Implementations make a single delivery attempt
// and report a boolean outcome; callers decide whether a failure propagates.
type Mailer interface {
	Send(msg Message) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer for the given relay.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send dispatches one message. No retries.
func (m *SMTPMailer) Send(msg Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)
	return m.dialer.DialAndSend(gm)
}
