package notify

import (
	"fmt"
	"net/smtp"
)

// Mailer sends a plain-text email. Best-effort; callers never treat a
// failure as fatal.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	Addr string
	From string
	Auth smtp.Auth
}

func NewSMTPMailer(addr, from, username, password, host string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{Addr: addr, From: from, Auth: auth}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, to, subject, body)
	return smtp.SendMail(m.Addr, m.Auth, m.From, []string{to}, []byte(msg))
}
