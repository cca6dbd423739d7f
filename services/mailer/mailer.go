package mailer

import (
	"fmt"
	"net/smtp"
)

// Notifier reports backup completion to an operator.
type Notifier interface {
	Notify(subject, body string) error
}

// SMTPNotifier sends plain-text mail through a relay without authentication.
type SMTPNotifier struct {
	Host string
	Port string
	From string
	To   string
}

func (n *SMTPNotifier) Notify(subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		n.From, n.To, subject, body)
	return smtp.SendMail(n.Host+":"+n.Port, nil, n.From, []string{n.To}, []byte(msg))
}
