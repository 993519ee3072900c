package report

import (
	"context"
	"io"
	"log"

	gomail "gopkg.in/gomail.v2"
)

// Message is a rendered report email.
type Message struct {
	To             string
	Subject        string
	HTMLBody       string
	Attachment     []byte
	AttachmentName string
}

// Mailer sends report emails. Implementations must not retry; the dispatcher
// owns retry policy (there is none, by product decision).
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends via an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", msg.To)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/html", msg.HTMLBody)
	if len(msg.Attachment) > 0 {
		mail.Attach(msg.AttachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(msg.Attachment)
			return err
		}))
	}
	return m.dialer.DialAndSend(mail)
}

// LogMailer is used when SMTP is unconfigured (local development): it logs
// the send and succeeds.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	log.Printf("report email to %s (%d byte attachment) - SMTP not configured, not sent", msg.To, len(msg.Attachment))
	return nil
}
