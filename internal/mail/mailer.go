package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/rs/zerolog/log"
)

// Mailer delivers transactional mail. Callers treat delivery as
// fire-and-forget: a send failure never fails the request that triggered it.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, firstName, link string) error
}

var resetTemplate = template.Must(template.New("passwordReset").Parse(`<html>
<body>
<p>Hi {{.Name}},</p>
<p>You requested to reset your password. Please click the link below to set a new one. The link is valid for one hour.</p>
<p><a href="{{.Link}}">Reset your password</a></p>
<p>If you did not request a password reset, you can ignore this email.</p>
</body>
</html>`))

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer for the given relay.
func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

// SendPasswordReset renders the reset template and submits it to the relay.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, firstName, link string) error {
	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, struct {
		Name string
		Link string
	}{Name: firstName, Link: link}); err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}

	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	msg.WriteString("Subject: Password Reset Request\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// NoopMailer logs instead of sending. Used in development and tests.
type NoopMailer struct{}

var _ Mailer = (*NoopMailer)(nil)

// SendPasswordReset logs the reset link and discards the mail.
func (NoopMailer) SendPasswordReset(ctx context.Context, to, firstName, link string) error {
	log.Info().Str("to", to).Str("link", link).Msg("password reset email suppressed (noop mailer)")
	return nil
}
