package contact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"text/template"

	"github.com/rs/zerolog"
)

// ErrNotConfigured is returned when SMTP settings are incomplete.
var ErrNotConfigured = errors.New("smtp not configured on server")

// MailerConfig holds SMTP configuration.
type MailerConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	To           string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer forwards contact messages to the site inbox via SMTP.
type Mailer struct {
	cfg    MailerConfig
	send   sendFunc
	logger zerolog.Logger
}

func NewMailer(cfg MailerConfig, logger zerolog.Logger) *Mailer {
	if cfg.FromName == "" {
		cfg.FromName = "Mentallify Contact"
	}
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.SMTPUsername
	}
	return &Mailer{
		cfg:    cfg,
		send:   smtp.SendMail,
		logger: logger.With().Str("component", "contact_mailer").Logger(),
	}
}

// Configured reports whether every SMTP setting needed to send is present.
func (m *Mailer) Configured() bool {
	return m.cfg.SMTPHost != "" && m.cfg.SMTPPort != 0 && m.cfg.SMTPUsername != "" && m.cfg.SMTPPassword != "" && m.cfg.To != ""
}

var plainBody = template.Must(template.New("plain").Parse(`You have a new contact message from your website.

Name: {{.Name}}
Email: {{.Email}}

Message:
{{.Message}}
`))

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Parse(`<html>
  <body>
    <h2>New website contact message</h2>
    <p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
    <p><strong>Message:</strong></p>
    <div style="white-space:pre-wrap;border-left:3px solid #ddd;padding-left:10px;">{{.Message}}</div>
  </body>
</html>
`))

// Send emails one contact message with plain and HTML parts. Replies go to
// the sender.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := m.compose(msg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	if err := m.send(addr, auth, m.cfg.FromEmail, []string{m.cfg.To}, raw); err != nil {
		m.logger.Error().Err(err).Str("to", m.cfg.To).Msg("failed to send contact email")
		return fmt.Errorf("send email: %w", err)
	}
	m.logger.Info().Str("to", m.cfg.To).Msg("contact email sent")
	return nil
}

func (m *Mailer) compose(msg Message) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for _, part := range []struct {
		contentType string
		render      func(*bytes.Buffer) error
	}{
		{"text/plain; charset=utf-8", func(b *bytes.Buffer) error { return plainBody.Execute(b, msg) }},
		{"text/html; charset=utf-8", func(b *bytes.Buffer) error { return htmlBody.Execute(b, msg) }},
	} {
		var rendered bytes.Buffer
		if err := part.render(&rendered); err != nil {
			return nil, fmt.Errorf("execute template: %w", err)
		}
		w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {part.contentType}})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(rendered.Bytes()); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "From: %s <%s>\r\n", m.cfg.FromName, m.cfg.FromEmail)
	fmt.Fprintf(&out, "To: %s\r\n", m.cfg.To)
	fmt.Fprintf(&out, "Reply-To: %s\r\n", msg.Email)
	fmt.Fprintf(&out, "Subject: Website contact from %s\r\n", msg.Name)
	fmt.Fprintf(&out, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&out, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mw.Boundary())
	out.Write(body.Bytes())
	return out.Bytes(), nil
}
