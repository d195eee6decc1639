// Package smtp delivers assembled messages over SMTP with STARTTLS.
package smtp

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/mrivero/notemail/internal/domain"
)

// Config carries the transport connection parameters.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Mailer implements domain.MailTransport on top of go-mail. Each Deliver
// dials, sends and closes; the bot sends far too rarely to keep a
// connection warm.
type Mailer struct {
	client *mail.Client
}

func NewMailer(cfg Config) (*Mailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client for %s: %w", cfg.Host, err)
	}
	return &Mailer{client: client}, nil
}

// Deliver sends the message as multipart/related: an HTML body plus one
// inline part per attachment, each addressable by its content id.
func (m *Mailer) Deliver(ctx context.Context, e *domain.OutboundEmail) error {
	msg := mail.NewMsg()
	if err := msg.From(e.FromAddress); err != nil {
		return fmt.Errorf("invalid from address %q: %w", e.FromAddress, err)
	}
	if err := msg.To(e.ToAddress); err != nil {
		return fmt.Errorf("invalid to address %q: %w", e.ToAddress, err)
	}
	msg.Subject(e.SubjectLine)
	msg.SetBodyString(mail.TypeTextHTML, e.BodyHTML)

	for _, att := range e.Inline {
		if err := msg.EmbedReader(att.Filename, bytes.NewReader(att.Data),
			mail.WithFileContentID(att.ContentID),
		); err != nil {
			return fmt.Errorf("embedding %s: %w", att.Filename, err)
		}
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}
