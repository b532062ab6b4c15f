package notify

import (
	"context"
	"fmt"
	"go-recruit-app/internal/config"

	"github.com/wneessen/go-mail"
)

// Notifier sends a best-effort notification to the recruitment team. Callers
// never gate a user-facing submission on the outcome.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// Mailer implements Notifier over SMTP.
type Mailer struct {
	client *mail.Client
	from   string
	to     string
}

// NewMailer creates a Mailer from the mail configuration. When mail is
// disabled it returns a no-op Notifier so form flows need no special casing.
func NewMailer(cfg config.MailConfig) (Notifier, error) {
	if !cfg.Enabled {
		return noopNotifier{}, nil
	}

	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &Mailer{client: client, from: cfg.From, to: cfg.To}, nil
}

// Notify sends a plain-text email to the configured team address.
func (m *Mailer) Notify(ctx context.Context, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(m.to); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(ctx context.Context, subject, body string) error { return nil }
