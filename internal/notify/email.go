// Package notify delivers best-effort order notifications.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/wneessen/go-mail"
)

// EmailNotifier sends plain-text mail over SMTPS, from and to the
// configured account, the way the storefront notifies its operator.
type EmailNotifier struct {
	host string
	port int
	user string
	pass string
}

// NewEmailNotifier creates a notifier for the given SMTP account. An
// empty user or password disables sending (Send becomes a logged no-op).
func NewEmailNotifier(host string, port int, user, pass string) *EmailNotifier {
	return &EmailNotifier{host: host, port: port, user: user, pass: pass}
}

// Send delivers the notification. The returned error is informational:
// the order flow logs and drops it.
func (n *EmailNotifier) Send(ctx context.Context, subject, body string) error {
	if n.user == "" || n.pass == "" {
		log.Println("📭 Email not configured")
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(n.user); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(n.user); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(n.host,
		mail.WithPort(n.port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.user),
		mail.WithPassword(n.pass),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	log.Println("📧 Email sent")
	return nil
}

// Noop is a notifier that does nothing. Used in tests and when no mail
// account is wanted at all.
type Noop struct{}

// Send implements the notifier contract without side effects.
func (Noop) Send(context.Context, string, string) error { return nil }
