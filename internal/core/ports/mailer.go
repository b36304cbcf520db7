package ports

import "context"

// MailMessage is a single outbound email.
type MailMessage struct {
	To      []string
	CC      []string
	Subject string
	Body    string
}

// Mailer delivers email through the configured provider. Delivery is
// best-effort; callers own retry policy.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// MailDispatcher accepts messages for asynchronous delivery.
type MailDispatcher interface {
	Enqueue(msg MailMessage)
}
