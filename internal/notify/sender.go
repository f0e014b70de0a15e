// Package notify holds the outbound email and SMS senders. Both are
// fire-and-forget at the provider level; whether a send failure fails the
// enclosing request is the caller's policy, not the sender's.
package notify

import "context"

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}
