package ports

import "context"

// MailSender delivers a single message. Implemented by the Mailgun
// client and stubbed in tests.
type MailSender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Mailer renders and dispatches the transactional mails the account
// lifecycle produces. Delivery is asynchronous; errors are logged, not
// surfaced to the request.
type Mailer interface {
	SendVerification(ctx context.Context, to, username, code string)
	SendPasswordReset(ctx context.Context, to, username, code string)
	SendAccountDeleted(ctx context.Context, to, username string)
}
