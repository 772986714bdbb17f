package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mediashelf/media-tracker/internal/core/ports"
	"github.com/mediashelf/media-tracker/internal/infrastructure/queue"
)

// Mailer renders the transactional mails and hands them to the
// dispatcher; delivery happens off the request path.
type Mailer struct {
	dispatcher *queue.Dispatcher
	baseURL    string
	log        zerolog.Logger
}

func NewMailer(dispatcher *queue.Dispatcher, baseURL string, log zerolog.Logger) *Mailer {
	return &Mailer{dispatcher: dispatcher, baseURL: baseURL, log: log}
}

func (m *Mailer) SendVerification(_ context.Context, to, username, code string) {
	link := fmt.Sprintf("%s/auth/verify/%s", m.baseURL, code)
	m.enqueue(queue.MailJob{
		To:      to,
		Subject: "Verify your account",
		Text:    fmt.Sprintf("Hi %s,\n\nverify your account by opening this link:\n%s\n", username, link),
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>verify your account by clicking <a href=%q>this link</a>.</p>",
			username, link),
	})
}

func (m *Mailer) SendPasswordReset(_ context.Context, to, username, code string) {
	link := fmt.Sprintf("%s/auth/reset-password/%s", m.baseURL, code)
	m.enqueue(queue.MailJob{
		To:      to,
		Subject: "Reset your password",
		Text:    fmt.Sprintf("Hi %s,\n\nreset your password by opening this link:\n%s\n\nIf you did not request this, ignore this mail.\n", username, link),
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>reset your password by clicking <a href=%q>this link</a>.</p><p>If you did not request this, ignore this mail.</p>",
			username, link),
	})
}

func (m *Mailer) SendAccountDeleted(_ context.Context, to, username string) {
	m.enqueue(queue.MailJob{
		To:      to,
		Subject: "Your account has been deleted",
		Text:    fmt.Sprintf("Hi %s,\n\nyour account and your lists have been deleted. Sorry to see you go.\n", username),
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>your account and your lists have been deleted. Sorry to see you go.</p>",
			username),
	})
}

func (m *Mailer) enqueue(job queue.MailJob) {
	m.dispatcher.Enqueue(job)
	m.log.Debug().Str("to", job.To).Str("subject", job.Subject).Msg("mail enqueued")
}

var _ ports.Mailer = (*Mailer)(nil)
