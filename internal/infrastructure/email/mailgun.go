package email

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/mediashelf/media-tracker/internal/core/ports"
)

const sendTimeout = 10 * time.Second

// MailgunSender delivers messages through the Mailgun API.
type MailgunSender struct {
	client *mailgun.MailgunImpl
	sender string
}

func NewMailgunSender(domain, apiKey, sender string) *MailgunSender {
	return &MailgunSender{
		client: mailgun.NewMailgun(domain, apiKey),
		sender: sender,
	}
}

func (m *MailgunSender) Send(ctx context.Context, to, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	msg := m.client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}

	if _, _, err := m.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}

var _ ports.MailSender = (*MailgunSender)(nil)
