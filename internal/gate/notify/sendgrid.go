package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender delivers through the SendGrid v3 API.
type SendGridSender struct {
	client  *sendgrid.Client
	from    *mail.Email
	timeout time.Duration
}

func NewSendGridSender(cfg Config) (*SendGridSender, error) {
	if cfg.SendGridKey == "" || cfg.FromAddress == "" {
		return nil, errors.New("notify: sendgrid requires an API key and from address")
	}
	return &SendGridSender{
		client:  sendgrid.NewSendClient(cfg.SendGridKey),
		from:    mail.NewEmail(cfg.FromName, cfg.FromAddress),
		timeout: 30 * time.Second,
	}, nil
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("notify: recipient required")
	}

	m := mail.NewSingleEmail(s.from, msg.Subject, mail.NewEmail("", msg.To), msg.Text, msg.HTML)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("notify: sendgrid: %w", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("notify: sendgrid status %d", resp.StatusCode)
	}
	return nil
}
