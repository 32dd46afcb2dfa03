// Package notify sends transactional email.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Message is a single plain-text/HTML email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a Message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Provider names accepted by New.
const (
	ProviderLog      = "log"
	ProviderSendGrid = "sendgrid"
)

type Config struct {
	Provider    string
	FromAddress string
	FromName    string
	SendGridKey string
}

// New selects a Sender by cfg.Provider.
func New(cfg Config, log *slog.Logger) (Sender, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderLog:
		return NewLogSender(log), nil
	case ProviderSendGrid:
		return NewSendGridSender(cfg)
	default:
		return nil, fmt.Errorf("notify: unknown email provider %q", cfg.Provider)
	}
}

// LogSender writes messages to the logger instead of delivering them.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	if log == nil {
		log = slog.Default()
	}
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("notify: recipient required")
	}
	s.log.InfoContext(ctx, "email not delivered (log provider)",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}

// MFAEnabled is sent after a factor is verified.
func MFAEnabled(to, name string) Message {
	return Message{
		To:      to,
		Subject: "Two-factor authentication enabled",
		Text:    fmt.Sprintf("Hi %s,\n\nAn authenticator app was added to your account. If this wasn't you, contact support immediately.", name),
		HTML:    fmt.Sprintf("<p>Hi %s,</p><p>An authenticator app was added to your account. If this wasn't you, contact support immediately.</p>", name),
	}
}

// MFARemoved is sent after a verified factor is removed.
func MFARemoved(to, name string) Message {
	return Message{
		To:      to,
		Subject: "Two-factor authentication removed",
		Text:    fmt.Sprintf("Hi %s,\n\nAn authenticator app was removed from your account. Admin areas stay locked until you enrol again.", name),
		HTML:    fmt.Sprintf("<p>Hi %s,</p><p>An authenticator app was removed from your account. Admin areas stay locked until you enrol again.</p>", name),
	}
}

// RecruiterApproved is sent when an admin approves a recruiter account.
func RecruiterApproved(to, name string) Message {
	return Message{
		To:      to,
		Subject: "Your recruiter account is approved",
		Text:    fmt.Sprintf("Hi %s,\n\nYour recruiter account has been approved. You can now sign in and post roles.", name),
		HTML:    fmt.Sprintf("<p>Hi %s,</p><p>Your recruiter account has been approved. You can now sign in and post roles.</p>", name),
	}
}
