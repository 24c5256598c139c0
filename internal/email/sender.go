// Package email delivers transactional mail for the intake flow.
package email

import (
	"context"

	"spacematch_backend/platform/config"
)

// HandoffEmailData carries the rendered fields for the handoff summary mail.
type HandoffEmailData struct {
	EntityType      string
	Location        string
	SizeFormatted   string
	AmountFormatted string
	AmountLabel     string
	SessionID       string
}

// Sender delivers intake emails.
type Sender interface {
	SendHandoffEmail(ctx context.Context, toEmail string, data HandoffEmailData) error
}

// NoopSender is used when email delivery is disabled.
type NoopSender struct{}

func (NoopSender) SendHandoffEmail(ctx context.Context, toEmail string, data HandoffEmailData) error {
	return nil
}

// NewSender builds the configured Sender. Delivery disabled returns a noop so
// callers never need nil checks.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}
