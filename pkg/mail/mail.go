// Package mail defines the email-sending capability consumed by the
// submission pipeline and a Resend-backed implementation of it.
package mail

import (
	"context"
	"errors"
	"fmt"
)

// Message is one outbound email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	// IdempotencyKey lets providers that support it drop duplicate deliveries
	// of the same attempt.
	IdempotencyKey string
}

// Receipt acknowledges an accepted message.
type Receipt struct {
	ID string
}

// Sender is the email capability. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// ErrDisabled is returned by the disabled capability.
var ErrDisabled = errors.New("mail: sending is not configured")

// ProviderError is a failure reported by the email provider itself.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("mail: provider rejected message (%d): %s", e.Status, e.Message)
}

type disabledSender struct{}

func (disabledSender) Send(context.Context, Message) (Receipt, error) {
	return Receipt{}, ErrDisabled
}

// Disabled returns the null capability used when no credential is present.
func Disabled() Sender {
	return disabledSender{}
}

// Configured reports whether s performs real deliveries.
func Configured(s Sender) bool {
	if s == nil {
		return false
	}
	_, disabled := s.(disabledSender)
	return !disabled
}

// NewFromConfig builds the Resend sender when apiKey is set and the disabled
// capability otherwise, so callers never hold a half-initialized sender.
func NewFromConfig(apiKey string, options ...ResendOption) Sender {
	sender, err := NewResendSender(apiKey, options...)
	if err != nil {
		return Disabled()
	}
	return sender
}
