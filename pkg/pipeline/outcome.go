package pipeline

import (
	"errors"
	"time"

	"github.com/goliatone/go-contactform/pkg/i18n"
	"github.com/goliatone/go-contactform/pkg/model"
)

// Outcome classifies how a submission ended.
type Outcome string

const (
	OutcomeSent           Outcome = "sent"
	OutcomeSkipped        Outcome = "skipped"
	OutcomeMissingFields  Outcome = "missing_fields"
	OutcomeInvalidEmail   Outcome = "invalid_email"
	OutcomeTimeout        Outcome = "timeout"
	OutcomeDeliveryFailed Outcome = "delivery_failed"
	OutcomeUnexpected     Outcome = "unexpected"
)

var outcomeKeys = map[Outcome]string{
	OutcomeSent:           i18n.KeySuccess,
	OutcomeSkipped:        i18n.KeyThanks,
	OutcomeMissingFields:  i18n.KeyMissingFields,
	OutcomeInvalidEmail:   i18n.KeyInvalidEmail,
	OutcomeTimeout:        i18n.KeyTimeout,
	OutcomeDeliveryFailed: i18n.KeySendFailed,
	OutcomeUnexpected:     i18n.KeyUnexpected,
}

// Success reports whether the outcome is presented to the visitor as a
// success.
func (o Outcome) Success() bool {
	return o == OutcomeSent || o == OutcomeSkipped
}

// MessageKey returns the catalog key shown for the outcome.
func (o Outcome) MessageKey() string {
	if key, ok := outcomeKeys[o]; ok {
		return key
	}
	return i18n.KeyUnexpected
}

// ErrSendTimeout is reported when the sender does not settle before the
// deadline.
var ErrSendTimeout = errors.New("pipeline: send timed out")

// Report is the detailed view of one submission, used by transports and logs.
type Report struct {
	Result    model.SubmissionResult
	Outcome   Outcome
	Website   string
	ReceiptID string
	Duration  time.Duration
	Err       error
}
