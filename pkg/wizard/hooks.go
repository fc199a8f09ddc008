package wizard

import (
	"context"

	"github.com/goliatone/go-contactform/pkg/model"
)

// TrackEventSubmitted is the analytics event fired after a successful
// submission.
const TrackEventSubmitted = "contact_form_submitted"

// Submitter delivers a completed form. A non-nil error is treated as an
// unexpected failure.
type Submitter interface {
	Submit(ctx context.Context, form model.FormData) (model.SubmissionResult, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, form model.FormData) (model.SubmissionResult, error)

func (fn SubmitterFunc) Submit(ctx context.Context, form model.FormData) (model.SubmissionResult, error) {
	return fn(ctx, form)
}

// Celebrator plays the success effect.
type Celebrator interface {
	Celebrate(ctx context.Context) error
}

// CelebratorFunc adapts a function to Celebrator.
type CelebratorFunc func(ctx context.Context) error

func (fn CelebratorFunc) Celebrate(ctx context.Context) error { return fn(ctx) }

// Tracker records analytics events.
type Tracker interface {
	Track(ctx context.Context, event string, payload map[string]string) error
}

// TrackerFunc adapts a function to Tracker.
type TrackerFunc func(ctx context.Context, event string, payload map[string]string) error

func (fn TrackerFunc) Track(ctx context.Context, event string, payload map[string]string) error {
	return fn(ctx, event, payload)
}
