package wizard

import "errors"

var (
	// ErrBlocked is returned when the current step's precondition does not
	// hold, or the event does not apply to the current step.
	ErrBlocked = errors.New("wizard: transition blocked")
	// ErrForwardJump is returned when a step indicator targets a later step.
	ErrForwardJump = errors.New("wizard: forward jumps are not permitted")
	// ErrNotEditing is returned when the wizard is not on a step.
	ErrNotEditing = errors.New("wizard: not editing")
	// ErrSubmitting is returned while a submission is in flight.
	ErrSubmitting = errors.New("wizard: submission in flight")
	// ErrFinished is returned once the submission succeeded.
	ErrFinished = errors.New("wizard: already submitted")
	// ErrUnknownEngagement is returned for titles outside the catalog.
	ErrUnknownEngagement = errors.New("wizard: unknown engagement model")
	// ErrNoSubmitter is returned by Submit when no Submitter was configured.
	ErrNoSubmitter = errors.New("wizard: submitter is required")
)
