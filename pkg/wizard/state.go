package wizard

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Phase is the coarse position of the wizard.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// State is a wizard position. Step is only meaningful while editing.
type State struct {
	Phase Phase      `json:"phase" msgpack:"phase"`
	Step  model.Step `json:"step,omitempty" msgpack:"step,omitempty"`
}

// NotStarted is the initial state.
func NotStarted() State { return State{Phase: PhaseNotStarted} }

// Editing returns the state of showing step.
func Editing(step model.Step) State { return State{Phase: PhaseEditing, Step: step} }

// Submitting, Succeeded and Failed return the terminal-side states.
func Submitting() State { return State{Phase: PhaseSubmitting} }
func Succeeded() State  { return State{Phase: PhaseSucceeded} }
func Failed() State     { return State{Phase: PhaseFailed} }

// Valid reports whether s is a reachable state.
func (s State) Valid() bool {
	switch s.Phase {
	case PhaseEditing:
		return s.Step.Valid()
	case PhaseNotStarted, PhaseSubmitting, PhaseSucceeded, PhaseFailed:
		return s.Step == 0
	default:
		return false
	}
}

func (s State) String() string {
	if s.Phase == PhaseEditing {
		return fmt.Sprintf("step(%d)", int(s.Step))
	}
	return string(s.Phase)
}

// CanProceed reports whether the visitor may continue past step with data.
func CanProceed(step model.Step, data model.FormData) bool {
	switch step {
	case model.StepEngagement:
		return strings.TrimSpace(data.Engagement) != ""
	case model.StepProject:
		return strings.TrimSpace(data.Project) != ""
	case model.StepCompany, model.StepReview:
		return true
	case model.StepContact:
		return strings.TrimSpace(data.Name) != "" &&
			strings.TrimSpace(data.Email) != "" &&
			validation.IsValidEmail(data.Email)
	default:
		return false
	}
}

// CanTransition reports whether the machine allows moving from one state to
// another given data. Submission outcomes (Submitting to Succeeded or Failed)
// are always allowed; they are decided by the submitter, not by the visitor.
func CanTransition(from, to State, data model.FormData) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}

	switch from.Phase {
	case PhaseNotStarted:
		return to == Editing(model.FirstStep)
	case PhaseEditing:
		switch {
		case to.Phase == PhaseSubmitting:
			return from.Step == model.StepReview
		case to.Phase != PhaseEditing:
			return false
		case to.Step == from.Step+1:
			return CanProceed(from.Step, data)
		default:
			return to.Step < from.Step
		}
	case PhaseSubmitting:
		return to.Phase == PhaseSucceeded || to.Phase == PhaseFailed
	case PhaseFailed:
		return to == Editing(model.StepReview)
	default:
		return false
	}
}
