package wizard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/i18n"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Snapshot is the serializable content of a Wizard.
type Snapshot struct {
	State   State                   `json:"state" msgpack:"state"`
	Data    model.FormData          `json:"data" msgpack:"data"`
	Touched []model.Field           `json:"touched,omitempty" msgpack:"touched,omitempty"`
	Result  *model.SubmissionResult `json:"result,omitempty" msgpack:"result,omitempty"`
}

// Wizard is the contact form state machine. Methods are safe to call from
// multiple goroutines; observers run outside the internal lock.
type Wizard struct {
	mu        sync.Mutex
	state     State
	data      model.FormData
	touched   map[model.Field]bool
	result    *model.SubmissionResult
	observers []func(State)

	submitter  Submitter
	celebrator Celebrator
	tracker    Tracker
	translator i18n.Translator
	locale     string
	logger     *zap.Logger
}

// New creates a wizard in the NotStarted state with an empty form.
func New(options ...Option) *Wizard {
	w := &Wizard{
		state:      NotStarted(),
		touched:    make(map[model.Field]bool),
		translator: i18n.Default(),
		locale:     i18n.DefaultLocale,
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

func (w *Wizard) restore(s Snapshot) {
	state := s.State
	// A submission cannot survive a restore; resume on the review step.
	if state.Phase == PhaseSubmitting {
		state = Editing(model.StepReview)
	}
	if !state.Valid() {
		state = NotStarted()
	}
	w.state = state
	w.data = s.Data
	w.touched = make(map[model.Field]bool, len(s.Touched))
	for _, field := range s.Touched {
		w.touched[field] = true
	}
	if s.Result != nil {
		result := *s.Result
		w.result = &result
	}
}

// OnChange registers fn to be called after every state change.
func (w *Wizard) OnChange(fn func(State)) {
	if fn == nil {
		return
	}
	w.mu.Lock()
	w.observers = append(w.observers, fn)
	w.mu.Unlock()
}

// State returns the current position.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Data returns the current form.
func (w *Wizard) Data() model.FormData {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.data
}

// Result returns the last submission result, if any.
func (w *Wizard) Result() (model.SubmissionResult, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.result == nil {
		return model.SubmissionResult{}, false
	}
	return *w.result, true
}

// Snapshot captures the wizard for storage.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := Snapshot{State: w.state, Data: w.data}
	for field, touched := range w.touched {
		if touched {
			s.Touched = append(s.Touched, field)
		}
	}
	sort.Slice(s.Touched, func(i, j int) bool { return s.Touched[i] < s.Touched[j] })
	if w.result != nil {
		result := *w.result
		s.Result = &result
	}
	return s
}

// CanProceed reports whether Next would succeed right now.
func (w *Wizard) CanProceed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Phase == PhaseEditing &&
		w.state.Step < model.LastStep &&
		CanProceed(w.state.Step, w.data)
}

// Begin moves from NotStarted to the first step.
func (w *Wizard) Begin() error {
	return w.change(func(current State) (State, error) {
		switch current.Phase {
		case PhaseNotStarted:
			return Editing(model.FirstStep), nil
		case PhaseSucceeded:
			return current, ErrFinished
		case PhaseSubmitting:
			return current, ErrSubmitting
		}
		return current, fmt.Errorf("%w: already started", ErrBlocked)
	})
}

// Next advances one step when the current step's precondition holds.
func (w *Wizard) Next() error {
	return w.transition(func(current State) (State, error) {
		if current.Step >= model.LastStep {
			return current, fmt.Errorf("%w: %s is the last step", ErrBlocked, current)
		}
		target := Editing(current.Step + 1)
		if !CanTransition(current, target, w.data) {
			return current, fmt.Errorf("%w: %s is incomplete", ErrBlocked, current)
		}
		return target, nil
	})
}

// Back returns to the previous step.
func (w *Wizard) Back() error {
	return w.transition(func(current State) (State, error) {
		if current.Step <= model.FirstStep {
			return current, fmt.Errorf("%w: %s is the first step", ErrBlocked, current)
		}
		return Editing(current.Step - 1), nil
	})
}

// JumpTo moves to an earlier step, as a step indicator click does.
func (w *Wizard) JumpTo(step model.Step) error {
	return w.transition(func(current State) (State, error) {
		switch {
		case !step.Valid():
			return current, fmt.Errorf("%w: step %d out of range", ErrBlocked, int(step))
		case step > current.Step:
			return current, ErrForwardJump
		case step == current.Step:
			return current, nil
		}
		return Editing(step), nil
	})
}

// Set replaces one field value.
func (w *Wizard) Set(field model.Field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editableLocked(); err != nil {
		return err
	}
	next, err := w.data.Set(field, value)
	if err != nil {
		return err
	}
	w.data = next
	return nil
}

// SelectEngagement picks an engagement model by its catalog title.
func (w *Wizard) SelectEngagement(title string) error {
	engagement, ok := model.LookupEngagement(title)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEngagement, title)
	}
	return w.Set(model.FieldEngagement, engagement.Title)
}

// Blur marks field as touched. Touched flags are never cleared.
func (w *Wizard) Blur(field model.Field) error {
	if _, err := model.ParseField(string(field)); err != nil {
		return err
	}
	w.mu.Lock()
	w.touched[field] = true
	w.mu.Unlock()
	return nil
}

// Touched reports whether field was blurred at least once.
func (w *Wizard) Touched(field model.Field) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.touched[field]
}

// FieldErrors returns every current field issue, translated.
func (w *Wizard) FieldErrors() []validation.Issue {
	w.mu.Lock()
	issues := validation.FieldIssues(w.data, w.state.Step)
	w.mu.Unlock()
	return w.translate(issues)
}

// VisibleErrors returns the field issues a front-end should display: name
// and email issues only after the field was blurred.
func (w *Wizard) VisibleErrors() []validation.Issue {
	w.mu.Lock()
	all := validation.FieldIssues(w.data, w.state.Step)
	visible := all[:0]
	for _, issue := range all {
		switch issue.Field {
		case model.FieldName, model.FieldEmail:
			if !w.touched[issue.Field] {
				continue
			}
		}
		visible = append(visible, issue)
	}
	w.mu.Unlock()
	return w.translate(visible)
}

func (w *Wizard) translate(issues []validation.Issue) []validation.Issue {
	if len(issues) == 0 {
		return nil
	}
	out := make([]validation.Issue, len(issues))
	for i, issue := range issues {
		issue.Message = i18n.Message(w.translator, w.locale, issue.Key)
		out[i] = issue
	}
	return out
}

// Submit sends the form from the review step and blocks until the outcome is
// known. The returned error reports a rejected event; submission failures are
// reported through the result and the Failed state.
func (w *Wizard) Submit(ctx context.Context) (model.SubmissionResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	w.mu.Lock()
	if err := w.submittableLocked(); err != nil {
		w.mu.Unlock()
		return model.SubmissionResult{}, err
	}
	w.state = Submitting()
	w.result = nil
	form := w.data
	observers := w.observersLocked()
	w.mu.Unlock()
	notify(observers, Submitting())

	result := w.callSubmitter(ctx, form)

	next := Failed()
	if result.Success {
		next = Succeeded()
	}
	w.mu.Lock()
	w.state = next
	w.result = &result
	observers = w.observersLocked()
	w.mu.Unlock()
	notify(observers, next)

	if result.Success {
		w.celebrate(ctx)
		w.track(ctx, form)
	}
	return result, nil
}

func (w *Wizard) submittableLocked() error {
	switch w.state.Phase {
	case PhaseSucceeded:
		return ErrFinished
	case PhaseSubmitting:
		return ErrSubmitting
	case PhaseEditing:
		if w.state.Step != model.StepReview {
			return fmt.Errorf("%w: submit is only available on the review step", ErrBlocked)
		}
	default:
		return ErrNotEditing
	}
	if w.submitter == nil {
		return ErrNoSubmitter
	}
	return nil
}

func (w *Wizard) callSubmitter(ctx context.Context, form model.FormData) (result model.SubmissionResult) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("wizard submitter panicked", zap.Any("panic", r))
			result = model.Failed(i18n.Message(w.translator, w.locale, i18n.KeyWizardFailure))
		}
	}()

	result, err := w.submitter.Submit(ctx, form)
	if err != nil {
		w.logger.Warn("wizard submission failed", zap.Error(err))
		return model.Failed(i18n.Message(w.translator, w.locale, i18n.KeyWizardFailure))
	}
	if strings.TrimSpace(result.Message) == "" && !result.Success {
		result.Message = i18n.Message(w.translator, w.locale, i18n.KeyWizardFailure)
	}
	return result
}

func (w *Wizard) celebrate(ctx context.Context) {
	if w.celebrator == nil {
		return
	}
	defer w.swallow("celebrate")
	if err := w.celebrator.Celebrate(ctx); err != nil {
		w.logger.Warn("wizard celebration failed", zap.Error(err))
	}
}

func (w *Wizard) track(ctx context.Context, form model.FormData) {
	if w.tracker == nil {
		return
	}
	defer w.swallow("track")
	if err := w.tracker.Track(ctx, TrackEventSubmitted, form.Map()); err != nil {
		w.logger.Warn("wizard tracking failed", zap.Error(err))
	}
}

func (w *Wizard) swallow(hook string) {
	if r := recover(); r != nil {
		w.logger.Warn("wizard hook panicked", zap.String("hook", hook), zap.Any("panic", r))
	}
}

// Retry returns from Failed to the review step, keeping the form.
func (w *Wizard) Retry() error {
	return w.change(func(current State) (State, error) {
		if current.Phase != PhaseFailed {
			return current, fmt.Errorf("%w: nothing to retry from %s", ErrBlocked, current)
		}
		w.result = nil
		return Editing(model.StepReview), nil
	})
}

// Reset discards the form and returns to NotStarted. It is refused while a
// submission is in flight.
func (w *Wizard) Reset() error {
	return w.change(func(current State) (State, error) {
		if current.Phase == PhaseSubmitting {
			return current, ErrSubmitting
		}
		w.data = model.FormData{}
		w.touched = make(map[model.Field]bool)
		w.result = nil
		return NotStarted(), nil
	})
}

// transition runs a navigation step, which is only valid while editing.
func (w *Wizard) transition(fn func(State) (State, error)) error {
	return w.change(func(current State) (State, error) {
		if err := w.editableLocked(); err != nil {
			return current, err
		}
		return fn(current)
	})
}

func (w *Wizard) change(fn func(State) (State, error)) error {
	w.mu.Lock()
	current := w.state
	next, err := fn(current)
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.state = next
	observers := w.observersLocked()
	w.mu.Unlock()

	if next != current {
		notify(observers, next)
	}
	return nil
}

func (w *Wizard) editableLocked() error {
	switch w.state.Phase {
	case PhaseEditing:
		return nil
	case PhaseSubmitting:
		return ErrSubmitting
	case PhaseSucceeded:
		return ErrFinished
	default:
		return ErrNotEditing
	}
}

func (w *Wizard) observersLocked() []func(State) {
	return append([]func(State){}, w.observers...)
}

func notify(observers []func(State), state State) {
	for _, fn := range observers {
		fn(state)
	}
}
