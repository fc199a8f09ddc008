package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
	"github.com/goliatone/go-contactform/pkg/wizard"
)

const (
	reviewSubmit = "Submit"
	reviewBack   = "Back"
	editPrefix   = "Edit: "
)

// Runner walks a wizard.Wizard through terminal prompts.
type Runner struct {
	driver PromptDriver
	theme  Theme
	banner string
}

// New constructs a runner with defaults (survey driver on stdout).
func New(options ...Option) *Runner {
	r := &Runner{
		banner: DefaultBanner,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Celebrator prints the banner; pass it to wizard.WithCelebrator.
func (r *Runner) Celebrator() wizard.Celebrator {
	return wizard.CelebratorFunc(func(ctx context.Context) error {
		if r.banner == "" {
			return nil
		}
		return r.driver.Info(ctx, r.banner)
	})
}

// Run drives w until the submission succeeds or the visitor declines to try
// again after a failure. It returns the last submission result.
func (r *Runner) Run(ctx context.Context, w *wizard.Wizard) (model.SubmissionResult, error) {
	if ctx == nil {
		return model.SubmissionResult{}, errors.New("tui: context is required")
	}
	if w == nil {
		return model.SubmissionResult{}, errors.New("tui: wizard is required")
	}
	if w.State().Phase == wizard.PhaseNotStarted {
		if err := w.Begin(); err != nil {
			return model.SubmissionResult{}, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return model.SubmissionResult{}, err
		}

		state := w.State()
		switch state.Phase {
		case wizard.PhaseEditing:
			if err := r.promptStep(ctx, w, state.Step); err != nil {
				return model.SubmissionResult{}, err
			}
		case wizard.PhaseSucceeded:
			result, _ := w.Result()
			r.success(ctx, result.Message)
			return result, nil
		case wizard.PhaseFailed:
			result, _ := w.Result()
			r.fail(ctx, result.Message)
			again, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
			if err != nil {
				return result, err
			}
			if !again {
				return result, nil
			}
			if err := w.Retry(); err != nil {
				return result, err
			}
		default:
			return model.SubmissionResult{}, fmt.Errorf("tui: unexpected wizard state %s", state)
		}
	}
}

func (r *Runner) promptStep(ctx context.Context, w *wizard.Wizard, step model.Step) error {
	r.info(ctx, fmt.Sprintf("Step %d of %d: %s", int(step), int(model.LastStep), step.Title()))

	switch step {
	case model.StepEngagement:
		if err := r.promptEngagement(ctx, w); err != nil {
			return err
		}
	case model.StepProject:
		if err := r.promptUntilValid(ctx, w, model.FieldProject, false, func(current string) (string, error) {
			return r.driver.TextArea(ctx, TextAreaConfig{
				Message: "What are you working on?",
				Default: current,
			})
		}); err != nil {
			return err
		}
		value, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: "What would success look like? (optional)",
			Default: w.Data().Success,
		})
		if err != nil {
			return err
		}
		if err := w.Set(model.FieldSuccess, value); err != nil {
			return err
		}
	case model.StepCompany:
		for _, field := range []struct {
			field   model.Field
			message string
		}{
			{model.FieldCompany, "Company (optional)"},
			{model.FieldWebsite, "Website (optional)"},
		} {
			value, err := r.driver.Input(ctx, InputConfig{Message: field.message, Default: w.Data().Get(field.field)})
			if err != nil {
				return err
			}
			if err := w.Set(field.field, value); err != nil {
				return err
			}
		}
	case model.StepContact:
		for _, field := range []struct {
			field   model.Field
			message string
		}{
			{model.FieldName, "Your name"},
			{model.FieldEmail, "Your email"},
		} {
			field := field
			if err := r.promptUntilValid(ctx, w, field.field, true, func(current string) (string, error) {
				return r.driver.Input(ctx, InputConfig{Message: field.message, Default: current})
			}); err != nil {
				return err
			}
		}
	case model.StepReview:
		return r.review(ctx, w)
	}

	return w.Next()
}

func (r *Runner) promptEngagement(ctx context.Context, w *wizard.Wizard) error {
	engagements := model.Engagements()
	options := make([]string, len(engagements))
	descriptions := make([]string, len(engagements))
	defaultIndex := 0
	current := w.Data().Engagement
	for i, engagement := range engagements {
		options[i] = engagement.Title
		descriptions[i] = engagement.Description
		if engagement.Title == current {
			defaultIndex = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "How would you like to work together?",
		Options:      options,
		Descriptions: descriptions,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return fmt.Errorf("%w: %d", ErrInvalidSelection, idx)
	}
	return w.SelectEngagement(options[idx])
}

// promptUntilValid asks for field until it has no visible issue. With blur set
// the field is marked touched after every answer.
func (r *Runner) promptUntilValid(ctx context.Context, w *wizard.Wizard, field model.Field, blur bool, ask func(current string) (string, error)) error {
	for {
		value, err := ask(w.Data().Get(field))
		if err != nil {
			return err
		}
		if err := w.Set(field, value); err != nil {
			return err
		}
		if blur {
			if err := w.Blur(field); err != nil {
				return err
			}
		}
		issue, found := validation.IssueFor(w.VisibleErrors(), field)
		if !found {
			return nil
		}
		r.fail(ctx, issue.Message)
	}
}

func (r *Runner) review(ctx context.Context, w *wizard.Wizard) error {
	data := w.Data()
	lines := []string{"Review your inquiry:"}
	for _, field := range model.Fields() {
		value := strings.TrimSpace(data.Get(field))
		if value == "" {
			value = "-"
		}
		lines = append(lines, fmt.Sprintf("  %-10s %s", field+":", value))
	}
	r.info(ctx, strings.Join(lines, "\n"))

	options := []string{reviewSubmit, reviewBack}
	for _, step := range model.Steps()[:model.LastStep-1] {
		options = append(options, editPrefix+step.Title())
	}

	idx, err := r.driver.Select(ctx, SelectConfig{Message: "Ready to send?", Options: options})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return fmt.Errorf("%w: %d", ErrInvalidSelection, idx)
	}

	switch choice := options[idx]; choice {
	case reviewSubmit:
		r.info(ctx, "Sending...")
		_, err := w.Submit(ctx)
		return err
	case reviewBack:
		return w.Back()
	default:
		return w.JumpTo(model.Step(idx - 1))
	}
}

func (r *Runner) info(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Runner) fail(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func (r *Runner) success(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, r.theme.SuccessPrefix+msg)
}
