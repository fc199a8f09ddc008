package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/i18n"
	"github.com/goliatone/go-contactform/pkg/mail"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// DefaultSendTimeout bounds the wait for the email provider.
const DefaultSendTimeout = 30 * time.Second

// DefaultFrom is used when no sender address is configured.
const DefaultFrom = "Portfolio Contact <onboarding@resend.dev>"

// EmailRenderer builds the inquiry email for a sanitized form.
type EmailRenderer interface {
	Render(form model.FormData, locale string) (render.Email, error)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSender injects the email capability. nil keeps the disabled sender.
func WithSender(sender mail.Sender) Option {
	return func(p *Pipeline) {
		if sender != nil {
			p.sender = sender
		}
	}
}

// WithSendTimeout overrides DefaultSendTimeout.
func WithSendTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithAddresses sets the From header and the recipients.
func WithAddresses(from string, to ...string) Option {
	return func(p *Pipeline) {
		if trimmed := strings.TrimSpace(from); trimmed != "" {
			p.from = trimmed
		}
		p.to = p.to[:0]
		for _, addr := range to {
			if trimmed := strings.TrimSpace(addr); trimmed != "" {
				p.to = append(p.to, trimmed)
			}
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTranslator sets the message catalog used for results.
func WithTranslator(t i18n.Translator) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.translator = t
		}
	}
}

// WithLocale sets the default result locale and the locale of the email body.
func WithLocale(locale string) Option {
	return func(p *Pipeline) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			p.locale = trimmed
		}
	}
}

// WithEmailRenderer replaces the default inquiry renderer.
func WithEmailRenderer(r EmailRenderer) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.renderer = r
		}
	}
}

// WithIDGenerator overrides how idempotency keys are minted.
func WithIDGenerator(fn func() string) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.newID = fn
		}
	}
}

// Pipeline is stateless between calls and safe for concurrent use.
type Pipeline struct {
	sender     mail.Sender
	timeout    time.Duration
	from       string
	to         []string
	logger     *zap.Logger
	translator i18n.Translator
	locale     string
	renderer   EmailRenderer
	newID      func() string
}

// New builds a pipeline. With a configured sender at least one recipient is
// required.
func New(options ...Option) (*Pipeline, error) {
	p := &Pipeline{
		sender:     mail.Disabled(),
		timeout:    DefaultSendTimeout,
		from:       DefaultFrom,
		logger:     zap.NewNop(),
		translator: i18n.Default(),
		locale:     i18n.DefaultLocale,
		newID:      uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}

	if p.renderer == nil {
		r, err := render.NewEmailRenderer(render.WithTranslator(p.translator))
		if err != nil {
			return nil, fmt.Errorf("pipeline: email renderer: %w", err)
		}
		p.renderer = r
	}
	if mail.Configured(p.sender) && len(p.to) == 0 {
		return nil, errors.New("pipeline: at least one recipient is required when sending is enabled")
	}
	return p, nil
}

// Submit runs the pipeline and returns the visitor-facing result.
func (p *Pipeline) Submit(ctx context.Context, form model.FormData) model.SubmissionResult {
	return p.SubmitDetailed(ctx, form).Result
}

// SubmitDetailed runs the pipeline and reports the outcome classification.
// The visitor locale is read from ctx (see i18n.WithLocale).
func (p *Pipeline) SubmitDetailed(ctx context.Context, form model.FormData) (report Report) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	locale := i18n.LocaleFrom(ctx, p.locale)

	defer func() {
		if r := recover(); r != nil {
			report = p.finish(locale, OutcomeUnexpected, fmt.Errorf("pipeline: panic: %v", r))
		}
		report.Duration = time.Since(start)
		p.log(form, report)
	}()

	if missing := validation.MissingRequired(form); len(missing) > 0 {
		return p.finish(locale, OutcomeMissingFields, nil)
	}
	if !validation.IsValidEmail(form.Email) {
		return p.finish(locale, OutcomeInvalidEmail, nil)
	}

	form = form.WithWebsite(validation.SanitizeWebsite(form.Website))

	if !mail.Configured(p.sender) {
		report = p.finish(locale, OutcomeSkipped, nil)
		report.Website = form.Website
		return report
	}

	email, err := p.renderer.Render(form, p.locale)
	if err != nil {
		return p.finish(locale, OutcomeUnexpected, err)
	}

	receipt, err := p.send(ctx, mail.Message{
		From:           p.from,
		To:             append([]string(nil), p.to...),
		ReplyTo:        strings.TrimSpace(form.Email),
		Subject:        email.Subject,
		HTML:           email.HTML,
		Text:           email.Text,
		IdempotencyKey: p.newID(),
	})

	var outcome Outcome
	switch {
	case err == nil:
		outcome = OutcomeSent
	case errors.Is(err, ErrSendTimeout):
		outcome = OutcomeTimeout
	case errors.Is(err, errSenderPanic), errors.Is(err, context.Canceled):
		outcome = OutcomeUnexpected
	default:
		outcome = OutcomeDeliveryFailed
	}

	report = p.finish(locale, outcome, err)
	report.Website = form.Website
	report.ReceiptID = receipt.ID
	return report
}

var errSenderPanic = errors.New("pipeline: sender panicked")

type sendResult struct {
	receipt mail.Receipt
	err     error
}

// send races the sender against the deadline. The result channel is
// buffered so a sender that settles after the deadline can still deliver and
// exit; its late result is dropped.
func (p *Pipeline) send(ctx context.Context, msg mail.Message) (mail.Receipt, error) {
	sendCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan sendResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- sendResult{err: fmt.Errorf("%w: %v", errSenderPanic, r)}
			}
		}()
		receipt, err := p.sender.Send(sendCtx, msg)
		done <- sendResult{receipt: receipt, err: err}
	}()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return res.receipt, res.err
	case <-timer.C:
		return mail.Receipt{}, ErrSendTimeout
	case <-ctx.Done():
		return mail.Receipt{}, ctx.Err()
	}
}

func (p *Pipeline) finish(locale string, outcome Outcome, err error) Report {
	message := i18n.Message(p.translator, locale, outcome.MessageKey())
	result := model.Failed(message)
	if outcome.Success() {
		result = model.Succeeded(message)
	}
	return Report{Result: result, Outcome: outcome, Err: err}
}

func (p *Pipeline) log(form model.FormData, report Report) {
	fields := []zap.Field{
		zap.String("outcome", string(report.Outcome)),
		zap.String("engagement", form.Engagement),
		zap.Duration("duration", report.Duration),
	}
	if report.ReceiptID != "" {
		fields = append(fields, zap.String("receipt_id", report.ReceiptID))
	}
	if report.Err != nil {
		fields = append(fields, zap.Error(report.Err))
	}

	switch report.Outcome {
	case OutcomeSent, OutcomeSkipped:
		p.logger.Info("contact submission handled", fields...)
	case OutcomeMissingFields, OutcomeInvalidEmail:
		p.logger.Debug("contact submission rejected", fields...)
	default:
		p.logger.Warn("contact submission failed", fields...)
	}
}
