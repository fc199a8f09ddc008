package wizard

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/i18n"
)

// Option configures a Wizard.
type Option func(*Wizard)

// WithSubmitter sets the submission capability.
func WithSubmitter(s Submitter) Option {
	return func(w *Wizard) {
		w.submitter = s
	}
}

// WithCelebrator sets the success effect.
func WithCelebrator(c Celebrator) Option {
	return func(w *Wizard) {
		w.celebrator = c
	}
}

// WithTracker sets the analytics sink.
func WithTracker(t Tracker) Option {
	return func(w *Wizard) {
		w.tracker = t
	}
}

// WithTranslator sets the catalog used for field errors and failures.
func WithTranslator(t i18n.Translator) Option {
	return func(w *Wizard) {
		if t != nil {
			w.translator = t
		}
	}
}

// WithLocale sets the visitor locale.
func WithLocale(locale string) Option {
	return func(w *Wizard) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			w.locale = trimmed
		}
	}
}

// WithLogger sets the logger used for swallowed hook failures.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Wizard) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithSnapshot restores a previously captured wizard.
func WithSnapshot(s Snapshot) Option {
	return func(w *Wizard) {
		w.restore(s)
	}
}
