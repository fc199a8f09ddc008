package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/i18n"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/session"
	"github.com/goliatone/go-contactform/pkg/validation"
	"github.com/goliatone/go-contactform/pkg/wizard"
)

// Event types accepted by the session events route.
const (
	EventBegin  = "begin"
	EventSet    = "set"
	EventBlur   = "blur"
	EventNext   = "next"
	EventBack   = "back"
	EventJump   = "jump"
	EventSubmit = "submit"
	EventRetry  = "retry"
	EventReset  = "reset"
)

// Event is one wizard interaction.
type Event struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
	Step  int    `json:"step,omitempty"`
}

// SessionView is the JSON shape of a wizard session.
type SessionView struct {
	ID         string                  `json:"id"`
	State      wizard.State            `json:"state"`
	Data       model.FormData          `json:"data"`
	Touched    []model.Field           `json:"touched,omitempty"`
	Result     *model.SubmissionResult `json:"result,omitempty"`
	CanProceed bool                    `json:"can_proceed"`
	Errors     []validation.Issue      `json:"errors,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

var errBadEvent = errors.New("httpapi: malformed event")

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.sessions.Create(r.Context())
	if err != nil {
		s.logger.Error("create wizard session", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, model.Failed(s.message(r.Context(), i18n.KeyUnexpected)))
		return
	}
	writeJSON(w, http.StatusCreated, s.view(r, snap, ""))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.sessions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.view(r, snap, ""))
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var event Event
	if err := decodeJSON(r, &event); err != nil {
		writeJSON(w, http.StatusBadRequest, model.Failed(s.message(r.Context(), i18n.KeyInvalidRequest)))
		return
	}

	snap, err := s.sessions.Update(r.Context(), r.PathValue("id"), func(wz *wizard.Wizard) error {
		return apply(r, wz, event)
	}, s.wizardOptions(r)...)

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.view(r, snap, ""))
	case errors.Is(err, errBadEvent):
		writeJSON(w, http.StatusBadRequest, model.Failed(s.message(r.Context(), i18n.KeyInvalidRequest)))
	case isConflict(err) && snap.ID != "":
		writeJSON(w, http.StatusConflict, s.view(r, snap, err.Error()))
	case isConflict(err):
		current, getErr := s.sessions.Get(r.Context(), r.PathValue("id"))
		if getErr != nil {
			s.writeSessionError(w, r, getErr)
			return
		}
		writeJSON(w, http.StatusConflict, s.view(r, current, err.Error()))
	default:
		s.writeSessionError(w, r, err)
	}
}

func apply(r *http.Request, wz *wizard.Wizard, event Event) error {
	switch event.Type {
	case EventBegin:
		return wz.Begin()
	case EventSet:
		field, err := model.ParseField(event.Field)
		if err != nil {
			return errors.Join(errBadEvent, err)
		}
		if field == model.FieldEngagement {
			return wz.SelectEngagement(event.Value)
		}
		return wz.Set(field, event.Value)
	case EventBlur:
		field, err := model.ParseField(event.Field)
		if err != nil {
			return errors.Join(errBadEvent, err)
		}
		return wz.Blur(field)
	case EventNext:
		return wz.Next()
	case EventBack:
		return wz.Back()
	case EventJump:
		return wz.JumpTo(model.Step(event.Step))
	case EventSubmit:
		_, err := wz.Submit(r.Context())
		return err
	case EventRetry:
		return wz.Retry()
	case EventReset:
		return wz.Reset()
	default:
		return errBadEvent
	}
}

func isConflict(err error) bool {
	for _, target := range []error{
		wizard.ErrBlocked,
		wizard.ErrForwardJump,
		wizard.ErrNotEditing,
		wizard.ErrSubmitting,
		wizard.ErrFinished,
		wizard.ErrUnknownEngagement,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *Server) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, session.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, model.Failed(s.message(r.Context(), i18n.KeySessionExpired)))
		return
	}
	s.logger.Error("wizard session", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, model.Failed(s.message(r.Context(), i18n.KeyUnexpected)))
}

func (s *Server) wizardOptions(r *http.Request) []wizard.Option {
	return []wizard.Option{
		wizard.WithTranslator(s.catalog),
		wizard.WithLocale(i18n.LocaleFrom(r.Context(), i18n.DefaultLocale)),
		wizard.WithLogger(s.logger),
	}
}

func (s *Server) view(r *http.Request, snap session.Snapshot, rejection string) SessionView {
	wz := s.sessions.Wizard(snap, s.wizardOptions(r)...)
	return SessionView{
		ID:         snap.ID,
		State:      snap.State,
		Data:       snap.Data,
		Touched:    snap.Touched,
		Result:     snap.Result,
		CanProceed: wz.CanProceed(),
		Errors:     wz.VisibleErrors(),
		Error:      rejection,
	}
}
