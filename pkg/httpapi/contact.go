package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-contactform/pkg/i18n"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/pipeline"
)

var outcomeStatus = map[pipeline.Outcome]int{
	pipeline.OutcomeSent:           http.StatusOK,
	pipeline.OutcomeSkipped:        http.StatusOK,
	pipeline.OutcomeMissingFields:  http.StatusUnprocessableEntity,
	pipeline.OutcomeInvalidEmail:   http.StatusUnprocessableEntity,
	pipeline.OutcomeTimeout:        http.StatusGatewayTimeout,
	pipeline.OutcomeDeliveryFailed: http.StatusBadGateway,
	pipeline.OutcomeUnexpected:     http.StatusInternalServerError,
}

// StatusFor maps a pipeline outcome to its HTTP status.
func StatusFor(outcome pipeline.Outcome) int {
	if status, ok := outcomeStatus[outcome]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var form model.FormData
	if err := decodeJSON(r, &form); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, model.Failed(s.message(r.Context(), i18n.KeyInvalidRequest)))
		return
	}

	report := s.pipeline.SubmitDetailed(r.Context(), form)
	writeJSON(w, StatusFor(report.Outcome), report.Result)
}

func decodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
