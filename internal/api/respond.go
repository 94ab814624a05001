package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"healthdash/internal/assistant"
	"healthdash/internal/form"
	"healthdash/internal/metrics"
	"healthdash/internal/model"
	"healthdash/internal/store"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields []form.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.metrics.Inc(metrics.HTTPErrorsTotal)
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeErr maps domain errors to status codes.
func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		h.metrics.Inc(metrics.HTTPErrorsTotal)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "invalid reading",
			Fields: verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, model.ErrUnknownMetric):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, assistant.ErrSessionNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrNoReadings):
		h.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, assistant.ErrBusy):
		h.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, assistant.ErrEmptyMessage):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		h.writeError(w, http.StatusGatewayTimeout, "request timed out")
	case errors.Is(err, context.Canceled):
		h.writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		h.logger.Errorf("unhandled error: %v", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
}
