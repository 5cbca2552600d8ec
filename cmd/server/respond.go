package main

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/Simplici0/sanquote/internal/errors"
)

type errorBody struct {
	Error   string         `json:"error"`
	Type    apperrors.Type `json:"type"`
	Context map[string]any `json:"context,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(t apperrors.Type) int {
	switch t {
	case apperrors.TypeInput:
		return http.StatusBadRequest
	case apperrors.TypeConfig:
		return http.StatusUnprocessableEntity
	case apperrors.TypeNotFound:
		return http.StatusNotFound
	case apperrors.TypeConflict:
		return http.StatusConflict
	case apperrors.TypeForbidden:
		return http.StatusForbidden
	case apperrors.TypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	t := apperrors.TypeOf(err)
	status := statusFor(t)

	body := errorBody{Error: err.Error(), Type: t}
	var typed *apperrors.Error
	if apperrors.As(err, &typed) {
		body.Context = typed.Context
	}
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		body.Error = "internal error"
	}
	writeJSON(w, status, body)
}
