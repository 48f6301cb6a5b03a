package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/funfirstplay/matchup/app/shared/apperrors"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// SuccessEnvelope is the body of every successful response.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, SuccessEnvelope{Success: true, Message: message, Data: data})
}

// WriteError maps err to its status and writes an error envelope. Internal
// causes are logged and replaced by a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := apperrors.HTTPStatus(err)
	message, details := apperrors.PublicMessage(err)

	if status >= http.StatusInternalServerError && logger != nil {
		logger.ErrorContext(r.Context(), "Request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}

	WriteJSON(w, status, ErrorEnvelope{Success: false, Message: message, Errors: details})
}

// DecodeJSON decodes a bounded JSON body into dst, rejecting unknown fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperrors.Validation("Request body must not be empty")
		case errors.As(err, &maxErr):
			return apperrors.Validation("Request body too large")
		default:
			return apperrors.Validation("Invalid request body").WithDetails(err.Error())
		}
	}

	if dec.More() {
		return apperrors.Validation("Request body must contain a single JSON object")
	}
	return nil
}

// URLParamInt64 parses a positive integer path parameter.
func URLParamInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation(fmt.Sprintf("Invalid %s", name))
	}
	return id, nil
}

// QueryInt64 parses an optional integer query parameter.
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("Invalid %s", name))
	}
	return &v, nil
}

// QueryInt parses an optional integer query parameter with a fallback.
func QueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperrors.Validation(fmt.Sprintf("Invalid %s", name))
	}
	return v, nil
}

// QueryBool parses an optional boolean query parameter with a fallback.
func QueryBool(r *http.Request, name string, fallback bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.Validation(fmt.Sprintf("Invalid %s", name))
	}
	return v, nil
}
