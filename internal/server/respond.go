package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/funil/internal/models"
	"github.com/thenoetrevino/funil/internal/services/card"
	"github.com/thenoetrevino/funil/internal/services/clients"
)

// ErrMalformedBody indicates a request body that is not the expected JSON
var ErrMalformedBody = errors.New("malformed request body")

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Success bool     `json:"success"`
	Error   apiError `json:"error"`
}

func errorBody(code, message string) errorEnvelope {
	return errorEnvelope{Error: apiError{Code: code, Message: message}}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

// writeError maps domain errors to status codes
func writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorBody(code, err.Error()))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrCardNotFound):
		return http.StatusNotFound, "CARD_NOT_FOUND"
	case errors.Is(err, models.ErrClientNotFound):
		return http.StatusNotFound, "CLIENT_NOT_FOUND"
	case errors.Is(err, ErrMalformedBody):
		return http.StatusBadRequest, "MALFORMED_BODY"
	case errors.Is(err, models.ErrUnknownColumn),
		errors.Is(err, models.ErrUnknownPriority),
		errors.Is(err, models.ErrEmptyCardID),
		errors.Is(err, card.ErrEmptyTitle),
		errors.Is(err, card.ErrTitleTooLong),
		errors.Is(err, card.ErrNegativeValue),
		errors.Is(err, models.ErrInvalidClientID),
		errors.Is(err, clients.ErrEmptyName),
		errors.Is(err, clients.ErrNameTooLong),
		errors.Is(err, clients.ErrInvalidEmail),
		errors.Is(err, clients.ErrInvalidDocument),
		errors.Is(err, clients.ErrInvalidStatus):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}
