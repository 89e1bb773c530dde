// Package webjson is the JSON plumbing for the HTTP surface: response
// writing, request decoding, and the single place where the faults
// taxonomy maps onto HTTP status codes.
package webjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carebridge/carebridge/internal/domain/faults"
	"go.uber.org/zap"
)

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errBody struct {
	Error string `json:"error"`
}

// Decode reads the request body into dst, rejecting unknown fields.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// Fail maps err onto an HTTP status and writes the error body. Faults
// map to client-visible statuses; anything else is a 500 and gets
// logged, since unexpected errors should never leave the process
// unreported.
func Fail(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, faults.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, faults.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, faults.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, faults.ErrNoFocusAreas):
		status = http.StatusPreconditionFailed
	case errors.Is(err, faults.ErrInvalidTransition),
		errors.Is(err, faults.ErrAlreadySignedUp),
		errors.Is(err, faults.ErrAlreadyClaimed),
		errors.Is(err, faults.ErrNotSignedUp),
		errors.Is(err, faults.ErrNotAvailable),
		errors.Is(err, faults.ErrFull),
		errors.Is(err, faults.ErrNotOpen),
		errors.Is(err, faults.ErrNotOwner),
		errors.Is(err, faults.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		Write(w, status, errBody{Error: "internal error"})
		return
	}
	Write(w, status, errBody{Error: err.Error()})
}

// BadRequest writes a 400 with the given message.
func BadRequest(w http.ResponseWriter, msg string) {
	Write(w, http.StatusBadRequest, errBody{Error: msg})
}
