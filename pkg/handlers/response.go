package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	fieldEmail       = "email"
	fieldPassword    = "password"
	fieldCredentials = "credentials"
	fieldGeneral     = "general"

	msgEmailRequired      = "Email is required"
	msgEmailInvalid       = "Invalid email address"
	msgPasswordRequired   = "Password is required"
	msgInvalidCredentials = "Invalid credentials"
	msgSomethingWrong     = "Something went wrong"
	msgNotFound           = "Not found"
)

// FieldErrors maps a form field, or credentials/general for form-wide
// problems, to human readable messages.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func generalError(msg string) FieldErrors {
	return FieldErrors{fieldGeneral: {msg}}
}

func WriteResp(w http.ResponseWriter, logger *slog.Logger, body map[string]any, status int) bool {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to write JSON response", slog.Any("err", err))
		return false
	}
	return true
}

func writeSuccess(w http.ResponseWriter, logger *slog.Logger) bool {
	return WriteResp(w, logger, map[string]any{"success": true}, http.StatusOK)
}

func writeErrors(w http.ResponseWriter, logger *slog.Logger, errs FieldErrors, status int) bool {
	return WriteResp(w, logger, map[string]any{"error": errs}, status)
}

// NotFound answers unknown API routes with the error mapping.
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeErrors(w, logger, generalError(msgNotFound), http.StatusNotFound)
	}
}
