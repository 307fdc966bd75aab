package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// ErrMessageInternal is the generic message for 500 responses. Internal
// details stay in the logs.
const ErrMessageInternal = "internal server error"

// maxJSONBodyBytes caps JSON request bodies.
const maxJSONBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid request body")

type messageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode json response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		return errInvalidBody
	}
	return nil
}

// internalError logs err and sends the generic 500 payload.
func internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "method", r.Method, "path", r.URL.Path)
	JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
}
