// Package httpserver contains HTTP handlers and middleware.
//
// It serves the browser UI and the small JSON API behind it: document
// extraction, test case generation, backend health and text export. Every
// failure is converted to an inline error envelope at this boundary and the
// interface stays interactive; nothing here is fatal to the process.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrDecode):
		return "DECODE_FAILED"
	case errors.Is(err, domain.ErrParse):
		return "PARSE_FAILED"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrBackendTimeout):
		return "BACKEND_TIMEOUT"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return "BACKEND_UNAVAILABLE"
	case errors.Is(err, domain.ErrBackendTransport):
		return "BACKEND_TRANSPORT"
	default:
		return "INTERNAL"
	}
}

// hintFor suggests a remedy for the two common transient failure classes.
func hintFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrBackendTimeout):
		return "the backend timed out; try again with a shorter document"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return "the backend is unreachable; retry in a moment"
	default:
		return ""
	}
}

func writeError(w http.ResponseWriter, _ *http.Request, err error, details interface{}) {
	if details == nil {
		if hint := hintFor(err); hint != "" {
			details = map[string]string{"hint": hint}
		}
	}
	writeJSON(w, domain.StatusFor(err), errorEnvelope{Error: apiError{Code: codeFor(err), Message: err.Error(), Details: details}})
}
