// Package domain holds the error taxonomy, transient entities and ports
// shared by the adapters and usecases. Nothing here is persisted: a
// Document lives until the next upload and a Generation until the next
// generate request, both held client-side between calls.
package domain

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrDecode             = errors.New("decode failed")
	ErrParse              = errors.New("parse failed")
	ErrBackendTimeout     = errors.New("backend timeout")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendTransport   = errors.New("backend transport error")
	ErrInternal           = errors.New("internal error")
)

// StatusFor returns the numeric status surrogate for an error class so the
// presentation layer can branch uniformly whether a failure originated
// locally (timeout, refused connection) or from the remote service.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrDecode), errors.Is(err, ErrParse):
		return http.StatusBadRequest
	case errors.Is(err, ErrBackendTimeout):
		return http.StatusRequestTimeout
	case errors.Is(err, ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrBackendTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Document is the requirements text extracted from one upload.
// Chars counts runes, not bytes, to match what the user sees in the preview.
type Document struct {
	Filename string
	Text     string
	Chars    int
	Words    int
}

// Generation is the outcome of one backend call. StatusCode is the remote
// HTTP status verbatim; TestCases is nil-safe and carries no identity beyond
// position (labels are derived from index at render time). ErrMessage holds
// the remote error field when the backend answered non-200.
type Generation struct {
	StatusCode int
	TestCases  []string
	ModelUsed  string
	ErrMessage string
	CreatedAt  time.Time
}

// Empty reports whether a transport-level success produced zero test cases.
// This is a presentation state, not an error.
func (g Generation) Empty() bool { return len(g.TestCases) == 0 }

// Ports

// TextExtractor extracts UTF-8 text from an uploaded document. The
// extension of filename selects the format; data is read once.
type TextExtractor interface {
	Extract(ctx Context, filename string, data []byte) (string, error)
}

// TestCaseGenerator wraps the single generation call to the external
// backend service.
type TestCaseGenerator interface {
	GenerateTestCases(ctx Context, srs string) (Generation, error)
}

// HealthChecker reports backend reachability. Healthy means a
// transport-level 200; details is the parsed body on success or an error
// description otherwise. Purely informational, never cached.
type HealthChecker interface {
	CheckHealth(ctx Context) (bool, any)
}

// Context aliases context.Context so ports stay free of direct stdlib
// imports in signatures; adapters pass request contexts straight through.
type Context = context.Context
