package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/config"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/domain"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/render"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg       config.Config
	Documents usecase.DocumentService
	Generate  usecase.GenerateService
	Health    domain.HealthChecker
}

// NewServer constructs an HTTP server with all handlers wired.
func NewServer(cfg config.Config, docs usecase.DocumentService, gen usecase.GenerateService, health domain.HealthChecker) *Server {
	return &Server{Cfg: cfg, Documents: docs, Generate: gen, Health: health}
}

// multipartOverhead is the slack granted on top of the configured upload
// limit for multipart boundaries and part headers.
const multipartOverhead int64 = 10 * 1024

// allowedExt enforces the upload allowlist: .txt and .docx only.
func allowedExt(name string) bool {
	n := strings.ToLower(name)
	return strings.HasSuffix(n, ".txt") || strings.HasSuffix(n, ".docx")
}

func allowedMIMEFor(m string, filename string) bool {
	m = strings.ToLower(m)
	// For .txt files, accept any text/* because detectors misclassify rich text
	if strings.HasSuffix(strings.ToLower(filename), ".txt") && strings.HasPrefix(m, "text/") {
		return true
	}
	if strings.HasPrefix(m, "text/plain") { // allow parameters such as charset
		return true
	}
	// docx is a zip container; some detectors only get that far
	return m == "application/vnd.openxmlformats-officedocument.wordprocessingml.document" ||
		m == "application/zip"
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

func acceptsJSON(r *http.Request) bool {
	a := r.Header.Get("Accept")
	return a == "" || a == "*/*" || strings.Contains(a, "application/json")
}

// ExtractHandler handles multipart upload of the SRS document and returns
// the extracted text with its content statistics.
func (s *Server) ExtractHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsJSON(r) {
			writeJSON(w, http.StatusNotAcceptable, errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "not acceptable", Details: map[string]any{"accept": r.Header.Get("Accept")}}})
			return
		}
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
		// The body cap leaves room for multipart framing only; the file
		// itself is checked against maxBytes exactly after reading.
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "too large") {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "payload too large", Details: map[string]any{"max_mb": s.Cfg.MaxUploadMB}}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		file, header, err := r.FormFile("srs")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: srs file required", domain.ErrInvalidArgument), map[string]string{"field": "srs"})
			return
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: read upload: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		if int64(len(data)) > maxBytes {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "payload too large", Details: map[string]any{"max_mb": s.Cfg.MaxUploadMB}}})
			return
		}

		// Extension allowlist first, then content sniffing
		if !allowedExt(header.Filename) {
			writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "unsupported media type (extension)", Details: map[string]any{"filename": header.Filename}}})
			return
		}
		if m := mimetype.Detect(data); !allowedMIMEFor(m.String(), header.Filename) {
			writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "unsupported media type (content)", Details: map[string]any{"mime": m.String(), "filename": header.Filename}}})
			return
		}

		doc, err := s.Documents.Extract(r.Context(), header.Filename, data)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"text":     doc.Text,
			"filename": doc.Filename,
			"chars":    doc.Chars,
			"words":    doc.Words,
		})
	}
}

// generateEnvelope is the success shape for /v1/generate. Empty marks the
// zero-case presentation state, which is not an error.
type generateEnvelope struct {
	Status    int               `json:"status"`
	TestCases []render.TestCase `json:"test_cases"`
	ModelUsed string            `json:"model_used,omitempty"`
	Empty     bool              `json:"empty"`
}

// GenerateHandler forwards the requirements text to the backend and maps
// the outcome: 200 with display blocks, the remote status verbatim for a
// remote failure, or the local status surrogate for a transport failure.
func (s *Server) GenerateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !acceptsJSON(r) {
			writeJSON(w, http.StatusNotAcceptable, errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "not acceptable", Details: map[string]any{"accept": r.Header.Get("Accept")}}})
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, s.Cfg.MaxUploadMB*1024*1024)
		var req struct {
			SRS string `json:"srs" validate:"required"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			writeError(w, r, fmt.Errorf("%w: srs is required", domain.ErrInvalidArgument), nil)
			return
		}

		g, err := s.Generate.Generate(r.Context(), req.SRS)
		if err != nil {
			LoggerFrom(r).Warn("generation failed", "error", err)
			writeError(w, r, err, nil)
			return
		}
		if g.StatusCode != http.StatusOK {
			msg := g.ErrMessage
			if msg == "" {
				msg = "test case generation failed"
			}
			writeJSON(w, g.StatusCode, errorEnvelope{Error: apiError{Code: "BACKEND_ERROR", Message: msg, Details: map[string]any{"status": g.StatusCode}}})
			return
		}
		writeJSON(w, http.StatusOK, generateEnvelope{
			Status:    g.StatusCode,
			TestCases: render.Cases(g.TestCases),
			ModelUsed: g.ModelUsed,
			Empty:     g.Empty(),
		})
	}
}

// BackendHealthHandler reports backend reachability for the sidebar.
// Informational only; never cached, no effect on the generation flow.
func (s *Server) BackendHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		healthy, details := s.Health.CheckHealth(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{"healthy": healthy, "details": details})
	}
}

// ExportHandler streams the test cases as a timestamped plain-text download.
func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.Cfg.MaxUploadMB*1024*1024)
		var req struct {
			TestCases []string `json:"test_cases" validate:"required,min=1"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			writeError(w, r, fmt.Errorf("%w: test_cases must be non-empty", domain.ErrInvalidArgument), nil)
			return
		}
		filename := render.ExportFilename(time.Now().UTC())
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, render.ExportDocument(req.TestCases))
	}
}

// ReadyzHandler probes the backend collaborator for readiness.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 1)
		ok := true
		if s.Health != nil {
			healthy, details := s.Health.CheckHealth(ctx)
			c := check{Name: "backend", OK: healthy}
			if !healthy {
				c.Details = fmt.Sprint(details)
				ok = false
			}
			checks = append(checks, c)
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
