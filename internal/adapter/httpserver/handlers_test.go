package httpserver_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/adapter/httpserver"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/config"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/domain"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/usecase"
)

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Extract(_ domain.Context, _ string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.text != "" {
		return s.text, nil
	}
	return string(data), nil
}

type stubGenerator struct {
	gen domain.Generation
	err error
}

func (s stubGenerator) GenerateTestCases(_ domain.Context, _ string) (domain.Generation, error) {
	return s.gen, s.err
}

type stubHealth struct {
	healthy bool
	details any
}

func (s stubHealth) CheckHealth(domain.Context) (bool, any) { return s.healthy, s.details }

func newSrv(t *testing.T, ext domain.TextExtractor, gen domain.TestCaseGenerator, health domain.HealthChecker) *httpserver.Server {
	t.Helper()
	cfg := config.Config{AppEnv: "test", MaxUploadMB: 1, AdvertisedCharLimit: 5000}
	return httpserver.NewServer(cfg,
		usecase.NewDocumentService(ext),
		usecase.NewGenerateService(gen),
		health)
}

func buildMultipart(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestExtractHandler_TxtSuccess(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{})
	body, ctype := buildMultipart(t, "srs", "doc.txt", []byte("one two three"))
	r := httptest.NewRequest(http.MethodPost, "/v1/extract", body)
	r.Header.Set("Content-Type", ctype)
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	srv.ExtractHandler()(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "one two three", resp["text"])
	assert.Equal(t, "doc.txt", resp["filename"])
	assert.Equal(t, float64(13), resp["chars"])
	assert.Equal(t, float64(3), resp["words"])
}

func TestExtractHandler_406NotAcceptable(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{})
	body, ctype := buildMultipart(t, "srs", "doc.txt", []byte("x"))
	r := httptest.NewRequest(http.MethodPost, "/v1/extract", body)
	r.Header.Set("Content-Type", ctype)
	r.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	srv.ExtractHandler()(w, r)
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
}

func TestExtractHandler_NotMultipart(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{})
	r := httptest.NewRequest(http.MethodPost, "/v1/extract", strings.NewReader("{}"))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ExtractHandler()(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractHandler_MissingField(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{})
	body, ctype := buildMultipart(t, "other", "doc.txt", []byte("x"))
	r := httptest.NewRequest(http.MethodPost, "/v1/extract", body)
	r.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	srv.ExtractHandler()(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtractHandler_ExtensionRejected(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{})
	body, ctype := buildMultipart(t, "srs", "doc.pdf", []byte("%PDF-1.4"))
	r := httptest.NewRequest(http.MethodPost, "/v1/extract", body)
	r.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	srv.ExtractHandler()(w, r)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestExtractHandler_ContentSniffRejected(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{})
	// PNG magic bytes behind a .txt name
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	body, ctype := buildMultipart(t, "srs", "doc.txt", png)
	r := httptest.NewRequest(http.MethodPost, "/v1/extract", body)
	r.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	srv.ExtractHandler()(w, r)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestExtractHandler_OverLimitRejected(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{})
	// 1.5 MiB against the 1 MiB test config limit
	big := bytes.Repeat([]byte("x"), 1536*1024)
	body, ctype := buildMultipart(t, "srs", "doc.txt", big)
	r := httptest.NewRequest(http.MethodPost, "/v1/extract", body)
	r.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	srv.ExtractHandler()(w, r)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "payload too large")
}

func TestExtractHandler_AtLimitAccepted(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{})
	exact := bytes.Repeat([]byte("x"), 1024*1024)
	body, ctype := buildMultipart(t, "srs", "doc.txt", exact)
	r := httptest.NewRequest(http.MethodPost, "/v1/extract", body)
	r.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	srv.ExtractHandler()(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtractHandler_DecodeErrorMapsTo400(t *testing.T) {
	srv := newSrv(t, stubExtractor{err: domain.ErrDecode}, stubGenerator{}, stubHealth{})
	body, ctype := buildMultipart(t, "srs", "doc.txt", []byte("plain"))
	r := httptest.NewRequest(http.MethodPost, "/v1/extract", body)
	r.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	srv.ExtractHandler()(w, r)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "DECODE_FAILED")
}

func TestGenerateHandler_Success(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{gen: domain.Generation{
		StatusCode: http.StatusOK,
		TestCases:  []string{"Objective A - Step 1 - Expected X", "Just one sentence"},
		ModelUsed:  "gpt-x",
	}}, stubHealth{})
	r := httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(`{"srs":"text"}`))
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	srv.GenerateHandler()(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status    int  `json:"status"`
		Empty     bool `json:"empty"`
		ModelUsed string `json:"model_used"`
		TestCases []struct {
			ID         string `json:"id"`
			Objective  string `json:"objective"`
			Structured bool   `json:"structured"`
			Raw        string `json:"raw"`
		} `json:"test_cases"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.False(t, resp.Empty)
	assert.Equal(t, "gpt-x", resp.ModelUsed)
	require.Len(t, resp.TestCases, 2)
	assert.Equal(t, "TC-001", resp.TestCases[0].ID)
	assert.True(t, resp.TestCases[0].Structured)
	assert.Equal(t, "Objective A", resp.TestCases[0].Objective)
	assert.False(t, resp.TestCases[1].Structured)
	assert.Equal(t, "Just one sentence", resp.TestCases[1].Raw)
}

func TestGenerateHandler_EmptyResultIsNotAnError(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{gen: domain.Generation{
		StatusCode: http.StatusOK,
		TestCases:  []string{},
	}}, stubHealth{})
	r := httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(`{"srs":"text"}`))
	w := httptest.NewRecorder()
	srv.GenerateHandler()(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["empty"])
}

func TestGenerateHandler_TimeoutEnvelope(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{err: domain.ErrBackendTimeout}, stubHealth{})
	r := httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(`{"srs":"text"}`))
	w := httptest.NewRecorder()
	srv.GenerateHandler()(w, r)
	require.Equal(t, http.StatusRequestTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "BACKEND_TIMEOUT")
	assert.Contains(t, w.Body.String(), "shorter document")
}

func TestGenerateHandler_UnavailableEnvelope(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{err: domain.ErrBackendUnavailable}, stubHealth{})
	r := httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(`{"srs":"text"}`))
	w := httptest.NewRecorder()
	srv.GenerateHandler()(w, r)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "retry in a moment")
}

func TestGenerateHandler_RemoteStatusPassthrough(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{gen: domain.Generation{
		StatusCode: http.StatusInternalServerError,
		ErrMessage: "model overloaded",
	}}, stubHealth{})
	r := httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(`{"srs":"text"}`))
	w := httptest.NewRecorder()
	srv.GenerateHandler()(w, r)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "model overloaded")
}

func TestGenerateHandler_MissingSRS(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{})
	r := httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	srv.GenerateHandler()(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateHandler_InvalidJSON(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{})
	r := httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	srv.GenerateHandler()(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBackendHealthHandler(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{healthy: true, details: map[string]any{"memory": "512MB", "model_loaded": "true"}})
	w := httptest.NewRecorder()
	srv.BackendHealthHandler()(w, httptest.NewRequest(http.MethodGet, "/v1/backend-health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["healthy"])
}

func TestBackendHealthHandler_Down(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{healthy: false, details: "connection refused"})
	w := httptest.NewRecorder()
	srv.BackendHealthHandler()(w, httptest.NewRequest(http.MethodGet, "/v1/backend-health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["healthy"])
	assert.Equal(t, "connection refused", resp["details"])
}

func TestExportHandler_Download(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{})
	r := httptest.NewRequest(http.MethodPost, "/v1/export", strings.NewReader(`{"test_cases":["Case one","Case two"]}`))
	w := httptest.NewRecorder()
	srv.ExportHandler()(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1. Case one\n2. Case two", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	disposition := w.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, `attachment; filename="test_cases_`)
	assert.Contains(t, disposition, `.txt"`)
}

func TestExportHandler_EmptyListRejected(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{})
	r := httptest.NewRequest(http.MethodPost, "/v1/export", strings.NewReader(`{"test_cases":[]}`))
	w := httptest.NewRecorder()
	srv.ExportHandler()(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReadyzHandler_BackendDown(t *testing.T) {
	srv := newSrv(t, stubExtractor{}, stubGenerator{}, stubHealth{healthy: false, details: "dial tcp: refused"})
	w := httptest.NewRecorder()
	srv.ReadyzHandler()(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "backend")
}
