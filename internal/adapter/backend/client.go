// Package backend implements the HTTP client for the external test case
// generation service. The service is an opaque collaborator: this client
// performs no schema validation and passes remote statuses through verbatim,
// classifying only transport-level failures into the domain taxonomy.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/adapter/observability"
	"github.com/DHANUSH-kl/ai-test-case-generator-frontend/internal/domain"
)

// Client calls POST /generate_test_cases and GET /health on the configured
// base URL. Each call carries its own fixed timeout; there are no retries.
type Client struct {
	baseURL         string
	generateTimeout time.Duration
	healthTimeout   time.Duration
	httpClient      *http.Client
}

// New constructs a Client. Timeouts of zero fall back to conservative
// defaults matching the configuration defaults.
func New(baseURL string, generateTimeout, healthTimeout time.Duration) *Client {
	if generateTimeout <= 0 {
		generateTimeout = 120 * time.Second
	}
	if healthTimeout <= 0 {
		healthTimeout = 10 * time.Second
	}
	return &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		generateTimeout: generateTimeout,
		healthTimeout:   healthTimeout,
		httpClient:      &http.Client{},
	}
}

type generateRequest struct {
	SRS string `json:"srs"`
}

type generateResponse struct {
	TestCases []string `json:"test_cases"`
	ModelUsed string   `json:"model_used"`
	Error     string   `json:"error"`
}

// GenerateTestCases sends the requirements text and returns the remote
// status and payload. A missing test_cases field is an empty result, not an
// error. Transport failures come back wrapped in the domain sentinels.
func (c *Client) GenerateTestCases(ctx context.Context, srs string) (domain.Generation, error) {
	body, err := json.Marshal(generateRequest{SRS: srs})
	if err != nil {
		return domain.Generation{}, fmt.Errorf("%w: encode request: %v", domain.ErrInternal, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.generateTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+"/generate_test_cases", bytes.NewReader(body))
	if err != nil {
		return domain.Generation{}, fmt.Errorf("%w: build request: %v", domain.ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		cerr := classifyTransport(err)
		observability.ObserveBackendRequest("generate", outcomeFor(cerr), time.Since(start))
		return domain.Generation{}, cerr
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		cerr := classifyTransport(err)
		observability.ObserveBackendRequest("generate", outcomeFor(cerr), time.Since(start))
		return domain.Generation{}, cerr
	}

	var payload generateResponse
	if len(raw) > 0 {
		if derr := json.Unmarshal(raw, &payload); derr != nil && resp.StatusCode == http.StatusOK {
			cerr := fmt.Errorf("%w: decode response: %v", domain.ErrBackendTransport, derr)
			observability.ObserveBackendRequest("generate", observability.OutcomeTransport, time.Since(start))
			return domain.Generation{}, cerr
		}
	}

	g := domain.Generation{
		StatusCode: resp.StatusCode,
		TestCases:  payload.TestCases,
		ModelUsed:  payload.ModelUsed,
		ErrMessage: payload.Error,
		CreatedAt:  time.Now().UTC(),
	}
	observability.ObserveBackendRequest("generate", observability.OutcomeOK, time.Since(start))
	if resp.StatusCode == http.StatusOK {
		observability.ObserveGeneratedCases(len(g.TestCases))
	}
	return g, nil
}

// CheckHealth probes GET /health with its own bounded timeout. A 200 yields
// (true, parsed body); anything else yields (false, error description).
func (c *Client) CheckHealth(ctx context.Context) (bool, any) {
	callCtx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false, err.Error()
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.ObserveBackendRequest("health", outcomeFor(classifyTransport(err)), time.Since(start))
		return false, err.Error()
	}
	defer func() { _ = resp.Body.Close() }()
	observability.ObserveBackendRequest("health", observability.OutcomeOK, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return false, resp.Status
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err.Error()
	}
	var details map[string]any
	if err := json.Unmarshal(raw, &details); err != nil {
		// Reachable but not JSON; pass the raw body through for display.
		return true, string(raw)
	}
	return true, details
}

// classifyTransport maps a transport error to the domain taxonomy. Timeout
// checks run first because a deadline surfaces wrapped inside url.Error.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrBackendTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrBackendTimeout, err)
	}
	var oe *net.OpError
	if errors.As(err, &oe) {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%w: %v", domain.ErrBackendTransport, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrInternal, err)
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrBackendTimeout):
		return observability.OutcomeTimeout
	case errors.Is(err, domain.ErrBackendUnavailable):
		return observability.OutcomeUnavailable
	case errors.Is(err, domain.ErrBackendTransport):
		return observability.OutcomeTransport
	default:
		return observability.OutcomeError
	}
}
