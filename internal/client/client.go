package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	api "github.com/kubev2v/patchcord-planner/api/v1alpha1"
	"github.com/kubev2v/patchcord-planner/pkg/requestid"
)

// PlannerClient calls the patch-cord planner API.
type PlannerClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPlannerClient(baseURL string, timeout time.Duration) *PlannerClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &PlannerClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewPlannerClientWithHTTPClient uses httpClient as is.
func NewPlannerClientWithHTTPClient(baseURL string, httpClient *http.Client) *PlannerClient {
	return &PlannerClient{baseURL: strings.TrimSuffix(baseURL, "/"), httpClient: httpClient}
}

// APIError is returned for any non-200 answer of the server.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("planner API returned status %d: %s (request id %s)", e.StatusCode, e.Message, e.RequestID)
	}
	return fmt.Sprintf("planner API returned status %d: %s", e.StatusCode, e.Message)
}

func (c *PlannerClient) Calculate(ctx context.Context, req *api.CalculationRequest) (*api.CalculationResponse, error) {
	var resp api.CalculationResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/calculate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *PlannerClient) CalculateBatch(ctx context.Context, req *api.BatchCalculationRequest) (*api.BatchCalculationResponse, error) {
	var resp api.BatchCalculationResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/calculate/batch", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *PlannerClient) ListRacks(ctx context.Context) (*api.RackList, error) {
	var resp api.RackList
	if err := c.do(ctx, http.MethodGet, "/api/v1/racks", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *PlannerClient) Info(ctx context.Context) (*api.Info, error) {
	var resp api.Info
	if err := c.do(ctx, http.MethodGet, "/api/v1/info", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *PlannerClient) HealthCheck(ctx context.Context) error {
	var resp api.Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("planner API health check returned status %q", resp.Status)
	}
	return nil
}

func (c *PlannerClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	if id := requestid.FromContext(ctx); id != "" {
		httpReq.Header.Set(requestid.Header, id)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call planner API: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(bodyBytes))}
		var body api.Error
		if json.Unmarshal(bodyBytes, &body) == nil && body.Message != "" {
			apiErr.Message = body.Message
			apiErr.RequestID = body.RequestID
		}
		return apiErr
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
