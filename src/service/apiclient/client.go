package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codetools/src/config"
	"codetools/src/model"
	"codetools/src/util"
)

// Client talks to a running codetools server
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryConf  config.RetryConfig
}

// NewClient creates a new client from client config
func NewClient(cfg config.ClientConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		retryConf: cfg.Retry,
	}
}

// Analyze submits code for analysis
func (c *Client) Analyze(ctx context.Context, req model.AnalyzeRequest) (*model.AnalysisResult, error) {
	util.Debug("Requesting remote analysis from %s", c.baseURL)

	var resp model.AnalysisResult
	if err := c.do(ctx, http.MethodPost, "/analyze", req, &resp); err != nil {
		util.Error("Remote analysis failed: %v", err)
		return nil, err
	}

	util.Debug("Remote analysis returned %d issues (request %s)", len(resp.Issues), resp.RequestID)
	return &resp, nil
}

// Format asks the server to normalise code
func (c *Client) Format(ctx context.Context, req model.FormatRequest) (*model.FormatResult, error) {
	var resp model.FormatResult
	if err := c.do(ctx, http.MethodPost, "/format", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Validate asks the server to syntax-check code
func (c *Client) Validate(ctx context.Context, req model.ValidateRequest) (*model.ValidationResult, error) {
	var resp model.ValidationResult
	if err := c.do(ctx, http.MethodPost, "/validate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health reports server liveness
func (c *Client) Health(ctx context.Context) (*model.HealthResponse, error) {
	var resp model.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	var lastErr error

	for attempt := 0; attempt < c.maxAttempts(); attempt++ {
		if attempt > 0 {
			delay := c.calculateBackoff(attempt)
			util.Warn("Retrying request to %s (attempt %d/%d) after %v", path, attempt+1, c.maxAttempts(), delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := c.doOnce(ctx, method, path, body, result)
		if err == nil {
			return nil
		}

		lastErr = err
		if !c.shouldRetry(err) {
			break
		}
	}

	return lastErr
}

func (c *Client) maxAttempts() int {
	if c.retryConf.MaxAttempts < 1 {
		return 1
	}
	return c.retryConf.MaxAttempts
}

func (c *Client) doOnce(ctx context.Context, method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
		var decoded model.ErrorResponse
		if json.Unmarshal(respBody, &decoded) == nil {
			apiErr.Message = decoded.Error
			apiErr.RequestID = decoded.RequestID
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	delay := float64(c.retryConf.InitialDelay)
	for i := 1; i < attempt; i++ {
		delay *= c.retryConf.BackoffFactor
	}
	if c.retryConf.MaxDelay > 0 && delay > float64(c.retryConf.MaxDelay) {
		delay = float64(c.retryConf.MaxDelay)
	}
	return time.Duration(delay)
}

func (c *Client) shouldRetry(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		for _, code := range c.retryConf.RetryOnStatus {
			if apiErr.StatusCode == code {
				return true
			}
		}
	}
	return false
}

// APIError represents an error response from the server
type APIError struct {
	StatusCode int
	Body       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Body)
}
