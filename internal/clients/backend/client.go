// Package backend provides the client for the Moneyball prediction API.
// Every call returns the decoded backend payload untransformed; there is no
// retry, backoff or caching.
package backend

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

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the hosted backend, including the /api base path.
	DefaultBaseURL = "https://football-moneyball-production.up.railway.app/api"

	// DefaultTimeout applies when the caller's context carries no deadline.
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 4 << 20
)

// TokenSource supplies the bearer token for the current user.
// An empty token means the request is sent unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string // backend-provided message, may be empty
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// MessageOf returns the backend-provided message carried by err, if any.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// Client is the backend API client. Calls are grouped by resource.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	timeout    time.Duration
	metrics    *Metrics
	log        zerolog.Logger

	Auth        *AuthAPI
	Matches     *MatchesAPI
	Teams       *TeamsAPI
	Predictions *PredictionsAPI
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-call timeout used when the context has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMetrics records call durations and failures.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client for the backend rooted at baseURL.
// tokens may be nil for unauthenticated use.
func NewClient(baseURL string, tokens TokenSource, log zerolog.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		timeout:    DefaultTimeout,
		log:        log.With().Str("component", "backend").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthAPI{c: c}
	c.Matches = &MatchesAPI{c: c}
	c.Teams = &TeamsAPI{c: c}
	c.Predictions = &PredictionsAPI{c: c}
	return c
}

// BaseURL returns the backend address requests are built against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request. route is the path template used for metrics labels.
func (c *Client) do(ctx context.Context, method, route, path string, body, target any) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		c.metrics.observe(method, route, status, time.Since(start), err)
	}()

	if _, hasDeadline := ctx.Deadline(); !hasDeadline && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var bodyReader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.authorize(ctx, req); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("Backend request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Dur("duration_ms", time.Since(start)).
		Msg("Backend request")

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if status < 200 || status > 299 {
		apiErr := &APIError{
			StatusCode: status,
			Method:     method,
			Path:       path,
			Message:    errorMessage(payload),
		}
		c.log.Warn().Int("status", status).Str("path", path).Str("message", apiErr.Message).Msg("Backend returned error")
		return apiErr
	}

	if target == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// authorize attaches the bearer credential when one is present.
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to read session token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// errorMessage extracts the human-readable message from an error body.
func errorMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
