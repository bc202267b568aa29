package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/chunkctl/internal/core/domain"
	"github.com/custodia-labs/chunkctl/internal/logger"
)

// Default configuration values.
const (
	DefaultBaseURL   = domain.DefaultBackendURL
	DefaultUserAgent = "chunkctl"

	// RequestIDHeader carries a per-request uuid for correlating backend logs.
	RequestIDHeader = "X-Request-ID"

	// maxBodySize caps how much of any response body is read.
	maxBodySize = 32 << 20
)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend origin (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds each request. Zero waits indefinitely.
	Timeout time.Duration

	// RateLimit is the maximum requests per second. Zero is unlimited.
	RateLimit float64

	// UserAgent is sent on every request (default: chunkctl).
	UserAgent string

	// HTTPClient overrides the underlying client, e.g. in tests.
	HTTPClient *http.Client
}

// Client talks to the chunk backend over HTTP.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	limiter   *RateLimiter
	newID     func() string
}

// NewClient creates a new backend client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: backend url: %v", domain.ErrInvalidInput, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: backend url must be an http(s) origin, got %q", domain.ErrInvalidInput, cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:    httpClient,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		limiter:   NewRateLimiter(cfg.RateLimit),
		newID:     uuid.NewString,
	}, nil
}

// BaseURL returns the backend origin requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends a request and returns the body of a 2xx response.
// payload, when non-nil, is sent as JSON.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	op := method + " " + path

	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := c.newID()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	logger.Debug("%s (request %s)", op, requestID)
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	logger.Debug("%s -> %d in %s (request %s)", op, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.Backoff(retryAfter(resp.Header))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, data)
	}
	return data, nil
}
