// Package gateway is the single chokepoint for every call to the
// store-rating backend. It attaches the bearer token, serialises bodies,
// parses JSON responses and normalises the backend's error shape.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratehub/storefront/internal/api/metrics"
)

// fallbackMessage is returned when a failing response carries no message.
const fallbackMessage = "API call failed"

// Error is a backend-reported failure: a non-2xx response whose body
// provided a message, or the generic fallback when it did not.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Client executes requests against the backend REST API. It never
// retries, caches or deduplicates in-flight calls; a failure is terminal
// for the user action that triggered it.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New builds a Client for the given base URL. No request timeout is
// configured; callers bound calls through their context if they need to.
func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     log,
	}
}

// Do executes one backend call and returns the raw JSON body on success.
// A non-nil, non-string body is serialised as JSON. A token, when present,
// is attached as a bearer credential.
func (c *Client) Do(ctx context.Context, method, path, token string, body any) (json.RawMessage, error) {
	return c.do(ctx, endpointLabel(method, path), method, path, token, body)
}

func (c *Client) do(ctx context.Context, endpoint, method, path, token string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		case []byte:
			reader = bytes.NewBuffer(b)
		default:
			data, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("gateway: encode body: %w", err)
			}
			reader = bytes.NewBuffer(data)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("gateway: read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "rejected").Inc()
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &payload)
		if payload.Message == "" {
			payload.Message = fallbackMessage
		}
		c.log.Debug().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("message", payload.Message).
			Msg("backend rejected request")
		return nil, &Error{Status: resp.StatusCode, Message: payload.Message}
	}

	metrics.BackendRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	return json.RawMessage(data), nil
}

// endpointLabel keeps raw Do calls visible in metrics without exploding
// label cardinality on path parameters.
func endpointLabel(method, path string) string {
	return method + " " + path
}
