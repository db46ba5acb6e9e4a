// Package webhook posts estimate requests and captured leads to the
// workflow automation endpoints behind the voice agent.
//
// Each call is a single attempt with a fixed timeout. Failures are reported
// as *ToolError so the agent can relay them verbatim.
package webhook

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

	"github.com/go-playground/validator/v10"

	"github.com/kcalvin/solarsizer/internal/logging"
	"github.com/kcalvin/solarsizer/internal/metrics"
)

// DefaultTimeout bounds each webhook call.
const DefaultTimeout = 10 * time.Second

// Hook names used in logs and metrics.
const (
	HookEstimate = "estimate"
	HookLead     = "lead"
)

// RequestIDHeader carries the trace ID to the workflow.
const RequestIDHeader = "X-Request-Id"

const maxBodyBytes = 1 << 20

// ErrNotConfigured is returned when the target URL is empty.
var ErrNotConfigured = errors.New("webhook url is not configured")

// ToolError is a failed webhook call. StatusCode is zero for transport
// errors.
type ToolError struct {
	StatusCode int
	Err        error
}

func (e *ToolError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("error: %v", e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Client posts payloads to the estimate and lead webhooks.
type Client struct {
	estimateURL string
	leadURL     string
	http        *http.Client
	validate    *validator.Validate
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its timeout is left as given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient returns a client. A non-positive timeout selects DefaultTimeout.
func NewClient(estimateURL, leadURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		estimateURL: estimateURL,
		leadURL:     leadURL,
		http:        &http.Client{Timeout: timeout},
		validate:    newValidator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestEstimate sends an estimate request and returns the workflow reply.
func (c *Client) RequestEstimate(ctx context.Context, req EstimateRequest) (string, error) {
	if err := c.validate.Struct(req); err != nil {
		return "", validationError(err)
	}
	return c.post(ctx, HookEstimate, c.estimateURL, req)
}

// SaveLead sends a captured lead and returns the workflow reply.
func (c *Client) SaveLead(ctx context.Context, lead Lead) (string, error) {
	if err := c.validate.Struct(lead); err != nil {
		return "", validationError(err)
	}
	return c.post(ctx, HookLead, c.leadURL, lead)
}

func (c *Client) post(ctx context.Context, hook, url string, payload any) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("%s: %w", hook, ErrNotConfigured)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding %s payload: %w", hook, err)
	}

	log := logging.ComponentLogger(*logging.FromContext(ctx), "webhook")
	traceID := logging.GetOrGenerateTraceID(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &ToolError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, traceID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveWebhook(hook, metrics.ResultNetwork, time.Since(start))
		log.Warn().Ctx(ctx).Err(err).Str("hook", hook).Str(logging.TraceIDField, traceID).Msg("webhook call failed")
		return "", &ToolError{Err: err}
	}
	defer resp.Body.Close()

	text, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	elapsed := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ObserveWebhook(hook, metrics.ResultHTTP, elapsed)
		log.Warn().Ctx(ctx).
			Str("hook", hook).
			Str(logging.TraceIDField, traceID).
			Int("status", resp.StatusCode).
			Msg("webhook returned error status")
		return "", &ToolError{StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
	if readErr != nil {
		metrics.ObserveWebhook(hook, metrics.ResultNetwork, elapsed)
		return "", &ToolError{Err: readErr}
	}

	metrics.ObserveWebhook(hook, metrics.ResultSuccess, elapsed)
	log.Debug().Ctx(ctx).
		Str("hook", hook).
		Str(logging.TraceIDField, traceID).
		Dur("duration_ms", elapsed).
		Msg("webhook call succeeded")
	return string(text), nil
}
