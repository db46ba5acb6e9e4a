package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kcalvin/solarsizer/internal/logging"
	"github.com/kcalvin/solarsizer/internal/provider/cache"
)

// Client errors.
var (
	ErrMissingAPIKey      = errors.New("solar API key is not configured")
	ErrInvalidCoordinates = errors.New("latitude must be in [-90, 90] and longitude in [-180, 180]")
)

// maxResponseBytes caps how much of a provider response is read.
const maxResponseBytes = 4 << 20

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("solar API returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("solar API returned HTTP %d: %s", e.StatusCode, e.Body)
}

// Client fetches building insights, optionally through a file cache.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   *cache.FileStore
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCache enables response caching.
func WithCache(store *cache.FileStore) ClientOption {
	return func(c *Client) {
		c.cache = store
	}
}

// NewClient returns a client for the API rooted at baseURL.
func NewClient(baseURL, apiKey string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildingInsights returns the insights for the building closest to the
// given coordinates. Cached responses are served while fresh.
func (c *Client) BuildingInsights(ctx context.Context, lat, lng float64) (*BuildingInsights, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, ErrInvalidCoordinates
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	log := logging.FromContext(ctx)
	key := cacheKey(lat, lng)

	if c.cache != nil && c.cache.Enabled() {
		entry, err := c.cache.Get(key)
		if err == nil {
			log.Debug().Ctx(ctx).Str("cache_key", key).Msg("building insights served from cache")
			return Parse(bytes.NewReader(entry.Data))
		}
		if !errors.Is(err, cache.ErrNotFound) && !errors.Is(err, cache.ErrExpired) {
			log.Warn().Ctx(ctx).Err(err).Str("cache_key", key).Msg("ignoring unreadable cache entry")
		}
	}

	body, err := c.fetch(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	bi, err := Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if c.cache != nil && c.cache.Enabled() {
		if setErr := c.cache.Set(key, json.RawMessage(body)); setErr != nil {
			log.Warn().Ctx(ctx).Err(setErr).Msg("failed to cache building insights")
		}
	}

	return bi, nil
}

func (c *Client) fetch(ctx context.Context, lat, lng float64) ([]byte, error) {
	q := url.Values{}
	q.Set("location.latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("location.longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("key", c.apiKey)
	endpoint := c.baseURL + "/v1/buildingInsights:findClosest?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building insights request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("building insights request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading building insights: %w", err)
	}

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Int("status", resp.StatusCode).
		Dur("duration_ms", time.Since(start)).
		Msg("building insights fetched")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// cacheKey rounds coordinates to about 1 m so nearby lookups share an entry.
func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("insights:%.5f,%.5f", lat, lng)
}
