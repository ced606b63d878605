// internal/adapters/googlemaps/client.go
package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gotravel/internal/common/httpx"
	"gotravel/internal/common/metrics"
)

var (
	ErrNotConfigured = errors.New("MAPS_NOT_CONFIGURED")
	ErrZeroResults   = errors.New("MAPS_ZERO_RESULTS")
	ErrRequestDenied = errors.New("MAPS_REQUEST_DENIED")
	ErrQuota         = errors.New("MAPS_QUOTA_EXCEEDED")
	ErrUpstream      = errors.New("MAPS_UPSTREAM_FAILED")
)

// Logger interface definition
type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Config struct {
	APIKey           string
	BaseURL          string
	RoadsBaseURL     string
	StaticMapBaseURL string
	Timeout          time.Duration
}

// Client is the shared keyed client behind the Google Maps Platform
// adapters (geocoding, places, directions, time zone, roads, static maps).
type Client struct {
	config *Config
	http   *httpx.Client
	logger Logger
}

func NewClient(config *Config, log Logger) *Client {
	return &Client{
		config: config,
		http:   httpx.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"adapter": "googlemaps",
		}),
	}
}

// Available reports whether the adapter has an API key.
func (c *Client) Available() bool {
	return c.config.APIKey != ""
}

// makeRequest performs a keyed GET against the given base URL and decodes
// the JSON body into out. The Google "status" envelope field is checked by
// the individual operations since not every endpoint carries one.
func (c *Client) makeRequest(ctx context.Context, base, endpoint, operation string, params url.Values, out interface{}) error {
	if !c.Available() {
		return ErrNotConfigured
	}

	params.Set("key", c.config.APIKey)
	reqURL := fmt.Sprintf("%s/%s?%s", strings.TrimRight(base, "/"), endpoint, params.Encode())

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	start := time.Now()
	resp, err := c.http.DoWithContext(ctx, req)
	metrics.UpstreamRequestDuration.WithLabelValues("googlemaps", operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("googlemaps", operation, "error").Inc()
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues("googlemaps", operation, "error").Inc()
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("googlemaps", operation, "error").Inc()
		return fmt.Errorf("%w: decode error: %v", ErrUpstream, err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("googlemaps", operation, "success").Inc()
	return nil
}

// checkStatus maps the Google response envelope status to adapter errors.
func checkStatus(status string) error {
	switch status {
	case "OK":
		return nil
	case "ZERO_RESULTS":
		return ErrZeroResults
	case "REQUEST_DENIED":
		return ErrRequestDenied
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT", "RESOURCE_EXHAUSTED":
		return ErrQuota
	default:
		return fmt.Errorf("%w: status %s", ErrUpstream, status)
	}
}

func latLng(lat, lng float64) string {
	return fmt.Sprintf("%f,%f", lat, lng)
}
