// internal/adapters/genai/client.go
package genai

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

	"gotravel/internal/common/metrics"
)

var (
	ErrNotConfigured = errors.New("GENAI_NOT_CONFIGURED")
	ErrTimeout       = errors.New("GENAI_TIMEOUT")
	ErrAuth          = errors.New("GENAI_AUTH_FAILED")
	ErrQuota         = errors.New("GENAI_QUOTA_EXCEEDED")
	ErrMalformed     = errors.New("GENAI_MALFORMED_RESPONSE")
	ErrUnavailable   = errors.New("GENAI_UNAVAILABLE")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	FallbackModel   string
	Timeout         time.Duration
	MaxRetries      int
	Temperature     float64
	MaxOutputTokens int
}

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	config *Config
	client *http.Client
	logger Logger
}

func NewClient(config *Config, log Logger) *Client {
	return &Client{
		config: config,
		client: &http.Client{
			// No client timeout - rely only on the request context
		},
		logger: log.With(map[string]interface{}{
			"adapter": "genai",
		}),
	}
}

// Available reports whether the adapter has an API key.
func (c *Client) Available() bool {
	return c.config.APIKey != ""
}

// Model returns the configured primary model name.
func (c *Client) Model() string {
	return c.config.Model
}

// GenerateOptions tune one generation call.
type GenerateOptions struct {
	// JSONResponse asks the model for application/json output.
	JSONResponse bool
}

// request/response shapes of the generateContent REST surface.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateContent sends the prompt and returns the model's text. Retries
// transient failures with exponential backoff inside the context deadline;
// tries the fallback model once when the primary model is unknown.
func (c *Client) GenerateContent(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if !c.Available() {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	start := time.Now()
	text, err := c.generate(ctx, c.config.Model, prompt, opts)
	if errors.Is(err, errModelNotFound) && c.config.FallbackModel != "" {
		c.logger.Warn("primary model not found, trying fallback", map[string]interface{}{
			"model":    c.config.Model,
			"fallback": c.config.FallbackModel,
		})
		text, err = c.generate(ctx, c.config.FallbackModel, prompt, opts)
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("gemini", "generate_content", outcome).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues("gemini", "generate_content").Observe(time.Since(start).Seconds())

	if errors.Is(err, errModelNotFound) {
		return "", fmt.Errorf("%w: model %s not found", ErrUnavailable, c.config.Model)
	}
	return text, err
}

var errModelNotFound = errors.New("model not found")

func (c *Client) generate(ctx context.Context, model, prompt string, opts GenerateOptions) (string, error) {
	genCfg := &generationConfig{
		Temperature:     c.config.Temperature,
		MaxOutputTokens: c.config.MaxOutputTokens,
	}
	if opts.JSONResponse {
		genCfg.ResponseMimeType = "application/json"
	}

	body, _ := json.Marshal(generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: genCfg,
	})

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.config.BaseURL, model, c.config.APIKey)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ErrTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, lastErr = c.client.Do(req)
		if lastErr == nil {
			switch {
			case resp.StatusCode == http.StatusOK:
				return c.decode(resp)
			case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
				drain(resp)
				return "", fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode)
			case resp.StatusCode == http.StatusNotFound:
				drain(resp)
				return "", errModelNotFound
			case resp.StatusCode == http.StatusTooManyRequests:
				drain(resp)
				lastErr = ErrQuota
			default:
				drain(resp)
				lastErr = fmt.Errorf("status %d", resp.StatusCode)
			}
			resp = nil
		}

		if ctx.Err() != nil {
			return "", ErrTimeout
		}
	}

	if ctx.Err() == context.DeadlineExceeded {
		return "", ErrTimeout
	}
	if errors.Is(lastErr, ErrQuota) {
		return "", ErrQuota
	}
	return "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (c *Client) decode(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	var apiResponse generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrMalformed, err)
	}

	if apiResponse.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, apiResponse.Error.Message)
	}
	if len(apiResponse.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrMalformed)
	}

	var sb strings.Builder
	for _, p := range apiResponse.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty candidate text", ErrMalformed)
	}

	c.logger.Info("generation completed", map[string]interface{}{
		"chars":        len(text),
		"finishReason": apiResponse.Candidates[0].FinishReason,
	})

	return text, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
