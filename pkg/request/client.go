// Package request is the shared HTTP layer for all REST-style providers.
// It retries transient failures with per-provider exponential backoff and
// feeds the usage tracker.
package request

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lectorgo/pkg/tracker"
	"lectorgo/pkg/version"
)

var defaultUserAgent = fmt.Sprintf("lectorgo/%s", version.Version)

// Options tunes retry behavior. The zero value is replaced by defaults.
type Options struct {
	Retries     int
	Timeout     time.Duration
	BackoffBase time.Duration
	BackoffMax  time.Duration
}

func (o Options) withDefaults() Options {
	if o.Retries <= 0 {
		o.Retries = 3
	}
	if o.Timeout <= 0 {
		o.Timeout = 120 * time.Second
	}
	if o.BackoffBase <= 0 {
		o.BackoffBase = 500 * time.Millisecond
	}
	if o.BackoffMax <= 0 {
		o.BackoffMax = 30 * time.Second
	}
	return o
}

// Client handles HTTP requests with retries, backoff, and tracking.
type Client struct {
	httpClient *http.Client
	opts       Options
	backoff    *ProviderBackoff
	tracker    *tracker.Tracker
}

// New creates a new Client. The tracker may be nil.
func New(opts Options, t *tracker.Tracker) *Client {
	opts = opts.withDefaults()
	if t == nil {
		t = tracker.New()
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		opts:       opts,
		backoff:    NewProviderBackoff(opts.BackoffBase, opts.BackoffMax),
		tracker:    t,
	}
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, u string) ([]byte, error) {
	return c.GetWithHeaders(ctx, u, nil)
}

// GetWithHeaders performs a GET request with custom headers.
func (c *Client) GetWithHeaders(ctx context.Context, u string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, headers)
}

// Post performs a POST request with the given content type.
func (c *Client) Post(ctx context.Context, u string, body []byte, contentType string) ([]byte, error) {
	return c.PostWithHeaders(ctx, u, body, map[string]string{"Content-Type": contentType})
}

// PostWithHeaders performs a POST request with custom headers.
func (c *Client) PostWithHeaders(ctx context.Context, u string, body []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, headers)
}

// do applies headers and runs the request through the retry loop,
// recording the outcome per provider.
func (c *Client) do(req *http.Request, headers map[string]string) ([]byte, error) {
	provider := normalizeProvider(req.URL.Host)

	uaMatch := false
	for k, v := range headers {
		req.Header.Set(k, v)
		if http.CanonicalHeaderKey(k) == "User-Agent" {
			uaMatch = true
		}
	}
	if !uaMatch {
		req.Header.Set("User-Agent", defaultUserAgent)
	}

	body, err := c.executeWithBackoff(req, provider)
	if err != nil {
		c.tracker.TrackFailure(provider)
		c.backoff.RecordFailure(provider)
		return nil, err
	}
	c.tracker.TrackSuccess(provider)
	c.backoff.RecordSuccess(provider)
	return body, nil
}

// normalizeProvider folds API hosts into the provider names used in config
// and diagnostics. Unknown hosts report as themselves.
func normalizeProvider(host string) string {
	switch {
	case strings.HasSuffix(host, "generativelanguage.googleapis.com"):
		return "gemini"
	case strings.HasSuffix(host, "texttospeech.googleapis.com"):
		return "googletts"
	case strings.HasPrefix(host, "translate.google."):
		return "gtranslate"
	case host == "api.openai.com":
		return "openai"
	case host == "api.deepseek.com":
		return "deepseek"
	case host == "r.jina.ai":
		return "reader"
	case host == "localhost:11434" || host == "127.0.0.1:11434":
		return "ollama"
	}
	return host
}

// executeWithBackoff attempts the request with exponential backoff on
// retryable errors. Rewindable bodies are required for retries; callers
// always pass byte slices, so req.GetBody is available.
func (c *Client) executeWithBackoff(req *http.Request, provider string) ([]byte, error) {
	for attempt := 0; attempt < c.opts.Retries; attempt++ {
		if err := req.Context().Err(); err != nil {
			return nil, err
		}
		if attempt > 0 {
			c.tracker.TrackRetry(provider)
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("cannot rewind request body: %w", err)
				}
				req.Body = body
			}
		}
		if err := c.backoff.Wait(req.Context(), provider); err != nil {
			return nil, err
		}

		slog.Debug("network request", "provider", provider, "path", req.URL.Path, "attempt", attempt+1)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := req.Context().Err(); ctxErr != nil {
				return nil, ctxErr
			}
			slog.Warn("request failed, retrying", "url", req.URL, "attempt", attempt+1, "error", err)
			c.backoff.RecordFailure(provider)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			slog.Warn("server busy, backing off", "status", resp.StatusCode, "provider", provider, "attempt", attempt+1)
			c.backoff.RecordFailure(provider)
			continue
		}

		if resp.StatusCode >= 400 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return nil, &StatusError{Code: resp.StatusCode, Body: string(snippet)}
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read error: %w", err)
		}
		return body, nil
	}

	return nil, fmt.Errorf("%s: max retries exceeded", provider)
}

// StatusError is a non-retryable HTTP error response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error: status %d", e.Code)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Code, strings.TrimSpace(e.Body))
}

// BuildURL joins a base endpoint with query parameters.
func BuildURL(base string, params url.Values) string {
	if len(params) == 0 {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + params.Encode()
}
