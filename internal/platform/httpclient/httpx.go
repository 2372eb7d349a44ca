// Package httpclient is the outbound HTTP client used by schedule providers:
// timeouts, rate limiting, retry on transient statuses and proxy support.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/net/http/httpproxy"

	"openhours/internal/platform/errors"
	"openhours/internal/platform/logx"
	"openhours/internal/platform/rate"
)

// Client wraps http.Client with retry logic and rate limiting.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      logx.Logger
	config      Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout per request. Default: 10 seconds
	Timeout time.Duration

	// MaxRetries on network errors and 429/502/503/504. Default: 0
	MaxRetries int

	// RetryBackoff is the first wait; it doubles up to MaxRetryBackoff.
	RetryBackoff    time.Duration
	MaxRetryBackoff time.Duration

	// UserAgent header. Default: "openhours/1.0"
	UserAgent string

	// RateLimit in requests per second; 0 disables it.
	RateLimit      float64
	RateLimitBurst int

	// ProxyURL overrides HTTP(S)_PROXY from the environment when set.
	ProxyURL string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:         10 * time.Second,
		RetryBackoff:    500 * time.Millisecond,
		MaxRetryBackoff: 5 * time.Second,
		UserAgent:       "openhours/1.0",
		RateLimitBurst:  1,
	}
}

// New creates a new HTTP client. Zero fields take DefaultConfig values.
func New(config Config, logger logx.Logger) (*Client, error) {
	def := DefaultConfig()
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = def.RetryBackoff
	}
	if config.MaxRetryBackoff <= 0 {
		config.MaxRetryBackoff = def.MaxRetryBackoff
	}
	if config.UserAgent == "" {
		config.UserAgent = def.UserAgent
	}
	if config.RateLimitBurst <= 0 {
		config.RateLimitBurst = def.RateLimitBurst
	}

	proxy, err := proxyFunc(config.ProxyURL)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = proxy

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.New(config.RateLimit, config.RateLimitBurst)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		rateLimiter: limiter,
		logger:      logger.With("component", "httpclient"),
		config:      config,
	}, nil
}

// proxyFunc resolves proxies with x/net's httpproxy so an explicit proxy
// still honors NO_PROXY from the environment.
func proxyFunc(explicit string) (func(*http.Request) (*url.URL, error), error) {
	cfg := httpproxy.FromEnvironment()
	if explicit != "" {
		u, err := url.Parse(explicit)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy url %q", explicit)
		}
		switch u.Scheme {
		case "http", "https", "socks5":
		default:
			return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
		}
		cfg.HTTPProxy = explicit
		cfg.HTTPSProxy = explicit
	}

	resolve := cfg.ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return resolve(req.URL)
	}, nil
}

// Request performs an HTTP request with rate limiting and retries. The
// returned response has a non-retryable status; the caller closes its body.
func (c *Client) Request(ctx context.Context, method, rawURL string, headers map[string]string) (*http.Response, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.config.RetryBackoff
	policy.MaxInterval = c.config.MaxRetryBackoff
	policy.MaxElapsedTime = 0

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, policy.NextBackOff()); err != nil {
				return nil, errors.Wrap(err, "backoff interrupted")
			}
		}

		if c.rateLimiter != nil {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				return nil, errors.Wrap(err, "rate limit wait failed")
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create request for %s %s", method, rawURL)
		}
		req.Header.Set("User-Agent", c.config.UserAgent)
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		c.logger.Debug("http request", "method", method, "url", rawURL, "attempt", attempt+1)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		elapsed := time.Since(start)

		if err != nil {
			lastErr = classifyTransportError(ctx, err)
			c.logger.Warn("http request failed",
				"url", rawURL,
				"attempt", attempt+1,
				"error", err.Error(),
				"duration_ms", elapsed.Milliseconds(),
			)
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}

		c.logger.Debug("http response", "url", rawURL, "status", resp.StatusCode, "duration_ms", elapsed.Milliseconds())

		if !isRetryableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr = CheckStatus(resp)
		resp.Body.Close()
		c.logger.Warn("http retryable status", "url", rawURL, "status", resp.StatusCode, "attempt", attempt+1)
	}

	return nil, errors.Wrapf(lastErr, "request failed after %d attempts", c.config.MaxRetries+1)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) (*http.Response, error) {
	return c.Request(ctx, http.MethodGet, rawURL, headers)
}

// GetJSON is Get with an Accept: application/json header.
func (c *Client) GetJSON(ctx context.Context, rawURL string) (*http.Response, error) {
	return c.Get(ctx, rawURL, map[string]string{"Accept": "application/json"})
}

// FetchJSON performs a GET and returns the body of a 2xx response.
func (c *Client) FetchJSON(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := c.GetJSON(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if err := CheckStatus(resp); err != nil {
		resp.Body.Close()
		return nil, errors.Wrapf(err, "request to %s failed", rawURL)
	}

	return ReadBody(resp)
}

// ReadBody reads the response body and closes it.
func ReadBody(resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, errors.New("response is nil")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return body, nil
}

// CheckStatus maps a non-2xx status to a platform error sentinel.
func CheckStatus(resp *http.Response) error {
	if resp == nil {
		return errors.New("response is nil")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return errors.ErrRateLimit
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.ErrUnauthorized
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusBadGateway:
		return errors.Wrapf(errors.ErrServiceUnavailable, "HTTP %d", resp.StatusCode)
	default:
		return errors.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// classifyTransportError attaches a platform sentinel to a failed Do call.
func classifyTransportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Errorf("%w: %w", errors.ErrTimeout, err)
	}
	return errors.Errorf("%w: %w", errors.ErrConnectionFailed, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, max_retries=%d, rate_limit=%.1f/s}",
		c.config.Timeout,
		c.config.MaxRetries,
		c.config.RateLimit,
	)
}
