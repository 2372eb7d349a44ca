// internal/platform/httpclient/httpx_test.go
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"openhours/internal/platform/errors"
	"openhours/internal/platform/logx"
	"openhours/internal/testutil"
)

func newTestClient(t *testing.T, cfg Config) *Client {
	t.Helper()
	c, err := New(cfg, logx.Discard())
	testutil.AssertNoError(t, err, "client")
	return c
}

func TestNew(t *testing.T) {
	t.Run("applies defaults for zero values", func(t *testing.T) {
		c := newTestClient(t, Config{})

		testutil.AssertEqual(t, c.config.Timeout, 10*time.Second, "default timeout")
		testutil.AssertEqual(t, c.config.UserAgent, "openhours/1.0", "default user agent")
		testutil.AssertTrue(t, c.rateLimiter == nil, "no limiter without rate")
	})

	t.Run("creates rate limiter when configured", func(t *testing.T) {
		c := newTestClient(t, Config{RateLimit: 5})
		testutil.AssertNotNil(t, c.rateLimiter, "limiter created")
	})

	t.Run("rejects bad proxy", func(t *testing.T) {
		_, err := New(Config{ProxyURL: "ftp://proxy:21"}, logx.Discard())
		testutil.AssertError(t, err, "unsupported scheme")

		_, err = New(Config{ProxyURL: "not a url"}, logx.Discard())
		testutil.AssertError(t, err, "no host")
	})

	t.Run("accepts http proxy", func(t *testing.T) {
		_, err := New(Config{ProxyURL: "http://127.0.0.1:8080"}, logx.Discard())
		testutil.AssertNoError(t, err, "http proxy")
	})
}

func TestFetchJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertEqual(t, r.Header.Get("User-Agent"), "openhours/1.0", "user agent sent")
		testutil.AssertEqual(t, r.Header.Get("Accept"), "application/json", "accept header")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()

	c := newTestClient(t, Config{})
	body, err := c.FetchJSON(context.Background(), server.URL)

	testutil.AssertNoError(t, err, "fetch")
	testutil.AssertEqual(t, string(body), `{"ok":true}`, "body")
}

func TestFetchJSON_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, errors.ErrNotFound},
		{http.StatusUnauthorized, errors.ErrUnauthorized},
		{http.StatusForbidden, errors.ErrUnauthorized},
		{http.StatusTooManyRequests, errors.ErrRateLimit},
		{http.StatusServiceUnavailable, errors.ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			c := newTestClient(t, Config{})
			_, err := c.FetchJSON(context.Background(), server.URL)
			testutil.AssertErrorIs(t, err, tt.want, "mapped sentinel")
		})
	}
}

func TestRequest_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	c := newTestClient(t, Config{MaxRetries: 2, RetryBackoff: time.Millisecond, MaxRetryBackoff: 5 * time.Millisecond})
	body, err := c.FetchJSON(context.Background(), server.URL)

	testutil.AssertNoError(t, err, "succeeds on third attempt")
	testutil.AssertEqual(t, string(body), `{}`, "body")
	testutil.AssertEqual(t, calls.Load(), int32(3), "three attempts")
}

func TestRequest_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := newTestClient(t, Config{MaxRetries: 1, RetryBackoff: time.Millisecond})
	_, err := c.FetchJSON(context.Background(), server.URL)

	testutil.AssertErrorIs(t, err, errors.ErrServiceUnavailable, "last status kept")
	testutil.AssertTrue(t, errors.IsTransient(err), "transient")
	testutil.AssertEqual(t, calls.Load(), int32(2), "1 + retries")
}

func TestRequest_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestClient(t, Config{MaxRetries: 3, RetryBackoff: time.Millisecond})
	_, err := c.FetchJSON(context.Background(), server.URL)

	testutil.AssertErrorIs(t, err, errors.ErrNotFound, "not found")
	testutil.AssertEqual(t, calls.Load(), int32(1), "single attempt")
}

func TestRequest_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := server.URL
	server.Close()

	c := newTestClient(t, Config{})
	_, err := c.FetchJSON(context.Background(), addr)

	testutil.AssertErrorIs(t, err, errors.ErrConnectionFailed, "connection failure")
	testutil.AssertTrue(t, errors.IsTransient(err), "transient")
}

func TestRequest_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := newTestClient(t, Config{MaxRetries: 3})
	_, err := c.FetchJSON(ctx, server.URL)

	testutil.AssertErrorIs(t, err, context.DeadlineExceeded, "deadline surfaced")
}

func TestCheckStatus_Nil(t *testing.T) {
	testutil.AssertError(t, CheckStatus(nil), "nil response")
}
