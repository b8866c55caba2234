// Package leetcode talks to the leetcode.com GraphQL and REST endpoints.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ionut-t/leetshell/config"
	"github.com/ionut-t/leetshell/logging"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL    = "https://leetcode.com"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 4
	RateLimitInterval = time.Second
)

// Client is safe for concurrent use; requests are serialized through the
// rate limiter.
type Client struct {
	baseURL    string
	http       *http.Client
	limiter    *rate.Limiter
	maxRetries int
	backoff    func(attempt int) time.Duration

	mu    sync.RWMutex
	creds config.Credentials
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit sets the minimum spacing between requests; zero disables it.
func WithRateLimit(interval time.Duration) Option {
	return func(c *Client) {
		if interval <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

func WithRetries(maxRetries int, backoff func(attempt int) time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		if backoff != nil {
			c.backoff = backoff
		}
	}
}

// exponentialBackoff waits 1s, 2s, 4s, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}

func NewClient(creds config.Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		http:       &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(RateLimitInterval), 1),
		maxRetries: DefaultMaxRetries,
		backoff:    exponentialBackoff,
		creds:      creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetCredentials(creds config.Credentials) {
	c.mu.Lock()
	c.creds = creds
	c.mu.Unlock()
	c.http.CloseIdleConnections()
}

func (c *Client) Credentials() config.Credentials {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds
}

func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// GraphQL runs query and decodes its "data" object into out.
func (c *Client) GraphQL(ctx context.Context, query string, variables map[string]any, out any) error {
	var resp graphQLResponse
	if err := c.do(ctx, http.MethodPost, "/graphql", graphQLRequest{Query: query, Variables: variables}, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		msg := resp.Errors[0].Message
		if msg == "" {
			msg = "GraphQL error"
		}
		return &APIError{Message: msg}
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return &APIError{Message: fmt.Sprintf("decode graphql data: %v", err)}
	}
	return nil
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			logging.Debug("leetcode: retry %d for %s %s: %v", attempt, method, path, lastErr)
			if err := sleep(ctx, c.backoff(attempt-1)); err != nil {
				return err
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		resp, err := c.send(ctx, method, path, payload)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("%w: %v", ErrNetwork, err)
			continue
		}

		retry, err := c.handle(resp, out)
		if !retry {
			return err
		}
		lastErr = err
	}

	logging.Warn("leetcode: %s %s failed after %d retries: %v", method, path, c.maxRetries, lastErr)
	return lastErr
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	creds := c.Credentials()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", c.baseURL)
	req.Header.Set("x-csrftoken", creds.CSRFToken)
	req.AddCookie(&http.Cookie{Name: "LEETCODE_SESSION", Value: creds.LeetcodeSession})
	req.AddCookie(&http.Cookie{Name: "csrftoken", Value: creds.CSRFToken})

	return c.http.Do(req)
}

// handle classifies a response. retry reports whether the attempt may be
// repeated; err is the error to return if it is not (or retries run out).
func (c *Client) handle(resp *http.Response, out any) (retry bool, err error) {
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, ErrAuth
	case resp.StatusCode == http.StatusTooManyRequests:
		return true, ErrRateLimited
	case resp.StatusCode >= 500:
		return true, fmt.Errorf("%w: server error %d", ErrNetwork, resp.StatusCode)
	case resp.StatusCode >= 400:
		return false, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return false, &APIError{Status: resp.StatusCode, Message: "empty response"}
		}
		return false, &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return false, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
