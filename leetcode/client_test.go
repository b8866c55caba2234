package leetcode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ionut-t/leetshell/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noBackoff(int) time.Duration { return 0 }

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(
		config.Credentials{LeetcodeSession: "sess", CSRFToken: "tok"},
		WithBaseURL(srv.URL),
		WithRateLimit(0),
		WithRetries(DefaultMaxRetries, noBackoff),
	)
}

func TestClientSendsCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.Header.Get("x-csrftoken"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		sess, err := r.Cookie("LEETCODE_SESSION")
		require.NoError(t, err)
		assert.Equal(t, "sess", sess.Value)
		csrf, err := r.Cookie("csrftoken")
		require.NoError(t, err)
		assert.Equal(t, "tok", csrf.Value)
		w.Write([]byte(`{"ok":true}`))
	})

	var out struct{ OK bool }
	require.NoError(t, c.Get(context.Background(), "/ping", &out))
	assert.True(t, out.OK)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"n":3}`))
	})

	var out struct{ N int }
	require.NoError(t, c.Get(context.Background(), "/x", &out))
	assert.Equal(t, 3, out.N)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClientErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
		calls  int32
	}{
		{"unauthorized", http.StatusUnauthorized, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrAuth) }, 1},
		{"forbidden", http.StatusForbidden, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrAuth) }, 1},
		{"rate limited", http.StatusTooManyRequests, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrRateLimited) }, DefaultMaxRetries + 1},
		{"server error", http.StatusInternalServerError, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNetwork) }, DefaultMaxRetries + 1},
		{"not found", http.StatusNotFound, func(t *testing.T, err error) {
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusNotFound, apiErr.Status)
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			})

			err := c.Get(context.Background(), "/x", nil)
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, tt.calls, calls.Load())
		})
	}
}

func TestClientTransportErrorIsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(config.Credentials{}, WithBaseURL(url), WithRateLimit(0), WithRetries(1, noBackoff))

	err := c.Get(context.Background(), "/x", nil)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClientHonoursCancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	c.backoff = func(int) time.Duration { return time.Hour }

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Get(ctx, "/x", nil)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGraphQL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/graphql", r.URL.Path)
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Variables["fail"] == true {
			w.Write([]byte(`{"errors":[{"message":"boom"}]}`))
			return
		}
		w.Write([]byte(`{"data":{"value":"hi"}}`))
	})

	var out struct{ Value string }
	require.NoError(t, c.GraphQL(context.Background(), "query{}", nil, &out))
	assert.Equal(t, "hi", out.Value)

	err := c.GraphQL(context.Background(), "query{}", map[string]any{"fail": true}, &out)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestSetCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "new", r.Header.Get("x-csrftoken"))
	})
	c.SetCredentials(config.Credentials{LeetcodeSession: "s2", CSRFToken: "new"})

	require.NoError(t, c.Get(context.Background(), "/x", nil))
	assert.Equal(t, "s2", c.Credentials().LeetcodeSession)
}

func TestValidateSession(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
		wantErr error
	}{
		{"signed in", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"userStatus":{"isSignedIn":true,"username":"alice"}}}`))
		}, "alice", nil},
		{"signed out", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"userStatus":{"isSignedIn":false}}}`))
		}, "", nil},
		{"rejected", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}, "", nil},
		{"server down", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}, "", ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			got, err := ValidateSession(context.Background(), c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessions(t *testing.T) {
	var shared *Client
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-csrftoken") == "good" {
			w.Write([]byte(`{"data":{"userStatus":{"isSignedIn":true,"username":"bob"}}}`))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	opts := []Option{WithBaseURL(srv.URL), WithRateLimit(0), WithRetries(0, noBackoff)}
	shared = NewClient(config.Credentials{}, opts...)
	s := NewSessions(shared, opts...)

	name, err := s.Validate(context.Background(), config.Credentials{LeetcodeSession: "x", CSRFToken: "bad"})
	require.NoError(t, err)
	assert.Empty(t, name)

	good := config.Credentials{LeetcodeSession: "x", CSRFToken: "good"}
	name, err = s.Validate(context.Background(), good)
	require.NoError(t, err)
	assert.Equal(t, "bob", name)
	assert.Empty(t, shared.Credentials().CSRFToken)

	s.Use(good)
	assert.Equal(t, good, shared.Credentials())
}
