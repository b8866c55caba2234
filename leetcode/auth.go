package leetcode

import (
	"context"
	"errors"

	"github.com/ionut-t/leetshell/config"
)

// ValidateSession returns the signed-in username, or "" when the server
// says the session is not valid. Transport failures are returned so the
// caller can decide whether to trust saved credentials.
func ValidateSession(ctx context.Context, client *Client) (string, error) {
	var data struct {
		UserStatus struct {
			IsSignedIn bool   `json:"isSignedIn"`
			Username   string `json:"username"`
		} `json:"userStatus"`
	}
	err := client.GraphQL(ctx, userStatusQuery, nil, &data)
	if errors.Is(err, ErrAuth) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !data.UserStatus.IsSignedIn {
		return "", nil
	}
	return data.UserStatus.Username, nil
}

// Sessions checks candidate credentials with a throwaway client and switches
// the shared client over once they are accepted.
type Sessions struct {
	client *Client
	opts   []Option
}

// NewSessions builds validators with the same options as client (base URL,
// retries) so tests and production agree.
func NewSessions(client *Client, opts ...Option) *Sessions {
	return &Sessions{client: client, opts: opts}
}

func (s *Sessions) Validate(ctx context.Context, creds config.Credentials) (string, error) {
	c := NewClient(creds, s.opts...)
	defer c.Close()
	return ValidateSession(ctx, c)
}

func (s *Sessions) Use(creds config.Credentials) {
	s.client.SetCredentials(creds)
}
