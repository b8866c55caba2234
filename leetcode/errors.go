package leetcode

import (
	"errors"
	"fmt"
)

var (
	ErrAuth        = errors.New("session expired or invalid")
	ErrRateLimited = errors.New("rate limited by leetcode")
	ErrNetwork     = errors.New("network error")
)

// APIError is any other failure reported by the server: an unexpected
// status code, a GraphQL error or a malformed response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("leetcode: http %d: %s", e.Status, e.Message)
	}
	return "leetcode: " + e.Message
}
