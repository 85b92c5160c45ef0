package linear

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is returned for non-2xx responses and for GraphQL error payloads.
type Error struct {
	StatusCode int
	Code       string
	Messages   []string
}

func (e *Error) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("linear: %s (%s, HTTP %d)", msg, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("linear: %s (HTTP %d)", msg, e.StatusCode)
}

// IsRetryable determines if an error is worth retrying: rate limits and server-side failures.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == "RATELIMITED" {
			return true
		}
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "temporary failure")
}
