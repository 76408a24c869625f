package util

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// StatusError is a non-2xx response from an upstream HTTP service
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, e.Status)
}

// NewStatusError builds a StatusError from a response code
func NewStatusError(code int) *StatusError {
	return &StatusError{Code: code, Status: http.StatusText(code)}
}

// Transient reports whether a failed request is worth repeating:
// 429, any 5xx, or a network error
func Transient(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "connection reset")
}

// Backoff returns the delay before the given retry attempt (1-based), doubling from base
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	return base * time.Duration(1<<(attempt-1))
}
