package transport

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sinbum/korea-public-data-be-sub000/retry"
)

// ErrorCode classifies transport errors.
type ErrorCode int

const (
	// ErrCodeNetwork indicates a connection-level failure (refused, DNS, reset).
	ErrCodeNetwork ErrorCode = iota
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout
	// ErrCodeRateLimit indicates the upstream throttled the request (429).
	ErrCodeRateLimit
	// ErrCodeServer indicates a server-side failure (5xx).
	ErrCodeServer
	// ErrCodeAuth indicates an authentication or authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeValidation indicates a client-side request problem (other 4xx).
	ErrCodeValidation
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeNetwork:
		return "network"
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeServer:
		return "server"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is a structured transport error.
type Error struct {
	// StatusCode is the HTTP status code (0 for connection-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Retryable indicates whether the attempt may be retried.
	Retryable bool
	// RetryAfter is the upstream's retry-after hint (rate limits only).
	RetryAfter time.Duration
	// Body is the original response body, kept for diagnostics.
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("transport: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("transport: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// RetryCondition maps the error code onto the retry package's taxonomy.
func (e *Error) RetryCondition() retry.Condition {
	switch e.Code {
	case ErrCodeNetwork:
		return retry.ConditionNetworkError
	case ErrCodeTimeout:
		return retry.ConditionTimeout
	case ErrCodeServer:
		return retry.ConditionServerError
	case ErrCodeRateLimit:
		return retry.ConditionRateLimit
	default:
		return retry.ConditionOther
	}
}

// RetryAfterHint exposes the upstream retry-after hint, when present.
func (e *Error) RetryAfterHint() (time.Duration, bool) {
	if e.RetryAfter > 0 {
		return e.RetryAfter, true
	}
	return 0, false
}

// NewNetworkError creates a connection-level error.
func NewNetworkError(err error) *Error {
	return &Error{
		Code:      ErrCodeNetwork,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{
		Code:      ErrCodeTimeout,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewRateLimitError creates a rate-limit error with an optional hint.
func NewRateLimitError(body []byte, retryAfter time.Duration) *Error {
	return &Error{
		StatusCode: 429,
		Code:       ErrCodeRateLimit,
		Message:    "HTTP 429",
		Retryable:  true,
		RetryAfter: retryAfter,
		Body:       body,
	}
}

// NewServerError creates a 5xx error.
func NewServerError(statusCode int, body []byte) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeServer,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Retryable:  true,
		Body:       body,
	}
}

// NewAuthError creates a 401/403 error.
func NewAuthError(statusCode int, body []byte) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeAuth,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Retryable:  false,
		Body:       body,
	}
}

// NewValidationError creates a client-side request error.
func NewValidationError(msg string) *Error {
	return &Error{
		Code:      ErrCodeValidation,
		Message:   msg,
		Retryable: false,
	}
}

// ClassifyStatusCode converts a non-2xx status into a typed error.
// Returns nil for 2xx. retryAfter applies to 429 responses only.
func ClassifyStatusCode(statusCode int, body []byte, retryAfter time.Duration) *Error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == 401 || statusCode == 403:
		return NewAuthError(statusCode, body)
	case statusCode == 429:
		return NewRateLimitError(body, retryAfter)
	case statusCode >= 400 && statusCode < 500:
		return &Error{
			StatusCode: statusCode,
			Code:       ErrCodeValidation,
			Message:    fmt.Sprintf("HTTP %d", statusCode),
			Retryable:  false,
			Body:       body,
		}
	case statusCode >= 500:
		return NewServerError(statusCode, body)
	default:
		return &Error{
			StatusCode: statusCode,
			Code:       ErrCodeServer,
			Message:    fmt.Sprintf("HTTP %d", statusCode),
			Retryable:  false,
			Body:       body,
		}
	}
}

// ParseRetryAfter parses a Retry-After header value in seconds form.
// HTTP-date form is not used by the upstream and is ignored.
func ParseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsNetwork checks if an error is a connection-level error.
func IsNetwork(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNetwork
}

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRateLimit
}

// IsServerError checks if an error is a 5xx error.
func IsServerError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeServer
}

// IsRetryable checks if an error is marked retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
