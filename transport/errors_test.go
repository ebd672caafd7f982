package transport

import (
	"errors"
	"testing"
	"time"

	"github.com/sinbum/korea-public-data-be-sub000/retry"
)

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		wantNil   bool
		wantCode  ErrorCode
		retryable bool
	}{
		{200, true, 0, false},
		{204, true, 0, false},
		{400, false, ErrCodeValidation, false},
		{401, false, ErrCodeAuth, false},
		{403, false, ErrCodeAuth, false},
		{404, false, ErrCodeValidation, false},
		{429, false, ErrCodeRateLimit, true},
		{500, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
	}
	for _, tt := range tests {
		err := ClassifyStatusCode(tt.status, nil, 0)
		if tt.wantNil {
			if err != nil {
				t.Errorf("status %d: expected nil, got %v", tt.status, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("status %d: expected error", tt.status)
			continue
		}
		if err.Code != tt.wantCode {
			t.Errorf("status %d: expected code %s, got %s", tt.status, tt.wantCode, err.Code)
		}
		if err.Retryable != tt.retryable {
			t.Errorf("status %d: expected retryable=%v", tt.status, tt.retryable)
		}
		if err.StatusCode != tt.status {
			t.Errorf("status %d: expected status carried, got %d", tt.status, err.StatusCode)
		}
	}
}

func TestError_RetryCondition(t *testing.T) {
	tests := []struct {
		err  error
		want retry.Condition
	}{
		{NewNetworkError(errors.New("refused")), retry.ConditionNetworkError},
		{NewTimeoutError(errors.New("deadline")), retry.ConditionTimeout},
		{NewServerError(502, nil), retry.ConditionServerError},
		{NewRateLimitError(nil, 0), retry.ConditionRateLimit},
		{NewValidationError("bad request"), retry.ConditionOther},
	}
	for _, tt := range tests {
		if got := retry.ConditionOf(tt.err); got != tt.want {
			t.Errorf("%v: expected %s, got %s", tt.err, tt.want, got)
		}
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 0},
		{"5", 5 * time.Second},
		{"0", 0},
		{"-3", 0},
		{"not-a-number", 0},
		{"Wed, 21 Oct 2026 07:28:00 GMT", 0},
	}
	for _, tt := range tests {
		if got := ParseRetryAfter(tt.value); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.value, tt.want, got)
		}
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewNetworkError(inner)
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to reach the cause")
	}
}
