package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	stdErr := NewValidationError("bad input")
	assert.Same(t, stdErr, Normalize(stdErr))

	wrapped := fmt.Errorf("handler: %w", NewGenAIQuotaError(nil))
	assert.Equal(t, ErrCodeGenAIQuota, Normalize(wrapped).Code)

	unknown := Normalize(fmt.Errorf("boom"))
	assert.Equal(t, ErrCodeInternal, unknown.Code)
	assert.Equal(t, "boom", unknown.Details)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationFailed, http.StatusBadRequest},
		{ErrCodeInvalidDateRange, http.StatusBadRequest},
		{ErrCodeLocationNotFound, http.StatusNotFound},
		{ErrCodeGenAIQuota, http.StatusTooManyRequests},
		{ErrCodeGenAITimeout, http.StatusGatewayTimeout},
		{ErrCodeGenAIUnavailable, http.StatusServiceUnavailable},
		{ErrCodeServiceNotConfigured, http.StatusServiceUnavailable},
		{ErrCodeWeatherUnavailable, http.StatusBadGateway},
		{ErrCodeEmailSendFailed, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("x")))
	assert.True(t, IsValidation(NewInvalidDateRangeError("2026-09-12", "2026-09-10")))
	assert.False(t, IsValidation(NewGenAITimeoutError()))
	assert.False(t, IsValidation(fmt.Errorf("boom")))
}

func TestRetryability(t *testing.T) {
	assert.False(t, NewValidationError("x").Retryable)
	assert.False(t, NewGenAIAuthError(nil).Retryable)
	assert.True(t, NewGenAITimeoutError().Retryable)
	assert.True(t, NewUpstreamError(ErrCodeWeatherUnavailable, "weather", nil).Retryable)
	assert.True(t, NewEmailSendFailedError(nil).Retryable)
}
