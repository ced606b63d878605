// Package errors provides standardized error handling across the request
// pipeline: validation errors, upstream-service errors and internal errors,
// each carrying a stable code and an HTTP status mapping.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Validation errors (reported back to the user with a corrective message)
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"

	// Generative-AI upstream errors
	ErrCodeGenAIUnavailable ErrorCode = "GENAI_UNAVAILABLE"
	ErrCodeGenAITimeout     ErrorCode = "GENAI_TIMEOUT"
	ErrCodeGenAIAuthFailed  ErrorCode = "GENAI_AUTH_FAILED"
	ErrCodeGenAIQuota       ErrorCode = "GENAI_QUOTA_EXCEEDED"
	ErrCodeGenAIMalformed   ErrorCode = "GENAI_MALFORMED_RESPONSE"

	// Maps / geodata upstream errors
	ErrCodeLocationNotFound ErrorCode = "LOCATION_NOT_FOUND"
	ErrCodeGeocodingFailed  ErrorCode = "GEOCODING_FAILED"
	ErrCodePlacesFailed     ErrorCode = "PLACES_SEARCH_FAILED"
	ErrCodeDirectionsFailed ErrorCode = "DIRECTIONS_FAILED"
	ErrCodeTimezoneFailed   ErrorCode = "TIMEZONE_LOOKUP_FAILED"
	ErrCodeRoadsFailed      ErrorCode = "ROADS_SNAP_FAILED"

	// Other upstream errors
	ErrCodeWeatherUnavailable ErrorCode = "WEATHER_UNAVAILABLE"
	ErrCodeCurrencyFailed     ErrorCode = "CURRENCY_LOOKUP_FAILED"
	ErrCodeEmailSendFailed    ErrorCode = "EMAIL_SEND_FAILED"

	// Service not configured (missing API key)
	ErrCodeServiceNotConfigured ErrorCode = "SERVICE_NOT_CONFIGURED"

	// Internal errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a non-retryable user-input error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidDateRangeError creates a non-retryable date-range error.
func NewInvalidDateRangeError(start, end string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidDateRange,
		Message:   "End date must not be before start date",
		Details:   fmt.Sprintf("start: %s, end: %s", start, end),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAIUnavailableError creates a retryable generation error.
func NewGenAIUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIUnavailable,
		Message:   "Generative AI service unavailable",
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAITimeoutError creates a retryable generation timeout error.
func NewGenAITimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAITimeout,
		Message:   "Generative AI request timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAIAuthError creates a non-retryable authentication error.
func NewGenAIAuthError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIAuthFailed,
		Message:   "Generative AI authentication failed",
		Details:   errDetails(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAIQuotaError creates a retryable quota error.
func NewGenAIQuotaError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIQuota,
		Message:   "Generative AI quota exceeded",
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAIMalformedError creates a non-retryable malformed-payload error.
func NewGenAIMalformedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIMalformed,
		Message:   "Generative AI returned an unusable response",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLocationNotFoundError creates a non-retryable geocoding miss.
func NewLocationNotFoundError(query string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLocationNotFound,
		Message:   "Location not found",
		Details:   fmt.Sprintf("query: %s", query),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamError creates a retryable upstream-service error for the named
// provider operation.
func NewUpstreamError(code ErrorCode, service string, err error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   fmt.Sprintf("%s request failed", service),
		Details:   errDetails(err),
		Retryable: true,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
	}
}

// NewServiceNotConfiguredError marks an endpoint whose provider key is absent.
func NewServiceNotConfiguredError(service string) *StandardError {
	return &StandardError{
		Code:      ErrCodeServiceNotConfigured,
		Message:   fmt.Sprintf("%s is not configured", service),
		Details:   "missing API key",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailSendFailedError creates a retryable delivery error.
func NewEmailSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailSendFailed,
		Message:   "Itinerary email delivery failed",
		Details:   errDetails(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure. The details stay in the logs;
// callers surface only the generic message.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal error",
		Details:   errDetails(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ==========================
// 3. Classification helpers
// ==========================

// Normalize ensures any error is a StandardError. Unknown errors become
// internal errors.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HTTPStatus maps an error code to the response status the handlers use.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidDateRange:
		return http.StatusBadRequest
	case ErrCodeLocationNotFound:
		return http.StatusNotFound
	case ErrCodeGenAIAuthFailed:
		return http.StatusBadGateway
	case ErrCodeGenAIQuota:
		return http.StatusTooManyRequests
	case ErrCodeGenAITimeout:
		return http.StatusGatewayTimeout
	case ErrCodeServiceNotConfigured, ErrCodeGenAIUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeGenAIMalformed, ErrCodeGeocodingFailed, ErrCodePlacesFailed,
		ErrCodeDirectionsFailed, ErrCodeTimezoneFailed, ErrCodeRoadsFailed,
		ErrCodeWeatherUnavailable, ErrCodeCurrencyFailed, ErrCodeEmailSendFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// IsValidation reports whether the error is a user-input problem.
func IsValidation(err error) bool {
	stdErr := Normalize(err)
	return stdErr.Code == ErrCodeValidationFailed || stdErr.Code == ErrCodeInvalidDateRange
}
