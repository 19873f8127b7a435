package errors

import (
	"fmt"
	"net/http"

	"github.com/hunt-wet/hunt-intel-backend/logger"
)

type ErrorType string

const (
	ValidationError      ErrorType = "VALIDATION_ERROR"
	NotFoundError        ErrorType = "NOT_FOUND"
	ConflictError        ErrorType = "CONFLICT"
	ConfigurationError   ErrorType = "CONFIGURATION_ERROR"
	DatabaseError        ErrorType = "DATABASE_ERROR"
	ServerError          ErrorType = "SERVER_ERROR"
	WeatherProviderError ErrorType = "WEATHER_PROVIDER_ERROR"
	GeocodingError       ErrorType = "GEOCODING_ERROR"
	RateLimitError       ErrorType = "RATE_LIMITED"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying error for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status code associated with the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper functions for common errors

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ValidationFailed(message string, details string) *AppError {
	return New(ValidationError, message, details)
}

// MissingCredential reports a missing external-service API key. This is fatal
// to the request and never retried.
func MissingCredential(name string) *AppError {
	return &AppError{
		Type:       ConfigurationError,
		Message:    "Service credential not configured",
		Detail:     fmt.Sprintf("%s is not set", name),
		HTTPStatus: http.StatusInternalServerError,
	}
}

func NewDatabaseError(err error) *AppError {
	// Log original error but return sanitized message
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Message:    "Database operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// RateLimitExceeded signals the fixed-window limiter tripped. retryAfter is
// the number of seconds until the window resets.
func RateLimitExceeded(message string, retryAfter int) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    message,
		Detail:     fmt.Sprintf("Retry after %d seconds", retryAfter),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// WeatherProviderFailed wraps a failed outbound call to the weather provider.
// The whole query fails; no partial results are returned (see the history
// service failure semantics).
func WeatherProviderFailed(err error) *AppError {
	return &AppError{
		Type:       WeatherProviderError,
		Message:    "Weather provider request failed",
		Detail:     err.Error(),
		HTTPStatus: http.StatusBadGateway,
		Raw:        err,
	}
}

func GeocodingFailed(query string, err error) *AppError {
	return &AppError{
		Type:       GeocodingError,
		Message:    fmt.Sprintf("Geocoding failed for %q", query),
		Detail:     err.Error(),
		HTTPStatus: http.StatusBadGateway,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return New(ServerError, message, "")
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case ConflictError:
		return http.StatusConflict
	case DatabaseError, ServerError, ConfigurationError:
		return http.StatusInternalServerError
	case WeatherProviderError, GeocodingError:
		return http.StatusBadGateway
	case RateLimitError:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
