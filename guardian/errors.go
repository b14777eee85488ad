package guardian

import (
	"errors"
	"fmt"
)

// Mashery fronts the content API and reports key problems in a response
// header rather than the body.
const (
	masheryErrorHeader       = "X-Mashery-Error-Code"
	masheryDeveloperInactive = "ERR_403_DEVELOPER_INACTIVE"
)

// ParseErrorCode is the status code an APIError carries when the response
// body could not be decoded. It never collides with a real HTTP status.
const ParseErrorCode = -1

// Common errors
var (
	// ErrInvalidAPIKey indicates the API key was rejected
	ErrInvalidAPIKey = errors.New("invalid or inactive API key")
	// ErrEmptyTerm indicates a search was attempted without a search term
	ErrEmptyTerm = errors.New("search term is required")
)

// APIError represents a content API error response
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("guardian API error: status %d: %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("guardian API error: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsParseFailure checks if the error came from an undecodable response body
func (e *APIError) IsParseFailure() bool {
	return e.StatusCode == ParseErrorCode
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsRateLimited checks if the error indicates the request rate was exceeded
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}
