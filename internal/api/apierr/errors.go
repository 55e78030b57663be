package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/playerbase/internal/model"
	"github.com/mcoot/playerbase/internal/validator"
)

// APIError represents an API error response
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodePlayerNotFound   = "PLAYER_NOT_FOUND"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var verr *validator.Error
	if errors.As(err, &verr) {
		return &httpError{http.StatusBadRequest, APIError{CodeValidationFailed, verr.Error(), verr.Fields}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodePlayerNotFound, Message: "Player not found"}}
	case errors.Is(err, model.ErrInvalidPlayerID):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: "Player id must be a positive integer"}}
	case errors.Is(err, model.ErrInvalidRace),
		errors.Is(err, model.ErrInvalidProfession),
		errors.Is(err, model.ErrInvalidOrder),
		errors.Is(err, model.ErrInvalidPage):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: err.Error()}}
	case errors.Is(err, model.ErrValidation):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeValidationFailed, Message: err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewRateLimitedError creates a too-many-requests error
func NewRateLimitedError() error {
	return &httpError{http.StatusTooManyRequests, APIError{Code: CodeRateLimited, Message: "Rate limit exceeded"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
