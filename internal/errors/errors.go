package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrPostNotFound is returned when a referenced post does not exist.
	ErrPostNotFound = errors.New("post does not exist")
	// ErrUsernameTaken is returned when the username is already registered.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email is already taken")
	// ErrEmailRejected is returned when the email-validity checker reports the
	// address as gibberish or not webmail-capable.
	ErrEmailRejected = errors.New("email is not valid or it does not exist")
)

// ErrorResponse represents a standardized error response. Fields carries
// per-field validation messages; Error carries non-field messages.
type ErrorResponse struct {
	Error  string              `json:"error,omitempty"`
	Code   string              `json:"code,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     map[string][]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// NewFieldError creates a 400 error carrying a single field-level message.
func NewFieldError(field, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Code:       code,
		Fields:     map[string][]string{field: {message}},
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, "Post does not exist", "POST_NOT_FOUND")
	case errors.Is(err, ErrUsernameTaken):
		return NewFieldError("username", "Username is already taken.", "USERNAME_TAKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewFieldError("email", "Email is already taken.", "EMAIL_TAKEN")
	case errors.Is(err, ErrEmailRejected):
		return NewHTTPError(http.StatusBadRequest, "Email is not valid or it does not exist", "EMAIL_REJECTED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
