package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when no user matches the given email or id.
	ErrUserNotFound = errors.New("User does not exist")
	// ErrUserAlreadyExists is returned when registering with a taken email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidResetToken is returned for an absent, expired or mismatched
	// password reset token. It deliberately does not distinguish the cases.
	ErrInvalidResetToken = errors.New("Invalid or expired password reset token")
	// ErrNoteNotFound is returned when a note is not found.
	ErrNoteNotFound = errors.New("note not found")
	// ErrLabelNotFound is returned when a label is not found.
	ErrLabelNotFound = errors.New("label not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
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

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Infrastructure errors
// collapse to a generic 500 so driver payloads never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidResetToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_RESET_TOKEN")
	case errors.Is(err, ErrNoteNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOTE_NOT_FOUND")
	case errors.Is(err, ErrLabelNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "LABEL_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
