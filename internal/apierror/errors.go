// Package apierror holds errors that carry the HTTP status and message shown to clients.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dtroode/socialnet-server/internal/model"
)

// APIError is an error safe to show to API clients.
type APIError struct {
	HTTPCode int
	Message  string
	Err      error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// As extracts an *APIError from the chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func NewErrUserAlreadyExists(username string) *APIError {
	return &APIError{
		HTTPCode: http.StatusBadRequest,
		Message:  "User already exists",
		Err:      fmt.Errorf("username %q is taken", username),
	}
}

func NewErrInvalidCredentials() *APIError {
	return &APIError{
		HTTPCode: http.StatusUnauthorized,
		Message:  "Invalid credentials",
	}
}

func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{
		HTTPCode: http.StatusForbidden,
		Message:  "No token provided",
	}
}

// NewErrInvalidAuthorizationToken covers forged, malformed and expired tokens alike.
func NewErrInvalidAuthorizationToken(code int, err error) *APIError {
	return &APIError{
		HTTPCode: code,
		Message:  "Failed to authenticate token",
		Err:      err,
	}
}

func NewErrPostNotFound(id int64) *APIError {
	return &APIError{
		HTTPCode: http.StatusNotFound,
		Message:  "Post not found",
		Err:      fmt.Errorf("post %d: %w", id, model.ErrNotFound),
	}
}

func NewErrInvalidRequest(message string) *APIError {
	return &APIError{
		HTTPCode: http.StatusBadRequest,
		Message:  message,
	}
}

func NewErrInternalServerError(err error) *APIError {
	return &APIError{
		HTTPCode: http.StatusInternalServerError,
		Message:  "Internal server error",
		Err:      err,
	}
}
