package models

import "net/http"

// APIError carries an HTTP status alongside a client-facing message.
// Handlers translate these into the JSON envelope; anything else that
// escapes the service layer becomes a generic 500.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewValidationError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

func NewAuthError(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}

func NewNotFoundError(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: message}
}

func NewServerError(message string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: message}
}
