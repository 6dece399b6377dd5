// Package common provides shared utilities used across all features
package common

import (
	"fmt"
	"net/http"
)

// HttpError represents an HTTP error with status code and message
type HttpError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s %s", e.StatusCode, e.Code, e.Message)
}

func newHTTPError(status int, code, msg, fallback string) *HttpError {
	if msg == "" {
		msg = fallback
	}
	return &HttpError{StatusCode: status, Code: code, Message: msg}
}

func HTTPErrorBadRequest(msg string) *HttpError {
	return newHTTPError(http.StatusBadRequest, "BAD_REQUEST", msg, "Bad request")
}

func HTTPErrorNotFound(msg string) *HttpError {
	return newHTTPError(http.StatusNotFound, "NOT_FOUND", msg, "Not found")
}

func HTTPErrorUnprocessable(msg string) *HttpError {
	return newHTTPError(http.StatusUnprocessableEntity, "UNPROCESSABLE", msg, "Unprocessable request")
}

func HTTPErrorInternalError(msg string) *HttpError {
	return newHTTPError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", msg, "Internal server error")
}

func HTTPErrorResourceConflict(msg string) *HttpError {
	return newHTTPError(http.StatusConflict, "RESOURCE_CONFLICT", msg, "Resource conflict")
}
