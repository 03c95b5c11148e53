// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to the {error, details} bodies the web client expects

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	coreerrors "mentions-api/core/errors"
	"mentions-api/core/provider"
)

// APIError is the error body returned by every endpoint
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error" doc:"Human readable error"`
	Details string `json:"details,omitempty" doc:"Underlying cause, when available"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// GetStatus implements huma.StatusError
func (e *APIError) GetStatus() int {
	return e.Status
}

// NewError replaces huma.NewError so framework errors, such as request
// validation failures, share the APIError body
func NewError(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	return &APIError{
		Status:  status,
		Message: msg,
		Details: strings.Join(details, "; "),
	}
}

// toAPIError converts domain errors to HTTP errors. fallback is the message
// used for failures that have no more specific mapping.
func toAPIError(err error, fallback string) error {
	if err == nil {
		return nil
	}

	var validationErr *coreerrors.ValidationError
	if errors.As(err, &validationErr) {
		return &APIError{Status: http.StatusBadRequest, Message: validationErr.Error()}
	}

	var configErr *coreerrors.ConfigurationError
	if errors.As(err, &configErr) {
		return &APIError{Status: http.StatusInternalServerError, Message: configurationMessage(configErr.Setting)}
	}

	if coreerrors.IsNotFound(err) {
		return &APIError{Status: http.StatusNotFound, Message: err.Error()}
	}

	var apiErr *coreerrors.ExternalAPIError
	if errors.As(err, &apiErr) && apiErr.API == provider.APIName && !apiErr.Malformed && !isSuccess(apiErr.StatusCode) {
		return &APIError{
			Status:  http.StatusInternalServerError,
			Message: fmt.Sprintf("Tavily API failed: %s", apiErr.Message),
		}
	}

	var transportErr *coreerrors.TransportError
	if errors.As(err, &transportErr) && transportErr.Err != nil {
		return &APIError{Status: http.StatusInternalServerError, Message: fallback, Details: transportErr.Err.Error()}
	}

	return &APIError{Status: http.StatusInternalServerError, Message: fallback, Details: err.Error()}
}

// configurationMessage names the missing secret without revealing anything else
func configurationMessage(setting string) string {
	switch setting {
	case "GROQ_API_KEY":
		return "Server configuration error: Missing Groq API Key"
	default:
		return "Server configuration error: Missing API Key"
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// causeMessage returns the most specific description of err
func causeMessage(err error) string {
	var apiErr *coreerrors.ExternalAPIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var transportErr *coreerrors.TransportError
	if errors.As(err, &transportErr) && transportErr.Err != nil {
		return transportErr.Err.Error()
	}
	return err.Error()
}
