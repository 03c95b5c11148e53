package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "mentions-api/core/errors"
)

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name            string
		input           error
		expectedStatus  int
		expectedMessage string
		expectedDetails string
	}{
		{
			name:            "ValidationError returns 400",
			input:           &coreerrors.ValidationError{Field: "name", Message: "must not be empty"},
			expectedStatus:  400,
			expectedMessage: "validation error on field 'name': must not be empty",
		},
		{
			name:            "missing search key",
			input:           &coreerrors.ConfigurationError{Setting: "TAVILY_API_KEY"},
			expectedStatus:  500,
			expectedMessage: "Server configuration error: Missing API Key",
		},
		{
			name:            "missing llm key",
			input:           fmt.Errorf("summary: %w", &coreerrors.ConfigurationError{Setting: "GROQ_API_KEY"}),
			expectedStatus:  500,
			expectedMessage: "Server configuration error: Missing Groq API Key",
		},
		{
			name:            "provider non-2xx carries body",
			input:           &coreerrors.ExternalAPIError{API: "tavily", StatusCode: 401, Message: `{"detail":"bad key"}`},
			expectedStatus:  500,
			expectedMessage: `Tavily API failed: {"detail":"bad key"}`,
		},
		{
			name:            "malformed provider body falls back",
			input:           &coreerrors.ExternalAPIError{API: "tavily", StatusCode: 200, Message: "malformed response: EOF"},
			expectedStatus:  500,
			expectedMessage: "Failed to fetch news",
			expectedDetails: "external API error from tavily: 200 - malformed response: EOF",
		},
		{
			name:            "provider non-2xx with unreadable body falls back",
			input:           &coreerrors.ExternalAPIError{API: "tavily", StatusCode: 502, Message: "malformed error response: Bad Gateway", Malformed: true},
			expectedStatus:  500,
			expectedMessage: "Failed to fetch news",
			expectedDetails: "external API error from tavily: 502 - malformed error response: Bad Gateway",
		},
		{
			name:            "transport failure carries cause",
			input:           &coreerrors.TransportError{API: "tavily", Err: errors.New("dial tcp: connection refused")},
			expectedStatus:  500,
			expectedMessage: "Failed to fetch news",
			expectedDetails: "dial tcp: connection refused",
		},
		{
			name:            "not found returns 404",
			input:           &coreerrors.NotFoundError{Resource: "subject", ID: "x"},
			expectedStatus:  404,
			expectedMessage: "subject not found: x",
		},
		{
			name:            "unknown error",
			input:           errors.New("boom"),
			expectedStatus:  500,
			expectedMessage: "Failed to fetch news",
			expectedDetails: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toAPIError(tt.input, "Failed to fetch news")

			var apiErr *APIError
			require.ErrorAs(t, result, &apiErr)
			assert.Equal(t, tt.expectedStatus, apiErr.GetStatus())
			assert.Equal(t, tt.expectedMessage, apiErr.Message)
			assert.Equal(t, tt.expectedDetails, apiErr.Details)
		})
	}
}

func TestToAPIError_Nil(t *testing.T) {
	assert.Nil(t, toAPIError(nil, "x"))
}

func TestNewError_JoinsDetails(t *testing.T) {
	err := NewError(http.StatusUnprocessableEntity, "validation failed", errors.New("a"), nil, errors.New("b"))

	assert.Equal(t, http.StatusUnprocessableEntity, err.GetStatus())
	apiErr := err.(*APIError)
	assert.Equal(t, "validation failed", apiErr.Message)
	assert.Equal(t, "a; b", apiErr.Details)
}
