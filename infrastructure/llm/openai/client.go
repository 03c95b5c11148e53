// ABOUTME: Summarizer backed by an OpenAI-compatible chat completion API (Groq by default)
// ABOUTME: Reads the API key per call and sends requests through the shared proxy-aware client

package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	coreerrors "mentions-api/core/errors"
	"mentions-api/core/interfaces"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint
	DefaultBaseURL = "https://api.groq.com/openai/v1/"

	// DefaultModel is the chat model used for briefings
	DefaultModel = "llama-3.3-70b-versatile"

	// APIName identifies the provider in errors
	APIName = "groq"

	systemPrompt = "You are a helpful news assistant. Summarize the following news items into a concise briefing in Chinese."
)

// Client implements interfaces.Summarizer
type Client struct {
	secrets    interfaces.Secrets
	httpClient *http.Client
	baseURL    string
	model      string
}

// NewClient creates a summarizer. httpClient may be nil to use the SDK default.
func NewClient(secrets interfaces.Secrets, httpClient *http.Client, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		secrets:    secrets,
		httpClient: httpClient,
		baseURL:    baseURL,
		model:      model,
	}
}

// Summarize asks the model for a briefing of digest
func (c *Client) Summarize(ctx context.Context, digest string) (string, error) {
	apiKey := ""
	if c.secrets != nil {
		apiKey = c.secrets.LLMAPIKey()
	}
	if apiKey == "" {
		return "", &coreerrors.ConfigurationError{Setting: "GROQ_API_KEY"}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(c.baseURL),
		option.WithMaxRetries(0),
	}
	if c.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(c.httpClient))
	}
	client := openai.NewClient(opts...)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(digest),
		},
		Model: openai.ChatModel(c.model),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &coreerrors.ExternalAPIError{
				StatusCode: apiErr.StatusCode,
				Message:    apiErr.Error(),
				API:        APIName,
			}
		}
		return "", &coreerrors.TransportError{API: APIName, Err: err}
	}

	if len(completion.Choices) == 0 {
		return "", &coreerrors.ExternalAPIError{
			StatusCode: http.StatusOK,
			Message:    "no choices in completion",
			API:        APIName,
		}
	}

	return completion.Choices[0].Message.Content, nil
}

// String describes the client for logs
func (c *Client) String() string {
	return fmt.Sprintf("%s (%s)", c.model, c.baseURL)
}
