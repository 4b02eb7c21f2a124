// Package brain holds the LLM provider clients used by the generation service.
package brain

import (
	"context"
	"fmt"
	"net/http"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// LLMRequest holds parameters for an LLM completion call.
type LLMRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`

	// JSONMode asks the provider to constrain output to a single JSON object.
	// Providers without such a switch ignore it.
	JSONMode bool `json:"json_mode,omitempty"`
}

// LLMResponse holds the response from an LLM call.
type LLMResponse struct {
	Content      string  `json:"content"`
	Model        string  `json:"model"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`
	LatencyMs    int64   `json:"latency_ms"`
	StopReason   string  `json:"stop_reason"`
}

// LLMProvider is the abstract interface for LLM backends.
type LLMProvider interface {
	Complete(ctx context.Context, req LLMRequest) (*LLMResponse, error)
	Name() string
	Models() []string
}

// APIError is returned when a provider answers with a non-200 status.
type APIError struct {
	Provider   string
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s: API error %d: %s: %s", e.Provider, e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("%s: API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// Unauthorized reports whether the provider rejected the credentials.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// RateLimited reports whether the provider throttled the request.
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// apiError builds an APIError from a failed response body. errType and
// message come from the provider's JSON error envelope when it parsed.
func apiError(provider string, status int, errType, message string, body []byte) *APIError {
	if message == "" {
		message = string(body)
	}
	return &APIError{Provider: provider, StatusCode: status, Type: errType, Message: message}
}
