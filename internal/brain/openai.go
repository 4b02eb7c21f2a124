package brain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAzureAPIVersion is used when an Azure deployment is configured without a version.
const DefaultAzureAPIVersion = "2024-02-15-preview"

// openaiPricing maps model identifier substrings to (input, output) cost per 1M tokens.
var openaiPricing = map[string][2]float64{
	"gpt-4o-mini": {0.15, 0.60},
	"gpt-4o":      {2.50, 10.0},
	"o4-mini":     {1.10, 4.40},
}

// OpenAIOption configures an OpenAIProvider.
type OpenAIOption func(*OpenAIProvider)

// WithOpenAIBaseURL overrides the API base URL. The base includes the
// version segment, e.g. "https://api.openai.com/v1".
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(p *OpenAIProvider) {
		p.baseURL = strings.TrimRight(url, "/")
	}
}

// WithOpenAIHTTPClient sets a custom HTTP client.
func WithOpenAIHTTPClient(c *http.Client) OpenAIOption {
	return func(p *OpenAIProvider) {
		p.client = c
	}
}

// WithOpenAIDefaultModel sets the default model.
func WithOpenAIDefaultModel(model string) OpenAIOption {
	return func(p *OpenAIProvider) {
		p.defaultModel = model
	}
}

// WithAzureDeployment switches the provider to an Azure OpenAI deployment.
// Requests go to {endpoint}/openai/deployments/{deployment}/chat/completions
// and authenticate with the api-key header.
func WithAzureDeployment(endpoint, deployment, apiVersion string) OpenAIOption {
	return func(p *OpenAIProvider) {
		if apiVersion == "" {
			apiVersion = DefaultAzureAPIVersion
		}
		p.azure = &azureDeployment{
			endpoint:   strings.TrimRight(endpoint, "/"),
			deployment: deployment,
			apiVersion: apiVersion,
		}
	}
}

type azureDeployment struct {
	endpoint   string
	deployment string
	apiVersion string
}

// OpenAIProvider implements LLMProvider for the OpenAI chat completions API
// and for Azure OpenAI deployments that speak the same wire format.
type OpenAIProvider struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	defaultModel string
	azure        *azureDeployment
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(apiKey string, opts ...OpenAIOption) *OpenAIProvider {
	p := &OpenAIProvider{
		apiKey:       apiKey,
		baseURL:      "https://api.openai.com/v1",
		client:       &http.Client{Timeout: 120 * time.Second},
		defaultModel: "gpt-4o-mini",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	if p.azure != nil {
		return "azure"
	}
	return "openai"
}

// Models returns the list of supported models.
func (p *OpenAIProvider) Models() []string {
	if p.azure != nil {
		return []string{p.azure.deployment}
	}
	return []string{
		"gpt-4o-mini",
		"gpt-4o",
		"o1-mini",
		"o4-mini",
	}
}

// DefaultModel returns the model used when a request names none.
func (p *OpenAIProvider) DefaultModel() string {
	if p.azure != nil {
		return p.azure.deployment
	}
	return p.defaultModel
}

// openaiRequest is the OpenAI chat completions request body.
type openaiRequest struct {
	Model               string          `json:"model,omitempty"`
	Messages            []openaiMsg     `json:"messages"`
	Temperature         *float64        `json:"temperature,omitempty"`
	MaxTokens           *int            `json:"max_tokens,omitempty"`
	MaxCompletionTokens *int            `json:"max_completion_tokens,omitempty"`
	ResponseFormat      *responseFormat `json:"response_format,omitempty"`
}

type openaiMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type openaiChoice struct {
	Index        int       `json:"index"`
	FinishReason string    `json:"finish_reason"`
	Message      openaiMsg `json:"message"`
}

type openaiUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// openaiResponse is the OpenAI chat completions response body.
type openaiResponse struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Model   string         `json:"model"`
	Choices []openaiChoice `json:"choices"`
	Usage   openaiUsage    `json:"usage"`
}

// openaiErrorResponse is used to parse API errors.
type openaiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends a completion request to the OpenAI API.
func (p *OpenAIProvider) Complete(ctx context.Context, req LLMRequest) (*LLMResponse, error) {
	model := req.Model
	if model == "" {
		model = p.DefaultModel()
	}

	or := p.buildRequest(model, req)

	body, err := json.Marshal(or)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if p.azure != nil {
		httpReq.Header.Set("api-key", p.apiKey)
	} else {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: http request: %w", err)
	}
	defer resp.Body.Close()

	latency := time.Since(start).Milliseconds()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp openaiErrorResponse
		_ = json.Unmarshal(respBody, &errResp)
		return nil, apiError(p.Name(), resp.StatusCode, errResp.Error.Type, errResp.Error.Message, respBody)
	}

	var or2 openaiResponse
	if err := json.Unmarshal(respBody, &or2); err != nil {
		return nil, fmt.Errorf("openai: unmarshal response: %w", err)
	}

	result := &LLMResponse{
		Model:        or2.Model,
		InputTokens:  or2.Usage.PromptTokens,
		OutputTokens: or2.Usage.CompletionTokens,
		LatencyMs:    latency,
	}
	if result.Model == "" {
		result.Model = model
	}

	if len(or2.Choices) > 0 {
		choice := or2.Choices[0]
		result.Content = choice.Message.Content
		result.StopReason = choice.FinishReason
	}

	result.CostUSD = openaiCalculateCost(result.Model, or2.Usage.PromptTokens, or2.Usage.CompletionTokens)

	return result, nil
}

func (p *OpenAIProvider) endpoint() string {
	if p.azure != nil {
		return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			p.azure.endpoint, url.PathEscape(p.azure.deployment), url.QueryEscape(p.azure.apiVersion))
	}
	return p.baseURL + "/chat/completions"
}

// buildRequest maps a generic request onto the chat completions body.
// Reasoning models reject system messages and response_format, so their
// system prompt is folded into the first user message.
func (p *OpenAIProvider) buildRequest(model string, req LLMRequest) openaiRequest {
	or := openaiRequest{}
	if p.azure == nil {
		or.Model = model
	}

	reasoning := p.azure == nil && IsReasoningModel(model)
	if reasoning {
		or.Messages = foldSystemPrompt(req.Messages)
	} else {
		for _, m := range req.Messages {
			or.Messages = append(or.Messages, openaiMsg{Role: m.Role, Content: m.Content})
		}
		if req.JSONMode {
			or.ResponseFormat = &responseFormat{Type: "json_object"}
		}
	}

	if req.Temperature > 0 {
		t := req.Temperature
		or.Temperature = &t
	}

	if req.MaxTokens > 0 {
		mt := req.MaxTokens
		if p.azure == nil && useMaxCompletionTokens(model) {
			or.MaxCompletionTokens = &mt
		} else {
			or.MaxTokens = &mt
		}
	}
	return or
}

// foldSystemPrompt joins system messages into the first user message as
// "<system>\n\nUser Request: <user>".
func foldSystemPrompt(msgs []Message) []openaiMsg {
	var system []string
	var out []openaiMsg
	for _, m := range msgs {
		if m.Role == "system" {
			system = append(system, m.Content)
			continue
		}
		out = append(out, openaiMsg{Role: m.Role, Content: m.Content})
	}
	if len(system) == 0 {
		return out
	}
	prefix := strings.Join(system, "\n\n")
	for i := range out {
		if out[i].Role == "user" {
			out[i].Content = prefix + "\n\nUser Request: " + out[i].Content
			return out
		}
	}
	return append([]openaiMsg{{Role: "user", Content: prefix}}, out...)
}

// IsReasoningModel reports whether model belongs to a family that takes
// neither system messages nor a JSON response format.
func IsReasoningModel(model string) bool {
	m := strings.ToLower(model)
	return strings.HasPrefix(m, "o1-") || strings.HasPrefix(m, "o4-")
}

// useMaxCompletionTokens returns true if the model requires max_completion_tokens
// instead of max_tokens. o1 keeps the older parameter.
func useMaxCompletionTokens(model string) bool {
	m := strings.ToLower(model)
	return strings.HasPrefix(m, "o3") ||
		strings.HasPrefix(m, "o4") ||
		strings.HasPrefix(m, "gpt-4.1") ||
		strings.HasPrefix(m, "gpt-5")
}

// openaiCalculateCost computes USD cost based on model and token counts.
func openaiCalculateCost(model string, inputTokens, outputTokens int) float64 {
	pricing := openaiPricing["gpt-4o-mini"]

	// Most specific match first (gpt-4o-mini before gpt-4o).
	for _, key := range []string{"gpt-4o-mini", "gpt-4o", "o4-mini"} {
		if strings.Contains(model, key) {
			pricing = openaiPricing[key]
			break
		}
	}

	inputCost := float64(inputTokens) / 1_000_000 * pricing[0]
	outputCost := float64(outputTokens) / 1_000_000 * pricing[1]
	return inputCost + outputCost
}
