package brain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// claudePricing maps model family to (input, output) cost per 1M tokens in USD.
var claudePricing = map[string][2]float64{
	"haiku":  {0.80, 4.0},
	"sonnet": {3.0, 15.0},
	"opus":   {15.0, 75.0},
}

// ClaudeOption configures a ClaudeProvider.
type ClaudeOption func(*ClaudeProvider)

// WithClaudeBaseURL overrides the API base URL (useful for testing).
func WithClaudeBaseURL(url string) ClaudeOption {
	return func(p *ClaudeProvider) {
		p.baseURL = strings.TrimRight(url, "/")
	}
}

// WithClaudeHTTPClient sets a custom HTTP client.
func WithClaudeHTTPClient(c *http.Client) ClaudeOption {
	return func(p *ClaudeProvider) {
		p.client = c
	}
}

// WithClaudeDefaultModel sets the default model when none is specified in the request.
func WithClaudeDefaultModel(model string) ClaudeOption {
	return func(p *ClaudeProvider) {
		p.defaultModel = model
	}
}

// ClaudeProvider implements LLMProvider for the Anthropic Messages API.
type ClaudeProvider struct {
	apiKey       string
	baseURL      string
	client       *http.Client
	defaultModel string
}

// NewClaudeProvider creates a new Claude provider.
func NewClaudeProvider(apiKey string, opts ...ClaudeOption) *ClaudeProvider {
	p := &ClaudeProvider{
		apiKey:       apiKey,
		baseURL:      "https://api.anthropic.com",
		client:       &http.Client{Timeout: 120 * time.Second},
		defaultModel: "claude-sonnet-4-20250514",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name.
func (p *ClaudeProvider) Name() string { return "claude" }

// DefaultModel returns the model used when a request names none.
func (p *ClaudeProvider) DefaultModel() string { return p.defaultModel }

// Models returns the list of supported models.
func (p *ClaudeProvider) Models() []string {
	return []string{
		"claude-3-5-haiku-20241022",
		"claude-sonnet-4-20250514",
		"claude-opus-4-20250514",
	}
}

type claudeRequest struct {
	Model       string      `json:"model"`
	MaxTokens   int         `json:"max_tokens"`
	Messages    []claudeMsg `json:"messages"`
	System      string      `json:"system,omitempty"`
	Temperature *float64    `json:"temperature,omitempty"`
}

type claudeMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type claudeUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type claudeResponse struct {
	ID         string        `json:"id"`
	Type       string        `json:"type"`
	Role       string        `json:"role"`
	Model      string        `json:"model"`
	Content    []claudeBlock `json:"content"`
	StopReason string        `json:"stop_reason"`
	Usage      claudeUsage   `json:"usage"`
}

type claudeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// jsonPrefill is the assistant turn used to pin JSON output; the Messages
// API has no response_format switch.
const jsonPrefill = "{"

// Complete sends a completion request to the Claude API.
func (p *ClaudeProvider) Complete(ctx context.Context, req LLMRequest) (*LLMResponse, error) {
	model := req.Model
	if model == "" {
		model = p.defaultModel
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	// The system prompt travels outside the message list.
	var system []string
	var msgs []claudeMsg
	for _, m := range req.Messages {
		if m.Role == "system" {
			system = append(system, m.Content)
		} else {
			msgs = append(msgs, claudeMsg{Role: m.Role, Content: m.Content})
		}
	}
	if req.JSONMode {
		msgs = append(msgs, claudeMsg{Role: "assistant", Content: jsonPrefill})
	}

	cr := claudeRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  msgs,
		System:    strings.Join(system, "\n\n"),
	}

	if req.Temperature > 0 {
		t := req.Temperature
		cr.Temperature = &t
	}

	body, err := json.Marshal(cr)
	if err != nil {
		return nil, fmt.Errorf("claude: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("claude: create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("claude: http request: %w", err)
	}
	defer resp.Body.Close()

	latency := time.Since(start).Milliseconds()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("claude: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp claudeErrorResponse
		_ = json.Unmarshal(respBody, &errResp)
		return nil, apiError(p.Name(), resp.StatusCode, errResp.Error.Type, errResp.Error.Message, respBody)
	}

	var cr2 claudeResponse
	if err := json.Unmarshal(respBody, &cr2); err != nil {
		return nil, fmt.Errorf("claude: unmarshal response: %w", err)
	}

	result := &LLMResponse{
		Model:        cr2.Model,
		InputTokens:  cr2.Usage.InputTokens,
		OutputTokens: cr2.Usage.OutputTokens,
		LatencyMs:    latency,
		StopReason:   cr2.StopReason,
	}

	var text strings.Builder
	if req.JSONMode {
		text.WriteString(jsonPrefill)
	}
	for _, block := range cr2.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	result.Content = text.String()

	result.CostUSD = claudeCalculateCost(cr2.Model, cr2.Usage.InputTokens, cr2.Usage.OutputTokens)

	return result, nil
}

// claudeCalculateCost computes USD cost based on model and token counts.
func claudeCalculateCost(model string, inputTokens, outputTokens int) float64 {
	pricing := claudePricing["sonnet"]
	for _, family := range []string{"haiku", "sonnet", "opus"} {
		if strings.Contains(model, family) {
			pricing = claudePricing[family]
			break
		}
	}

	inputCost := float64(inputTokens) / 1_000_000 * pricing[0]
	outputCost := float64(outputTokens) / 1_000_000 * pricing[1]
	return inputCost + outputCost
}
