package config

import (
	"fmt"

	"github.com/nlui/studio/internal/brain"
)

// NewProvider builds the LLM client for the active provider.
func NewProvider(c Config) (brain.LLMProvider, error) {
	if err := c.credentialsError(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	switch c.Provider {
	case ProviderAzure:
		return brain.NewOpenAIProvider(c.Azure.APIKey,
			brain.WithAzureDeployment(c.Azure.Endpoint, c.Azure.Deployment, c.Azure.APIVersion)), nil
	case ProviderClaude:
		return brain.NewClaudeProvider(c.Anthropic.APIKey,
			brain.WithClaudeDefaultModel(c.Anthropic.Model)), nil
	default:
		return brain.NewOpenAIProvider(c.OpenAI.APIKey,
			brain.WithOpenAIBaseURL(c.OpenAI.BaseURL),
			brain.WithOpenAIDefaultModel(c.OpenAI.Model)), nil
	}
}
