package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/dyike/DealFlowGo/internal/config"
)

const (
	analystMaxTokens    = 4000
	classifierMaxTokens = 10
)

// Client holds the two chat models the pipeline needs: a creative analyst
// model for memo synthesis and a deterministic classifier model for short
// structured answers like ticker lookup.
type Client struct {
	analyst    model.BaseChatModel
	classifier model.BaseChatModel
}

// NewClient builds both chat models for the configured provider.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	analyst, err := newChatModel(ctx, cfg, cfg.AnalysisModel, cfg.AnalysisTemperature, analystMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis model: %w", err)
	}

	classifier, err := newChatModel(ctx, cfg, cfg.ClassifierModel, cfg.ClassifierTemperature, classifierMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier model: %w", err)
	}

	return &Client{analyst: analyst, classifier: classifier}, nil
}

func newChatModel(ctx context.Context, cfg *config.Config, modelName string, temperature float64, maxTokens int) (model.BaseChatModel, error) {
	temp := float32(temperature)

	switch cfg.LLMProvider {
	case "openai":
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:     cfg.BackendURL,
			APIKey:      cfg.OpenAIAPIKey,
			Model:       modelName,
			MaxTokens:   &maxTokens,
			Temperature: &temp,
		})
	case "deepseek":
		return deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:      cfg.DeepSeekAPIKey,
			Model:       modelName,
			MaxTokens:   maxTokens,
			Temperature: temp,
		})
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}

// Complete runs one analyst-model turn and returns the assistant content.
// Calls are attempted exactly once.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return generate(ctx, c.analyst, systemPrompt, userPrompt)
}

// Classify runs one classifier-model turn. The model is configured for short
// deterministic answers.
func (c *Client) Classify(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return generate(ctx, c.classifier, systemPrompt, userPrompt)
}

func generate(ctx context.Context, cm model.BaseChatModel, systemPrompt, userPrompt string) (string, error) {
	var messages []*schema.Message
	if systemPrompt != "" {
		messages = append(messages, schema.SystemMessage(systemPrompt))
	}
	messages = append(messages, schema.UserMessage(userPrompt))

	resp, err := cm.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if resp == nil || resp.Content == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}

	return resp.Content, nil
}
