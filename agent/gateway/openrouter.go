package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenRouterProvider talks to any OpenAI-compatible endpoint. OpenRouter is
// the default target but a plain OpenAI base URL works the same way.
type OpenRouterProvider struct {
	client    *openaisdk.Client
	model     string
	maxTokens int64
	temp      float64
}

type OpenRouterConfig struct {
	BaseURL  string `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey   string `envconfig:"API_KEY" split_words:"true"`
	Model    string `envconfig:"MODEL" split_words:"true" default:"openai/gpt-4o-mini"`
	SiteURL  string `envconfig:"SITE_URL" split_words:"true"`
	SiteName string `envconfig:"SITE_NAME" split_words:"true"`
}

func NewOpenRouterProvider(cfg OpenRouterConfig, maxTokens int, temperature float32) (*OpenRouterProvider, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openrouter api key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("openrouter model is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.SiteURL != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.SiteURL))
	}
	if cfg.SiteName != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.SiteName))
	}

	client := openaisdk.NewClient(opts...)
	return &OpenRouterProvider{
		client:    &client,
		model:     model,
		maxTokens: int64(maxTokens),
		temp:      float64(temperature),
	}, nil
}

func (p *OpenRouterProvider) Name() string {
	return "openrouter"
}

func (p *OpenRouterProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(p.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
		MaxCompletionTokens: openaisdk.Int(p.maxTokens),
		Temperature:         openaisdk.Float(p.temp),
	})
	if err != nil {
		return "", fmt.Errorf("openrouter: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openrouter: empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
