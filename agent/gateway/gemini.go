package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// GeminiProvider calls the Gemini API through google.golang.org/genai. The
// SDK client needs a context to construct, so it is created lazily on the
// first completion.
type GeminiProvider struct {
	apiKey    string
	model     string
	maxTokens int32
	temp      float32

	mu     sync.Mutex
	client *genai.Client
}

type GeminiConfig struct {
	APIKey string `envconfig:"API_KEY" split_words:"true"`
	Model  string `envconfig:"MODEL" split_words:"true" default:"gemini-2.0-flash"`
}

func NewGeminiProvider(cfg GeminiConfig, maxTokens int, temperature float32) (*GeminiProvider, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("gemini model is required")
	}

	return &GeminiProvider{
		apiKey:    apiKey,
		model:     model,
		maxTokens: int32(maxTokens),
		temp:      temperature,
	}, nil
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) ensureClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	p.client = client
	return client, nil
}

func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	client, err := p.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	temp := p.temp
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	result, err := client.Models.GenerateContent(ctx, p.model, contents, &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: p.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if result == nil {
		return "", errors.New("gemini: empty completion response")
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini: empty completion text")
	}
	return text, nil
}
