package gateway

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Config assembles the provider chain from the environment. Providers with a
// blank API key are skipped at construction, never mid-chain.
type Config struct {
	OpenRouter         OpenRouterConfig `envconfig:"OPENROUTER"`
	OpenRouterPriority int              `envconfig:"OPENROUTER_PRIORITY" default:"0"`
	OpenRouterTimeout  time.Duration    `envconfig:"OPENROUTER_TIMEOUT" default:"30s"`

	Anthropic         AnthropicConfig `envconfig:"ANTHROPIC"`
	AnthropicPriority int             `envconfig:"ANTHROPIC_PRIORITY" default:"1"`
	AnthropicTimeout  time.Duration   `envconfig:"ANTHROPIC_TIMEOUT" default:"30s"`

	Gemini         GeminiConfig  `envconfig:"GEMINI"`
	GeminiPriority int           `envconfig:"GEMINI_PRIORITY" default:"2"`
	GeminiTimeout  time.Duration `envconfig:"GEMINI_TIMEOUT" default:"30s"`

	MaxCompletionToken int     `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"800"`
	Temperature        float32 `envconfig:"TEMPERATURE" default:"0.7"`
}

// Build constructs the gateway from every configured provider. At least one
// provider must have credentials.
func (c Config) Build() (*Gateway, error) {
	var specs []Spec

	if c.OpenRouter.APIKey != "" {
		p, err := NewOpenRouterProvider(c.OpenRouter, c.MaxCompletionToken, c.Temperature)
		if err != nil {
			return nil, err
		}
		specs = append(specs, Spec{Provider: p, Priority: c.OpenRouterPriority, Timeout: c.OpenRouterTimeout})
	} else {
		log.Debug().Msg("openrouter provider skipped: no api key")
	}

	if c.Anthropic.APIKey != "" {
		p, err := NewAnthropicProvider(c.Anthropic, c.MaxCompletionToken, c.Temperature)
		if err != nil {
			return nil, err
		}
		specs = append(specs, Spec{Provider: p, Priority: c.AnthropicPriority, Timeout: c.AnthropicTimeout})
	} else {
		log.Debug().Msg("anthropic provider skipped: no api key")
	}

	if c.Gemini.APIKey != "" {
		p, err := NewGeminiProvider(c.Gemini, c.MaxCompletionToken, c.Temperature)
		if err != nil {
			return nil, err
		}
		specs = append(specs, Spec{Provider: p, Priority: c.GeminiPriority, Timeout: c.GeminiTimeout})
	} else {
		log.Debug().Msg("gemini provider skipped: no api key")
	}

	return New(specs...)
}
