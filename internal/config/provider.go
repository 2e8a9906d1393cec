package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// ProviderConfig holds the settings for the remote inference endpoint.
// Remote strategies are disabled entirely when APIKey is empty; the
// registry then substitutes the default strategy for any remote name.
type ProviderConfig struct {
	APIKey         string        `env:"OPENROUTER_API_KEY"`
	BaseURL        string        `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	DefaultModel   string        `env:"OPENROUTER_MODEL" envDefault:"openai/gpt-4.1-mini"`
	RequestTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"30s"`
	MaxTokens      int           `env:"PROVIDER_MAX_TOKENS" envDefault:"200"`
}

func (c ProviderConfig) Enabled() bool {
	return c.APIKey != ""
}

func LoadProvider() (ProviderConfig, error) {
	var cfg ProviderConfig
	err := env.Parse(&cfg)
	return cfg, err
}
