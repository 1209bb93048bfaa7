package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures a provider. Field tags match the `llm`
// section of the application config file.
type Config struct {
	// Provider is one of the Provider* constants. Empty disables hint
	// authoring.
	Provider string `mapstructure:"provider"`

	Anthropic  Endpoint    `mapstructure:"anthropic"`
	OpenAI     Endpoint    `mapstructure:"openai"`
	Gemini     Endpoint    `mapstructure:"gemini"`
	OpenRouter Endpoint    `mapstructure:"openrouter"`
	Retry      RetryConfig `mapstructure:"retry"`

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Endpoint is the per-provider credential and model selection. BaseURL is
// only honoured by the OpenAI-compatible providers.
type Endpoint struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// modelAliases maps short names to provider model IDs. Unknown names are
// passed through unchanged.
var modelAliases = map[string]string{
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"claude-sonnet": "claude-sonnet-4-20250514",
	"gemini-flash":  "gemini-2.0-flash",
	"gemini-pro":    "gemini-2.0-pro",
}

func resolveModel(name string) string {
	if id, ok := modelAliases[name]; ok {
		return id
	}
	return name
}

// DefaultConfig leaves Provider empty; callers opt in.
func DefaultConfig() Config {
	return Config{
		Anthropic:  Endpoint{Model: "claude-haiku"},
		OpenAI:     Endpoint{Model: "gpt-4o-mini"},
		Gemini:     Endpoint{Model: "gemini-flash"},
		OpenRouter: Endpoint{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// Discover fills in the first provider whose conventional API key variable
// is set, for use when the config file names none.
func (c Config) Discover() (Config, bool) {
	probes := []struct {
		env      string
		provider string
		ep       *Endpoint
	}{
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &c.Anthropic},
		{"OPENAI_API_KEY", ProviderOpenAI, &c.OpenAI},
		{"GEMINI_API_KEY", ProviderGemini, &c.Gemini},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &c.OpenRouter},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			c.Provider = p.provider
			p.ep.APIKey = k
			return c, true
		}
	}
	return c, false
}

func (c Config) endpoint() (Endpoint, bool) {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic, true
	case ProviderOpenAI:
		return c.OpenAI, true
	case ProviderGemini:
		return c.Gemini, true
	case ProviderOpenRouter:
		return c.OpenRouter, true
	}
	return Endpoint{}, false
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case "":
		return ErrNotConfigured
	case ProviderMock:
		return nil
	}
	ep, ok := c.endpoint()
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if ep.APIKey == "" {
		return fmt.Errorf("llm.%s.api_key is required for the %s provider", c.Provider, c.Provider)
	}
	return nil
}
