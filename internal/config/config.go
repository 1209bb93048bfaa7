// Package config loads application settings from an optional YAML file and
// FAMILYHUB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/familyhub/internal/llm"
	"github.com/abhisek/familyhub/internal/mission"
	"github.com/abhisek/familyhub/internal/rewards"
	"github.com/abhisek/familyhub/internal/store"
)

// EnvPrefix is prepended to every environment override, with dots in the
// key replaced by underscores: FAMILYHUB_STORAGE_DB_PATH.
const EnvPrefix = "FAMILYHUB"

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Storage StorageConfig `mapstructure:"storage"`
	LLM     llm.Config    `mapstructure:"llm"`
	Rewards RewardsConfig `mapstructure:"rewards"`
	// Missions are extra definitions created by `mission seed` after the
	// built-in ones.
	Missions []mission.Definition `mapstructure:"missions"`
}

type AppConfig struct {
	// LogMode is "dev", "prod" or "off".
	LogMode  string `mapstructure:"log_mode"`
	LogLevel string `mapstructure:"log_level"`
}

type StorageConfig struct {
	// DBPath empty means the XDG data directory.
	DBPath string `mapstructure:"db_path"`
}

type RewardsConfig struct {
	// AMQPURL empty disables event publishing; the ledger is always written.
	AMQPURL  string `mapstructure:"amqp_url"`
	Exchange string `mapstructure:"exchange"`
}

// Load reads path, or config.yaml from the working directory and the
// familyhub config directory when path is empty. A missing default file is
// not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "familyhub"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Storage.DBPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.Storage.DBPath = p
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM, _ = cfg.LLM.Discover()
	}
	for i, d := range cfg.Missions {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("missions[%d] %q: %w", i, d.Title, err)
		}
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.log_mode", "dev")
	v.SetDefault("app.log_level", "warn")

	v.SetDefault("storage.db_path", "")

	v.SetDefault("rewards.amqp_url", "")
	v.SetDefault("rewards.exchange", rewards.DefaultExchange)

	// Every llm key needs a default so that environment overrides are seen
	// by Unmarshal.
	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	for name, ep := range map[string]llm.Endpoint{
		llm.ProviderAnthropic:  d.Anthropic,
		llm.ProviderOpenAI:     d.OpenAI,
		llm.ProviderGemini:     d.Gemini,
		llm.ProviderOpenRouter: d.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", ep.APIKey)
		v.SetDefault("llm."+name+".model", ep.Model)
		v.SetDefault("llm."+name+".base_url", ep.BaseURL)
	}
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
}
