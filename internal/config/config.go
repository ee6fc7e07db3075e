// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	SmartSuite SmartSuiteConfig `mapstructure:"smartsuite"`
	Fetcher    FetcherConfig    `mapstructure:"fetcher"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// AnthropicConfig configures the optional AI extraction path.
// An empty APIKey disables it; the deterministic extractors take over.
type AnthropicConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// SmartSuiteConfig holds credentials and identifiers for the record store.
type SmartSuiteConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Workspace string `mapstructure:"workspace"`
	TableID   string `mapstructure:"table_id"`
	Endpoint  string `mapstructure:"endpoint"`
}

// FetcherConfig governs article retrieval.
type FetcherConfig struct {
	Strategy       string `mapstructure:"strategy"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxChars       int    `mapstructure:"max_chars"`
	ReaderEndpoint string `mapstructure:"reader_endpoint"`
}

// Fetch strategies selectable via fetcher.strategy.
const (
	StrategyDirect = "direct"
	StrategyReader = "reader"
)

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ALERTRELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindCredentialKeys(v); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// bindCredentialKeys registers the keys that carry no default value.
// Unmarshal only sees environment values for keys viper already knows
// about, so every defaultless key must be bound explicitly or it is
// invisible when no config file is supplied.
func bindCredentialKeys(v *viper.Viper) error {
	keys := []string{
		"anthropic.api_key",
		"smartsuite.api_key",
		"smartsuite.workspace",
		"smartsuite.table_id",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.development", false)
	v.SetDefault("anthropic.model", "claude-3-haiku-20240307")
	v.SetDefault("anthropic.max_tokens", 300)
	v.SetDefault("smartsuite.endpoint", "https://app.smartsuite.com/api/v1")
	v.SetDefault("fetcher.strategy", StrategyDirect)
	v.SetDefault("fetcher.timeout_seconds", 15)
	v.SetDefault("fetcher.max_chars", 5000)
	v.SetDefault("fetcher.reader_endpoint", "https://r.jina.ai")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Fetcher.Strategy != StrategyDirect && c.Fetcher.Strategy != StrategyReader {
		return fmt.Errorf("fetcher.strategy must be %q or %q", StrategyDirect, StrategyReader)
	}
	if c.Fetcher.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetcher.timeout_seconds must be > 0")
	}
	if c.Fetcher.MaxChars <= 0 {
		return fmt.Errorf("fetcher.max_chars must be > 0")
	}
	if c.Fetcher.Strategy == StrategyReader && c.Fetcher.ReaderEndpoint == "" {
		return fmt.Errorf("fetcher.reader_endpoint must be set when fetcher.strategy is %q", StrategyReader)
	}
	if c.Anthropic.APIKey != "" && c.Anthropic.MaxTokens <= 0 {
		return fmt.Errorf("anthropic.max_tokens must be > 0 when anthropic.api_key is set")
	}
	return nil
}

// FetchTimeout converts the fetcher timeout config into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetcher.TimeoutSeconds) * time.Second
}
