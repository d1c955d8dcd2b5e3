// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/expense-categorizer/internal/parsererror"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. EXPCAT_AI_MAX_RETRIES.
const EnvPrefix = "EXPCAT"

// APIKeyEnv is the environment variable holding the Gemini credential.
const APIKeyEnv = "GEMINI_API_KEY"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	AI struct {
		Model             string        `mapstructure:"model" yaml:"model"`
		MaxRetries        int           `mapstructure:"max_retries" yaml:"max_retries"`
		BaseDelay         time.Duration `mapstructure:"base_delay" yaml:"base_delay"`
		TimeoutSeconds    int           `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		RequestsPerMinute int           `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		APIKey            string        `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// NewViper returns a Viper instance with defaults, config file search paths and
// environment bindings in place. Callers may bind command-line flags on it
// before handing it to FromViper.
func NewViper() *viper.Viper {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.expense-categorizer")
	v.AddConfigPath(".expense-categorizer")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The credential keeps its conventional, unprefixed name.
	_ = v.BindEnv("ai.api_key", APIKeyEnv)

	return v
}

// FromViper reads the optional config file and decodes and validates v.
func FromViper(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.max_retries", 5)
	v.SetDefault("ai.base_delay", time.Second)
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.requests_per_minute", 0)
	v.SetDefault("ai.api_key", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return &parsererror.ValidationError{Subject: "log.level", Reason: fmt.Sprintf("unknown level %q", config.Log.Level)}
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return &parsererror.ValidationError{Subject: "log.format", Reason: fmt.Sprintf("%q must be 'text' or 'json'", config.Log.Format)}
	}

	if strings.TrimSpace(config.AI.Model) == "" {
		return &parsererror.ValidationError{Subject: "ai.model", Reason: "must not be empty"}
	}

	if config.AI.MaxRetries < 1 {
		return &parsererror.ValidationError{Subject: "ai.max_retries", Reason: fmt.Sprintf("must be at least 1, got %d", config.AI.MaxRetries)}
	}

	if config.AI.BaseDelay < 0 {
		return &parsererror.ValidationError{Subject: "ai.base_delay", Reason: fmt.Sprintf("must not be negative, got %s", config.AI.BaseDelay)}
	}

	if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
		return &parsererror.ValidationError{Subject: "ai.timeout_seconds", Reason: fmt.Sprintf("must be between 1 and 300, got %d", config.AI.TimeoutSeconds)}
	}

	if config.AI.RequestsPerMinute < 0 {
		return &parsererror.ValidationError{Subject: "ai.requests_per_minute", Reason: fmt.Sprintf("must not be negative, got %d", config.AI.RequestsPerMinute)}
	}

	return nil
}

// HasAPIKey reports whether a remote classifier credential is configured.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.AI.APIKey) != ""
}

// Timeout returns the per-request timeout for remote classification.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}
