// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vectool Contributors

// Package config loads vectool configuration with the standard precedence:
// flags > environment > config file > defaults.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/vectool-dev/vectool/internal/embed"
	vecerr "github.com/vectool-dev/vectool/pkg/errors"
)

// Config is the top-level vectool configuration.
type Config struct {
	Qdrant    QdrantConfig    `mapstructure:"qdrant"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
}

// QdrantConfig holds the vector store connection target. URL is required:
// there is deliberately no default endpoint baked into the source.
type QdrantConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// OpenAIConfig holds credentials for the default embedding provider. The
// API key is only required when no custom embedder is injected; the
// embedder constructor enforces that.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// EmbeddingConfig selects the embedding model and vector width.
type EmbeddingConfig struct {
	Model string `mapstructure:"model"`

	// Dimensions zero means: look the model up in the known-dimensions
	// table at load time.
	Dimensions int `mapstructure:"dimensions"`
}

// SetDefaults registers configuration defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("embedding.model", "text-embedding-3-small")
	v.SetDefault("embedding.dimensions", 0)
}

// SetupEnv wires environment variables on v. Besides the VECTOOL_ prefix,
// the conventional unprefixed variables QDRANT_URL, QDRANT_API_KEY, and
// OPENAI_API_KEY are honored so the tool drops into existing deployments.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix("VECTOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Errors from BindEnv only occur for empty keys.
	_ = v.BindEnv("qdrant.url", "VECTOOL_QDRANT_URL", "QDRANT_URL")
	_ = v.BindEnv("qdrant.api_key", "VECTOOL_QDRANT_API_KEY", "QDRANT_API_KEY")
	_ = v.BindEnv("openai.api_key", "VECTOOL_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("openai.base_url", "VECTOOL_OPENAI_BASE_URL")
}

// Load reads configuration from the given path (optional) with environment
// variable overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, vecerr.Errorf(vecerr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}

	return FromViper(v)
}

// FromViper unmarshals and validates configuration from an already
// populated viper instance (the CLI's global viper, typically).
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, vecerr.Errorf(vecerr.CodeConfigValidateInvalidValue, "unmarshalling config: %w", err)
	}

	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = embed.ModelDimensions(cfg.Embedding.Model)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, vecerr.Errorf(vecerr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors. It returns all
// validation errors found rather than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	if c.Qdrant.URL == "" {
		errs = append(errs, vecerr.New(vecerr.CodeConfigValidateInvalidValue,
			"config: qdrant.url must be set (QDRANT_URL)"))
	}

	if c.Embedding.Model == "" {
		errs = append(errs, vecerr.New(vecerr.CodeConfigValidateInvalidValue,
			"config: embedding.model must not be empty"))
	}

	if c.Embedding.Dimensions <= 0 {
		errs = append(errs, vecerr.Errorf(vecerr.CodeConfigValidateInvalidValue,
			"config: embedding.dimensions unknown for model %q; set embedding.dimensions explicitly",
			c.Embedding.Model))
	}

	return errs
}
