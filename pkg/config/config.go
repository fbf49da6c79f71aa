// Package config holds the HTTP server configuration, loaded from an
// optional YAML file and overlaid with environment variables. The pipeline
// itself never reads the environment; credentials flow from here into
// explicit Options.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hellenic-development/figma-docgen/pkg/enricher"
	"github.com/hellenic-development/figma-docgen/pkg/extractor"
)

// Config is the server configuration.
type Config struct {
	Addr        string `yaml:"addr"`
	FigmaToken  string `yaml:"figma_token"`
	DeepSeekKey string `yaml:"deepseek_key"`
	Model       string `yaml:"model"`
	MaxDepth    int    `yaml:"max_depth"`

	// Base URL overrides for the upstream APIs. Empty means production endpoints.
	FigmaBaseURL    string `yaml:"figma_base_url"`
	DeepSeekBaseURL string `yaml:"deepseek_base_url"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		Addr:     ":8080",
		Model:    enricher.DefaultModel,
		MaxDepth: extractor.DefaultMaxDepth,
	}
}

// Load reads the YAML file at path (skipped when path is empty), then applies
// environment overrides. Environment variables win over file values:
// FIGMA_ACCESS_TOKEN, DEEPSEEK_API_KEY and ADDR.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Model == "" {
		cfg.Model = enricher.DefaultModel
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = extractor.DefaultMaxDepth
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FIGMA_ACCESS_TOKEN"); v != "" {
		c.FigmaToken = v
	}
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		c.DeepSeekKey = v
	}
	if v := os.Getenv("ADDR"); v != "" {
		c.Addr = v
	}
}
