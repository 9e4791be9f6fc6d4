package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file and expands ${VAR} references.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return &cfg, nil
}

// LoadAndValidate loads path (skipped when empty), applies environment
// overrides and defaults, and validates the result.
func LoadAndValidate(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// FromEnv is LoadAndValidate without a file.
func FromEnv() (*Config, error) {
	return LoadAndValidate("")
}

func (c *Config) applyEnv() error {
	if v := getenv("PRICES_ADDR"); v != "" {
		c.HTTP.Addr = v
	} else if v := getenv("PORT"); v != "" {
		c.HTTP.Addr = ":" + v
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	if v := getenv("METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("METRICS_ENABLED: %w", err)
		}
		c.Metrics.Enabled = b
	}
	if v := getenv("METRICS_TOKEN"); v != "" {
		c.Metrics.Token = v
	}

	if v := getenv("RATE_LIMIT_PER_MIN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_PER_MIN: %w", err)
		}
		c.RateLimit.Requests = n
	}

	if v := getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_BODY_BYTES: %w", err)
		}
		c.HTTP.MaxBodyBytes = n
	}

	return nil
}

func getenv(k string) string {
	return strings.TrimSpace(os.Getenv(k))
}
