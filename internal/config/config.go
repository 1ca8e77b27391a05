// Package config resolves pathwise settings from flags, PATHWISE_*
// environment variables and an optional YAML file, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/pathwise/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g. PATHWISE_LOG_LEVEL.
const EnvPrefix = "PATHWISE"

// Config is the resolved configuration.
type Config struct {
	DBPath         string
	CatalogPath    string
	AllowDowngrade bool
	Plain          bool

	Log       LogConfig
	Recommend RecommendConfig
	Snapshot  SnapshotConfig
	LLM       llm.Config

	// File is the config file that was read, empty if none.
	File string
}

type LogConfig struct {
	Level  string
	Format string
}

type RecommendConfig struct {
	Limit int
}

type SnapshotConfig struct {
	Keep int
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"db":              "db",
	"catalog":         "catalog",
	"log-level":       "log.level",
	"log-format":      "log.format",
	"plain":           "plain",
	"allow-downgrade": "allow_downgrade",
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()

	v.SetDefault("db", "")
	v.SetDefault("catalog", "")
	v.SetDefault("allow_downgrade", false)
	v.SetDefault("plain", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("recommend.limit", 5)
	v.SetDefault("snapshot.keep", 10)

	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.max_tokens", d.MaxTokens)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
}

// Load resolves the configuration. An explicit path must exist; the
// default path is read only when present. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	file, err := configFile(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := &Config{
		DBPath:         v.GetString("db"),
		CatalogPath:    v.GetString("catalog"),
		AllowDowngrade: v.GetBool("allow_downgrade"),
		Plain:          v.GetBool("plain"),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		Recommend: RecommendConfig{Limit: v.GetInt("recommend.limit")},
		Snapshot:  SnapshotConfig{Keep: v.GetInt("snapshot.keep")},
		LLM: llm.Config{
			Provider: v.GetString("llm.provider"),
			Anthropic: llm.AnthropicConfig{
				APIKey: v.GetString("llm.anthropic.api_key"),
				Model:  v.GetString("llm.anthropic.model"),
			},
			OpenAI: llm.OpenAIConfig{
				APIKey:  v.GetString("llm.openai.api_key"),
				Model:   v.GetString("llm.openai.model"),
				BaseURL: v.GetString("llm.openai.base_url"),
			},
			Gemini: llm.GeminiConfig{
				APIKey: v.GetString("llm.gemini.api_key"),
				Model:  v.GetString("llm.gemini.model"),
			},
			OpenRouter: llm.OpenRouterConfig{
				APIKey:  v.GetString("llm.openrouter.api_key"),
				Model:   v.GetString("llm.openrouter.model"),
				BaseURL: v.GetString("llm.openrouter.base_url"),
			},
			Retry: llm.RetryConfig{
				MaxAttempts: v.GetInt("llm.retry.max_attempts"),
				InitialWait: v.GetDuration("llm.retry.initial_wait"),
				MaxWait:     v.GetDuration("llm.retry.max_wait"),
				Multiplier:  v.GetFloat64("llm.retry.multiplier"),
			},
			Timeout:   v.GetDuration("llm.timeout"),
			MaxTokens: v.GetInt("llm.max_tokens"),
		},
		File: file,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot be acted on.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Recommend.Limit < 1 {
		errs = append(errs, fmt.Errorf("recommend.limit must be at least 1, got %d", c.Recommend.Limit))
	}
	if c.Snapshot.Keep < 1 {
		errs = append(errs, fmt.Errorf("snapshot.keep must be at least 1, got %d", c.Snapshot.Keep))
	}
	if c.LLM.Timeout < time.Second {
		errs = append(errs, fmt.Errorf("llm.timeout must be at least 1s, got %s", c.LLM.Timeout))
	}
	return errors.Join(errs...)
}

func configFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return path, nil
	}
	def, err := DefaultPath()
	if err != nil {
		return "", nil
	}
	if _, err := os.Stat(def); err != nil {
		return "", nil
	}
	return def, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/pathwise/config.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "pathwise", "config.yaml"), nil
}
