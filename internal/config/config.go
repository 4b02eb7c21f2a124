// Package config loads server and CLI settings from defaults, an optional
// YAML file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider names.
const (
	ProviderOpenAI = "openai"
	ProviderAzure  = "azure"
	ProviderClaude = "claude"
)

// Session backends.
const (
	SessionSQLite = "sqlite"
	SessionRedis  = "redis"
)

// OpenAIConfig configures the OpenAI-compatible provider.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// AzureConfig configures an Azure OpenAI deployment.
type AzureConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"api_version"`
	APIKey     string `yaml:"api_key"`
}

// AnthropicConfig configures the Claude provider.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// SessionConfig selects where session state lives.
type SessionConfig struct {
	Backend       string `yaml:"backend"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

// RateLimitConfig bounds generation requests per client.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Config is the full configuration.
type Config struct {
	Provider     string          `yaml:"provider"`
	Temperature  float64         `yaml:"temperature"`
	MaxTokens    int             `yaml:"max_tokens"`
	OpenAI       OpenAIConfig    `yaml:"openai"`
	Azure        AzureConfig     `yaml:"azure"`
	Anthropic    AnthropicConfig `yaml:"anthropic"`
	Port         int             `yaml:"port"`
	DataDir      string          `yaml:"data_dir"`
	TemplatesDir string          `yaml:"templates_dir"`
	Session      SessionConfig   `yaml:"session"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`

	// AllowedOrigins are extra host patterns allowed to open the preview
	// socket. Same-host pages are always allowed.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the built-in configuration.
func Default() Config {
	dataDir := ".nlui"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".nlui")
	}
	return Config{
		Provider:    ProviderOpenAI,
		Temperature: 0.7,
		MaxTokens:   2000,
		OpenAI: OpenAIConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
		},
		Azure:     AzureConfig{APIVersion: "2024-02-15-preview"},
		Anthropic: AnthropicConfig{Model: "claude-sonnet-4-20250514"},
		Port:      8787,
		DataDir:   dataDir,
		Session:   SessionConfig{Backend: SessionSQLite},
		RateLimit: RateLimitConfig{RPS: 1, Burst: 3},
	}
}

// Load reads defaults, then the YAML file at path when path is non-empty,
// then the process environment.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.Getenv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.Session.Backend = strings.ToLower(strings.TrimSpace(cfg.Session.Backend))
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(name string, parse func(string) error) {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			if err := parse(v); err != nil {
				errs = append(errs, fmt.Errorf("config: %s=%q: %w", name, v, err))
			}
		}
	}
	intVar := func(dst *int) func(string) error {
		return func(v string) error {
			n, err := strconv.Atoi(v)
			if err == nil {
				*dst = n
			}
			return err
		}
	}
	floatVar := func(dst *float64) func(string) error {
		return func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err == nil {
				*dst = f
			}
			return err
		}
	}

	str("OPENAI_PROVIDER", &c.Provider)
	str("OPENAI_API_KEY", &c.OpenAI.APIKey)
	str("OPENAI_API_BASE", &c.OpenAI.BaseURL)
	str("OPENAI_API_MODEL", &c.OpenAI.Model)
	num("OPENAI_TEMPERATURE", floatVar(&c.Temperature))
	str("AZURE_OPENAI_ENDPOINT", &c.Azure.Endpoint)
	str("AZURE_OPENAI_DEPLOYMENT", &c.Azure.Deployment)
	str("AZURE_OPENAI_API_VERSION", &c.Azure.APIVersion)
	str("AZURE_OPENAI_API_KEY", &c.Azure.APIKey)
	str("ANTHROPIC_API_KEY", &c.Anthropic.APIKey)
	num("PORT", intVar(&c.Port))
	str("NLUI_DATA", &c.DataDir)
	str("NLUI_TEMPLATES", &c.TemplatesDir)
	str("NLUI_SESSION_BACKEND", &c.Session.Backend)
	str("NLUI_REDIS_ADDR", &c.Session.RedisAddr)
	num("NLUI_RATE_LIMIT_RPS", floatVar(&c.RateLimit.RPS))
	num("NLUI_RATE_LIMIT_BURST", intVar(&c.RateLimit.Burst))
	if v := strings.TrimSpace(getenv("NLUI_ALLOWED_ORIGINS")); v != "" {
		c.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, o)
			}
		}
	}
	return errors.Join(errs...)
}

// Model returns the model or deployment the active provider will use.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderAzure:
		return c.Azure.Deployment
	case ProviderClaude:
		return c.Anthropic.Model
	default:
		return c.OpenAI.Model
	}
}

// Configured reports whether the active provider has its credentials.
func (c Config) Configured() bool {
	return c.credentialsError() == nil
}

func (c Config) credentialsError() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return errors.New("missing OpenAI API key (OPENAI_API_KEY)")
		}
	case ProviderAzure:
		var missing []string
		if c.Azure.Endpoint == "" {
			missing = append(missing, "AZURE_OPENAI_ENDPOINT")
		}
		if c.Azure.Deployment == "" {
			missing = append(missing, "AZURE_OPENAI_DEPLOYMENT")
		}
		if c.Azure.APIKey == "" {
			missing = append(missing, "AZURE_OPENAI_API_KEY")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing Azure OpenAI configuration (%s)", strings.Join(missing, ", "))
		}
	case ProviderClaude:
		if c.Anthropic.APIKey == "" {
			return errors.New("missing Anthropic API key (ANTHROPIC_API_KEY)")
		}
	default:
		return fmt.Errorf("unknown provider %q (want openai, azure or claude)", c.Provider)
	}
	return nil
}

// Validate reports every problem with c. Missing credentials are included;
// callers that can run without a provider check Configured instead.
func (c Config) Validate() error {
	var errs []error
	if err := c.credentialsError(); err != nil {
		errs = append(errs, err)
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature %.2f out of range [0, 2]", c.Temperature))
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, errors.New("max_tokens must be positive"))
	}
	switch c.Session.Backend {
	case SessionSQLite:
	case SessionRedis:
		if c.Session.RedisAddr == "" {
			errs = append(errs, errors.New("redis session backend needs NLUI_REDIS_ADDR"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown session backend %q", c.Session.Backend))
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("rate limit rps and burst must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// DBPath is the SQLite database file inside DataDir.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "nlui.db")
}
