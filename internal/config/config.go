// Package config loads the medspace server configuration from config/{ENV}.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the medspace API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Search    SearchConfig    `yaml:"search"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Assistant AssistantConfig `yaml:"assistant"`
	Media     MediaConfig     `yaml:"media"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds result page sizes per endpoint.
type SearchConfig struct {
	DefaultLimit   int `yaml:"default_limit"`   // /ai-search
	AssistantLimit int `yaml:"assistant_limit"` // /ai-assistant context
}

// CatalogConfig holds catalog storage settings.
type CatalogConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
	SeedFile  string `yaml:"seed_file"` // optional YAML loaded at startup
}

// BudgetConfig holds token budget settings.
type BudgetConfig struct {
	DailyTokenLimit   int64  `yaml:"daily_token_limit"`   // 0 = unlimited
	MonthlyTokenLimit int64  `yaml:"monthly_token_limit"` // 0 = unlimited
	Action            string `yaml:"action"`              // "reject" | "warn" (default)
}

// AssistantConfig holds chat and speech provider settings.
// The assistant is disabled when APIKey is empty.
type AssistantConfig struct {
	APIKey       string       `yaml:"api_key"`
	BaseURL      string       `yaml:"base_url"`
	Model        string       `yaml:"model"`
	TTSModel     string       `yaml:"tts_model"`
	Voice        string       `yaml:"voice"`
	Temperature  float32      `yaml:"temperature"`
	MaxTokens    int          `yaml:"max_tokens"`
	SystemPrompt string       `yaml:"system_prompt"`
	Budget       BudgetConfig `yaml:"budget"`
}

// Enabled reports whether an API key is configured.
func (a AssistantConfig) Enabled() bool { return a.APIKey != "" }

// MediaConfig holds S3-compatible bucket settings.
// Media endpoints are disabled when Bucket is empty.
type MediaConfig struct {
	Bucket           string `yaml:"bucket"`
	Region           string `yaml:"region"`
	Endpoint         string `yaml:"endpoint"`
	AccessKeyID      string `yaml:"access_key_id"`
	SecretAccessKey  string `yaml:"secret_access_key"`
	UsePathStyle     bool   `yaml:"use_path_style"`
	URLExpiryMinutes int    `yaml:"url_expiry_minutes"`
}

// Enabled reports whether a bucket is configured.
func (m MediaConfig) Enabled() bool { return m.Bucket != "" }

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse expands ${VAR} references, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "valkey"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 10
	}
	if c.Search.AssistantLimit <= 0 {
		c.Search.AssistantLimit = 5
	}
	if c.Catalog.KeyPrefix == "" {
		c.Catalog.KeyPrefix = "medspace:"
	}
	if c.Assistant.Model == "" {
		c.Assistant.Model = "gpt-4o-mini"
	}
	if c.Assistant.TTSModel == "" {
		c.Assistant.TTSModel = "tts-1"
	}
	if c.Assistant.Voice == "" {
		c.Assistant.Voice = "alloy"
	}
	if c.Assistant.MaxTokens <= 0 {
		c.Assistant.MaxTokens = 800
	}
	if c.Media.Region == "" {
		c.Media.Region = "us-east-1"
	}
	if c.Media.URLExpiryMinutes <= 0 {
		c.Media.URLExpiryMinutes = 15
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "valkey", "redis":
	default:
		return fmt.Errorf("database.driver must be \"valkey\" or \"redis\", got %q", c.Database.Driver)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Search.DefaultLimit > 100 || c.Search.AssistantLimit > 100 {
		return fmt.Errorf("search limits must not exceed 100")
	}
	switch c.Assistant.Budget.Action {
	case "", "warn", "reject":
	default:
		return fmt.Errorf(
			"assistant.budget.action must be \"warn\" or \"reject\", got %q", c.Assistant.Budget.Action,
		)
	}
	if c.Assistant.Temperature < 0 || c.Assistant.Temperature > 2 {
		return fmt.Errorf("assistant.temperature must be between 0 and 2, got %v", c.Assistant.Temperature)
	}
	if c.Media.Enabled() && (c.Media.AccessKeyID == "" || c.Media.SecretAccessKey == "") {
		return fmt.Errorf("media.access_key_id and media.secret_access_key are required when media.bucket is set")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// Relative to the source file, for tests run from package directories.
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b)))
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
