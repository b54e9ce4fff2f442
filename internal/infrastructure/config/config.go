package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
	Browser    BrowserConfig
	Cache      CacheConfig
	Artifacts  ArtifactConfig
	Generation GenerationConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds ingress rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// BrowserConfig holds headless browser configuration.
type BrowserConfig struct {
	// RemoteURL is the DevTools websocket of an external Chrome. Empty launches a local one.
	RemoteURL     string        `envconfig:"BROWSER_REMOTE_URL"`
	RenderTimeout time.Duration `envconfig:"BROWSER_RENDER_TIMEOUT" default:"30s"`
	Stealth       bool          `envconfig:"BROWSER_STEALTH" default:"true"`
}

// CacheConfig holds design context cache configuration.
type CacheConfig struct {
	Dir     string `envconfig:"CACHE_DIR" default:"cache"`
	LRUSize int    `envconfig:"CACHE_LRU_SIZE" default:"256"`
}

// ArtifactConfig selects where generated documents are persisted.
// When S3Endpoint is set the S3 store is used, otherwise Dir.
type ArtifactConfig struct {
	Dir         string `envconfig:"ARTIFACT_DIR" default:"jobs"`
	S3Endpoint  string `envconfig:"ARTIFACT_S3_ENDPOINT"`
	S3Region    string `envconfig:"ARTIFACT_S3_REGION" default:"us-east-1"`
	S3Bucket    string `envconfig:"ARTIFACT_S3_BUCKET" default:"site-clones"`
	S3AccessKey string `envconfig:"ARTIFACT_S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"ARTIFACT_S3_SECRET_KEY"`
	S3UseSSL    bool   `envconfig:"ARTIFACT_S3_USE_SSL" default:"true"`
}

// GenerationConfig holds HTML generation provider configuration.
type GenerationConfig struct {
	DefaultProvider  string        `envconfig:"GENERATION_DEFAULT_PROVIDER" default:"claude"`
	Timeout          time.Duration `envconfig:"GENERATION_TIMEOUT" default:"120s"`
	AnthropicAPIKey  string        `envconfig:"ANTHROPIC_API_KEY"`
	AnthropicModel   string        `envconfig:"ANTHROPIC_MODEL" default:"claude-3-sonnet-20240229"`
	AnthropicBaseURL string        `envconfig:"ANTHROPIC_BASE_URL" default:"https://api.anthropic.com"`
	AnthropicTokens  int           `envconfig:"ANTHROPIC_MAX_TOKENS" default:"4000"`
	GoogleAPIKey     string        `envconfig:"GOOGLE_API_KEY"`
	GeminiModel      string        `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	GeminiTokens     int32         `envconfig:"GEMINI_MAX_TOKENS" default:"8192"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           true,
		},
		Browser: BrowserConfig{
			RenderTimeout: 30 * time.Second,
			Stealth:       true,
		},
		Cache: CacheConfig{
			Dir:     "cache",
			LRUSize: 256,
		},
		Artifacts: ArtifactConfig{
			Dir:      "jobs",
			S3Region: "us-east-1",
			S3Bucket: "site-clones",
			S3UseSSL: true,
		},
		Generation: GenerationConfig{
			DefaultProvider:  "claude",
			Timeout:          120 * time.Second,
			AnthropicModel:   "claude-3-sonnet-20240229",
			AnthropicBaseURL: "https://api.anthropic.com",
			AnthropicTokens:  4000,
			GeminiModel:      "gemini-2.0-flash",
			GeminiTokens:     8192,
		},
	}
}
