// Package config loads service settings from the environment, after an optional
// .env file.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port         string   `env:"PORT" envDefault:"8080"`
	GinMode      string   `env:"GIN_MODE" envDefault:"release"`
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
	LogLevel     string   `env:"LOG_LEVEL" envDefault:"info"`

	// Database
	EnableDB    bool   `env:"ENABLE_DB" envDefault:"false"`
	DatabaseURL string `env:"DATABASE_URL"`

	// Chat providers, tried in this order
	OpenAIAPIKey       string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL      string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIModel        string `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	GeminiAPIKey       string `env:"GEMINI_API_KEY"`
	GeminiModel        string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	HuggingFaceEnabled bool   `env:"HUGGINGFACE_ENABLED" envDefault:"true"`
	HuggingFaceURL     string `env:"HUGGINGFACE_URL" envDefault:"https://api-inference.huggingface.co/models/facebook/blenderbot-400M-distill"`
	HuggingFaceToken   string `env:"HUGGINGFACE_TOKEN"`

	// News
	NewsAPIKey   string        `env:"NEWS_API_KEY"`
	NewsAPIURL   string        `env:"NEWS_API_URL" envDefault:"https://newsapi.org/v2"`
	NewsCacheTTL time.Duration `env:"NEWS_CACHE_TTL" envDefault:"30m"`

	// Auth backend
	SupabaseURL     string `env:"SUPABASE_URL"`
	SupabaseAnonKey string `env:"SUPABASE_ANON_KEY"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"20s"`
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}
	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}

	return cfg, nil
}
