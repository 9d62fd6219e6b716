package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	SQLite SQLiteConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	OpenAI OpenAIConfig
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=revenue_analytics.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=revenue_analytics"`
}

type RedisConfig struct {
	// Addr empty disables the answer cache.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// OpenAIConfig configures the external text-generation collaborator.
// An empty APIKey degrades chat and report summaries to the rule strategy.
type OpenAIConfig struct {
	APIKey  string        `env:"OPENAI_API_KEY"`
	Model   string        `env:"OPENAI_MODEL,    default=gpt-4o-mini"`
	BaseURL string        `env:"OPENAI_BASE_URL, default=https://api.openai.com/v1"`
	Timeout time.Duration `env:"OPENAI_TIMEOUT,  default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
