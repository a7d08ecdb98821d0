package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Generator GeneratorConfig
	Upload    UploadConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	RenderTTL time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// GeneratorConfig selects and tunes the tier-generation strategy.
// Backend is "stub" or "remote".
type GeneratorConfig struct {
	Backend  string
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	Retries  int
	Backoff  time.Duration
}

type UploadConfig struct {
	MaxContentBytes int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "tiernote")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_RENDER_TTL", 3600)
	viper.SetDefault("RATE_LIMIT_RPS", 5.0)
	viper.SetDefault("RATE_LIMIT_BURST", 10)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	viper.SetDefault("GENERATOR_BACKEND", "stub")
	viper.SetDefault("GENERATOR_TIMEOUT", 30)
	viper.SetDefault("GENERATOR_RETRIES", 2)
	viper.SetDefault("GENERATOR_BACKOFF_MS", 1000)
	viper.SetDefault("UPLOAD_MAX_CONTENT_BYTES", 1<<20)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:      viper.GetString("REDIS_HOST"),
			Port:      viper.GetString("REDIS_PORT"),
			Password:  viper.GetString("REDIS_PASSWORD"),
			DB:        0,
			RenderTTL: time.Duration(viper.GetInt("REDIS_RENDER_TTL")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Generator: GeneratorConfig{
			Backend:  viper.GetString("GENERATOR_BACKEND"),
			Endpoint: viper.GetString("GENERATOR_ENDPOINT"),
			APIKey:   viper.GetString("GENERATOR_API_KEY"),
			Timeout:  time.Duration(viper.GetInt("GENERATOR_TIMEOUT")) * time.Second,
			Retries:  viper.GetInt("GENERATOR_RETRIES"),
			Backoff:  time.Duration(viper.GetInt("GENERATOR_BACKOFF_MS")) * time.Millisecond,
		},
		Upload: UploadConfig{
			MaxContentBytes: viper.GetInt("UPLOAD_MAX_CONTENT_BYTES"),
		},
	}

	return cfg, nil
}
