// Package config loads the optimizer service's runtime configuration from
// environment variables (or a local .env file), following the teacher's
// viper-based loader shape.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Persistence
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	RedisURL    string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Optimization defaults/limits
	DefaultNumberOfLineups int `mapstructure:"DEFAULT_NUMBER_OF_LINEUPS"`
	MaxNumberOfLineups     int `mapstructure:"MAX_NUMBER_OF_LINEUPS"`

	// Solver
	Solver             string        `mapstructure:"SOLVER"`
	SolverThreads      int           `mapstructure:"SOLVER_THREADS"`
	SolverMessageLevel int           `mapstructure:"SOLVER_MESSAGE_LEVEL"`
	SolverTimeout      time.Duration `mapstructure:"SOLVER_TIMEOUT"`

	// Circuit breaker around solver calls
	BreakerMaxRequests uint32        `mapstructure:"BREAKER_MAX_REQUESTS"`
	BreakerTimeout     time.Duration `mapstructure:"BREAKER_TIMEOUT"`

	// Rate limiting on /optimize
	RateLimitPerSecond float64 `mapstructure:"RATE_LIMIT_PER_SECOND"`
	RateLimitBurst     int     `mapstructure:"RATE_LIMIT_BURST"`

	// Run-history janitor
	RunHistoryRetention time.Duration `mapstructure:"RUN_HISTORY_RETENTION"`
	JanitorSchedule     string        `mapstructure:"JANITOR_SCHEDULE"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")

	viper.SetDefault("DATABASE_URL", "lineup_optimizer.db")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("JWT_SECRET", "your-secret-key")

	viper.SetDefault("DEFAULT_NUMBER_OF_LINEUPS", 1)
	viper.SetDefault("MAX_NUMBER_OF_LINEUPS", 200)

	viper.SetDefault("SOLVER", "DEFAULT")
	viper.SetDefault("SOLVER_THREADS", 1)
	viper.SetDefault("SOLVER_MESSAGE_LEVEL", 0)
	viper.SetDefault("SOLVER_TIMEOUT", "20s")

	viper.SetDefault("BREAKER_MAX_REQUESTS", 3)
	viper.SetDefault("BREAKER_TIMEOUT", "30s")

	viper.SetDefault("RATE_LIMIT_PER_SECOND", 2)
	viper.SetDefault("RATE_LIMIT_BURST", 5)

	viper.SetDefault("RUN_HISTORY_RETENTION", "168h")
	viper.SetDefault("JANITOR_SCHEDULE", "@every 1h")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
