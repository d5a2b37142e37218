package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingToken is returned when no GitHub token is configured
var ErrMissingToken = errors.New("GitHub token is missing: set TOKEN in .env or the environment")

const DefaultAPIBaseURL = "https://api.github.com/"

type Config struct {
	Server ServerConfig
	GitHub GitHubConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type GitHubConfig struct {
	Token        string
	APIBaseURL   string
	PerPage      int
	Timeout      time.Duration
	MaxRateSleep time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from the given .env files (".env" when none are
// given) and environment variables
func Load(envFiles ...string) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
		},
		GitHub: GitHubConfig{
			Token:        getEnv("TOKEN", os.Getenv("GITHUB_TOKEN")),
			APIBaseURL:   getEnv("GITHUB_API_URL", DefaultAPIBaseURL),
			PerPage:      getEnvAsInt("GITHUB_PER_PAGE", 100),
			Timeout:      time.Duration(getEnvAsInt("GITHUB_TIMEOUT", 30)) * time.Second,
			MaxRateSleep: time.Duration(getEnvAsInt("GITHUB_RATE_LIMIT_MAX_SLEEP", 60)) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values that have no usable default
func (c *Config) Validate() error {
	if c.GitHub.Token == "" {
		return ErrMissingToken
	}
	if c.GitHub.PerPage <= 0 || c.GitHub.PerPage > 100 {
		c.GitHub.PerPage = 100
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
