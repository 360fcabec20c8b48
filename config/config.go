package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the application's configuration
type Config struct {
	// LLM backend selection
	UseLocalLLM  bool   `mapstructure:"USE_LOCAL_LLM"`
	OllamaURL    string `mapstructure:"OLLAMA_URL"`
	OllamaModel  string `mapstructure:"OLLAMA_MODEL"`
	GitHubAPIURL string `mapstructure:"GITHUB_API_URL"`
	GitHubToken  string `mapstructure:"GITHUB_TOKEN"`
	ModelName    string `mapstructure:"MODEL_NAME"`

	// LLM client tuning
	LLMRequestTimeout     time.Duration `mapstructure:"LLM_REQUEST_TIMEOUT"`
	MaxRetries            int           `mapstructure:"MAX_RETRIES"`
	RetryDelaySeconds     time.Duration `mapstructure:"RETRY_DELAY_SECONDS"`
	LLMBackoffMaxSeconds  time.Duration `mapstructure:"LLM_BACKOFF_MAX_SECONDS"`
	LLMBackoffJitterRatio float64       `mapstructure:"LLM_BACKOFF_JITTER_RATIO"`

	// Image generation API
	ImageAPIURL     string        `mapstructure:"IMAGE_API_URL"`
	ImageAPITimeout time.Duration `mapstructure:"IMAGE_API_TIMEOUT"`

	// Quiz session store
	SessionCapacity     int           `mapstructure:"SESSION_CAPACITY"`
	CleanupEnabled      bool          `mapstructure:"CLEANUP_ENABLED"`
	CleanupInterval     time.Duration `mapstructure:"CLEANUP_INTERVAL"`
	SessionRetentionAge time.Duration `mapstructure:"SESSION_RETENTION_AGE"`

	// Web server
	WebPort        int    `mapstructure:"WEB_PORT"`
	StaticDir      string `mapstructure:"STATIC_DIR"`
	MaxUploadBytes int64  `mapstructure:"MAX_UPLOAD_BYTES"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
}

// MockLLM reports whether the service should answer with canned responses.
// Local mode always talks to Ollama; cloud mode requires a token.
func (c *Config) MockLLM() bool {
	return !c.UseLocalLLM && c.GitHubToken == ""
}

func Load(logger *zap.Logger) *Config {
	var config Config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")        // For running locally
	viper.AddConfigPath("../")      // For running from docker subdir
	viper.AddConfigPath("./config") // Common config folder
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("USE_LOCAL_LLM", false)
	viper.SetDefault("OLLAMA_URL", "http://localhost:11434")
	viper.SetDefault("OLLAMA_MODEL", "phi4-mini-reasoning:latest")
	viper.SetDefault("GITHUB_API_URL", "https://models.github.ai/inference")
	viper.SetDefault("MODEL_NAME", "openai/gpt-4.1-mini")
	viper.SetDefault("LLM_REQUEST_TIMEOUT", 120)
	viper.SetDefault("MAX_RETRIES", 3)
	viper.SetDefault("RETRY_DELAY_SECONDS", 2)
	viper.SetDefault("LLM_BACKOFF_MAX_SECONDS", 30)
	viper.SetDefault("LLM_BACKOFF_JITTER_RATIO", 0.1)
	viper.SetDefault("IMAGE_API_URL", "")
	viper.SetDefault("IMAGE_API_TIMEOUT", 60)
	viper.SetDefault("SESSION_CAPACITY", 256)
	viper.SetDefault("CLEANUP_ENABLED", true)
	viper.SetDefault("CLEANUP_INTERVAL", 1)
	viper.SetDefault("SESSION_RETENTION_AGE", 24)
	viper.SetDefault("WEB_PORT", 8000)
	viper.SetDefault("STATIC_DIR", "./static")
	viper.SetDefault("MAX_UPLOAD_BYTES", 1<<20)
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Warn("Could not read config file, using defaults/env vars", zap.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		// Config unmarshaling is critical - fail fast during bootstrap
		if logger != nil {
			logger.Fatal("Unable to decode config into struct", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	// Convert seconds/hours to proper time.Duration
	config.LLMRequestTimeout = config.LLMRequestTimeout * time.Second
	config.RetryDelaySeconds = config.RetryDelaySeconds * time.Second
	config.LLMBackoffMaxSeconds = config.LLMBackoffMaxSeconds * time.Second
	config.ImageAPITimeout = config.ImageAPITimeout * time.Second
	config.CleanupInterval = config.CleanupInterval * time.Hour
	config.SessionRetentionAge = config.SessionRetentionAge * time.Hour

	if logger != nil {
		switch {
		case config.UseLocalLLM:
			logger.Info("Using local Ollama model", zap.String("model", config.OllamaModel))
		case config.GitHubToken != "":
			logger.Info("Using GitHub model", zap.String("model", config.ModelName))
		default:
			logger.Info("No LLM credentials configured, using mock responses")
		}
	}

	return &config
}
