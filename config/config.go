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
	LogLevel                string        `mapstructure:"LOG_LEVEL"`
	WebPort                 int           `mapstructure:"WEB_PORT"`
	KnowledgeBaseURL        string        `mapstructure:"KNOWLEDGE_BASE_URL"`
	SyncOnStart             bool          `mapstructure:"SYNC_ON_START"`
	SyncTimeout             time.Duration `mapstructure:"SYNC_TIMEOUT"`
	LLMHost                 string        `mapstructure:"LLM_HOST"`
	LLMModel                string        `mapstructure:"LLM_MODEL"`
	LLMTemperature          float64       `mapstructure:"LLM_TEMPERATURE"`
	LLMRequestTimeout       time.Duration `mapstructure:"LLM_REQUEST_TIMEOUT"`
	MaxRetries              int           `mapstructure:"MAX_RETRIES"`
	RetryDelaySeconds       time.Duration `mapstructure:"RETRY_DELAY_SECONDS"`
	DocumentLimit           int           `mapstructure:"DOCUMENT_LIMIT"`
	StructuredTopN          int           `mapstructure:"STRUCTURED_TOP_N"`
	ContextCacheSize        int           `mapstructure:"CONTEXT_CACHE_SIZE"`
	ClustersFile            string        `mapstructure:"CLUSTERS_FILE"`
	MailRecipient           string        `mapstructure:"MAIL_RECIPIENT"`
	RateLimitMessagesPerMin int           `mapstructure:"RATE_LIMIT_MESSAGES_PER_MIN"`
	RateLimitBurstSize      int           `mapstructure:"RATE_LIMIT_BURST_SIZE"`
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
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("WEB_PORT", 8090)
	viper.SetDefault("KNOWLEDGE_BASE_URL", "https://raw.githubusercontent.com/Kapiti-Coast-District-Libraries/LibSysAI/main/SOP/")
	viper.SetDefault("SYNC_ON_START", true)
	viper.SetDefault("SYNC_TIMEOUT", 120)
	viper.SetDefault("LLM_HOST", "http://localhost:8080")
	viper.SetDefault("LLM_MODEL", "gemini-3-flash-preview")
	viper.SetDefault("LLM_TEMPERATURE", 0.2)
	viper.SetDefault("LLM_REQUEST_TIMEOUT", 300)
	viper.SetDefault("MAX_RETRIES", 5)
	viper.SetDefault("RETRY_DELAY_SECONDS", 2)
	viper.SetDefault("DOCUMENT_LIMIT", 3)
	viper.SetDefault("STRUCTURED_TOP_N", 100)
	viper.SetDefault("CONTEXT_CACHE_SIZE", 128)
	viper.SetDefault("CLUSTERS_FILE", "")
	viper.SetDefault("MAIL_RECIPIENT", "max.thomson@kapiticoast.govt.nz")
	viper.SetDefault("RATE_LIMIT_MESSAGES_PER_MIN", 20)
	viper.SetDefault("RATE_LIMIT_BURST_SIZE", 5)

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
			// Fallback if logger not available (should not happen in practice)
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	// Convert seconds to proper time.Duration
	config.SyncTimeout = config.SyncTimeout * time.Second
	config.LLMRequestTimeout = config.LLMRequestTimeout * time.Second
	config.RetryDelaySeconds = config.RetryDelaySeconds * time.Second

	return &config
}
