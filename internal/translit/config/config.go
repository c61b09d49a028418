package config

import (
	"fmt"
	"time"

	"github.com/longkey1/translitc/internal/translit"
	"github.com/spf13/viper"
)

// Config holds the configuration for the transliteration client
type Config struct {
	TransliterateURL string        `toml:"transliterate_url" mapstructure:"transliterate_url"`
	ContributeURL    string        `toml:"contribute_url" mapstructure:"contribute_url"`
	HealthURL        string        `toml:"health_url" mapstructure:"health_url"`
	Token            string        `toml:"token" mapstructure:"token"`       // Optional bearer token, "$VAR" is expanded
	Language         string        `toml:"language" mapstructure:"language"` // Default language mode ("" = auto-detect)
	MinLatency       time.Duration `toml:"min_latency" mapstructure:"min_latency"`
	HTTPTimeout      time.Duration `toml:"http_timeout" mapstructure:"http_timeout"` // 0 = transport default
	LogFile          string        `toml:"log_file" mapstructure:"log_file"`
	LogLevel         string        `toml:"log_level" mapstructure:"log_level"`
}

// GetLanguage parses the configured default language mode
func (c *Config) GetLanguage() (translit.Language, error) {
	return translit.ParseLanguage(c.Language)
}

// GetToken returns the bearer token (already expanded during LoadConfig)
func (c *Config) GetToken() string {
	return c.Token
}

// GetHTTPTimeout returns the transport timeout
func (c *Config) GetHTTPTimeout() time.Duration {
	return c.HTTPTimeout
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig(logFile string) *Config {
	return &Config{
		TransliterateURL: "http://localhost:5000/transliterate",
		ContributeURL:    "http://localhost:5000/contribute",
		HealthURL:        "http://localhost:5001/api/health",
		Token:            "$TRANSLITC_API_TOKEN", // Default to env var
		Language:         "",
		MinLatency:       800 * time.Millisecond,
		HTTPTimeout:      30 * time.Second,
		LogFile:          logFile,
		LogLevel:         "info",
	}
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	token, err := expandEnvVar(config.Token)
	if err != nil {
		return nil, fmt.Errorf("error expanding token: %v", err)
	}
	config.Token = token

	if config.LogFile != "" {
		absPath, err := ResolvePath(config.LogFile)
		if err != nil {
			return nil, fmt.Errorf("error resolving log file path '%s': %v", config.LogFile, err)
		}
		config.LogFile = absPath
	}

	if config.MinLatency < 0 {
		return nil, fmt.Errorf("min_latency must not be negative (got %s)", config.MinLatency)
	}

	if _, err := config.GetLanguage(); err != nil {
		return nil, fmt.Errorf("invalid default language: %w", err)
	}

	return config, nil
}
