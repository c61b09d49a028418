package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Endpoint names accepted by GetEndpoint
const (
	EndpointTransliterate = "transliterate"
	EndpointContribute    = "contribute"
	EndpointHealth        = "health"
)

// expandEnvVar expands environment variable references in the given value
// Supports both $VAR and ${VAR} syntax
// Returns the expanded value. If the environment variable is not set, returns empty string.
func expandEnvVar(value string) (string, error) {
	if !strings.HasPrefix(value, "$") {
		return value, nil
	}

	var envVarName string
	if strings.HasPrefix(value, "${") {
		if !strings.HasSuffix(value, "}") {
			return "", fmt.Errorf("unterminated variable reference: %s", value)
		}
		envVarName = value[2 : len(value)-1]
	} else {
		envVarName = strings.TrimPrefix(value, "$")
	}

	return os.Getenv(envVarName), nil
}

// GetEndpoint returns the URL for the named service endpoint
func (c *Config) GetEndpoint(name string) (string, error) {
	var value string
	switch name {
	case EndpointTransliterate:
		value = c.TransliterateURL
	case EndpointContribute:
		value = c.ContributeURL
	case EndpointHealth:
		value = c.HealthURL
	default:
		return "", fmt.Errorf("unknown endpoint: %s", name)
	}

	if value == "" {
		return "", fmt.Errorf("%s URL is not configured. Set it in config file (%s_url) or environment variable (TRANSLITC_%s_URL)", name, name, strings.ToUpper(name))
	}

	u, err := url.Parse(value)
	if err != nil {
		return "", fmt.Errorf("invalid %s URL %q: %w", name, value, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid %s URL %q: scheme must be http or https", name, value)
	}

	return value, nil
}

// ResolvePath converts a relative path to absolute path if needed
func ResolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	// Get config file directory as base directory
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("error getting current working directory: %v", err)
		}
		return filepath.Join(cwd, path), nil
	}

	configDir := filepath.Dir(configFile)
	if !filepath.IsAbs(configDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("error getting current working directory: %v", err)
		}
		configDir = filepath.Join(cwd, configDir)
	}

	return filepath.Join(configDir, path), nil
}
