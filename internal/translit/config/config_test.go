package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TRANSLITC_TEST_TOKEN", "secret")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "literal", input: "plain", want: "plain"},
		{name: "dollar form", input: "$TRANSLITC_TEST_TOKEN", want: "secret"},
		{name: "braced form", input: "${TRANSLITC_TEST_TOKEN}", want: "secret"},
		{name: "unset variable", input: "$TRANSLITC_TEST_UNSET", want: ""},
		{name: "unterminated", input: "${TRANSLITC_TEST_TOKEN", wantErr: true},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandEnvVar(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetEndpoint(t *testing.T) {
	cfg := NewDefaultConfig("")

	got, err := cfg.GetEndpoint(EndpointTransliterate)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/transliterate", got)

	got, err = cfg.GetEndpoint(EndpointContribute)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/contribute", got)

	_, err = cfg.GetEndpoint("unknown")
	assert.Error(t, err)

	cfg.HealthURL = ""
	_, err = cfg.GetEndpoint(EndpointHealth)
	assert.ErrorContains(t, err, "TRANSLITC_HEALTH_URL")

	cfg.ContributeURL = "ftp://example.com/contribute"
	_, err = cfg.GetEndpoint(EndpointContribute)
	assert.ErrorContains(t, err, "scheme")
}

func TestLoadConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("TRANSLITC_TEST_TOKEN", "abc123")

	viper.Set("transliterate_url", "https://example.com/transliterate")
	viper.Set("token", "$TRANSLITC_TEST_TOKEN")
	viper.Set("language", "en-hi")
	viper.Set("min_latency", "250ms")
	viper.Set("log_file", "/var/log/translitc.log")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/transliterate", cfg.TransliterateURL)
	assert.Equal(t, "abc123", cfg.Token)
	assert.Equal(t, 250*time.Millisecond, cfg.MinLatency)
	assert.Equal(t, "/var/log/translitc.log", cfg.LogFile)

	lang, err := cfg.GetLanguage()
	require.NoError(t, err)
	assert.Equal(t, "en-hi", string(lang))
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("language", "en-fr")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "invalid default language")

	viper.Reset()
	viper.Set("min_latency", "-1s")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "min_latency")
}

func TestResolvePath(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	got, err := ResolvePath("/abs/path.log")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path.log", got)

	dir := t.TempDir()
	viper.SetConfigFile(filepath.Join(dir, "config.toml"))
	got, err = ResolvePath("logs/translitc.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logs", "translitc.log"), got)
}
