package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeConfig(apiKey, appKey, token string) *Config {
	return &Config{
		APIKey:      apiKey,
		AppKey:      appKey,
		AccessToken: token,
		Site:        "datadoghq.com",
		Output:      "json",
		Transport:   TransportNative,
	}
}

func TestHasAPIKeys(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		appKey string
		want   bool
	}{
		{name: "complete pair", apiKey: "key", appKey: "app", want: true},
		{name: "api key only", apiKey: "key", appKey: "", want: false},
		{name: "app key only", apiKey: "", appKey: "app", want: false},
		{name: "neither", apiKey: "", appKey: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := makeConfig(tt.apiKey, tt.appKey, "")
			assert.Equal(t, tt.want, cfg.HasAPIKeys())
		})
	}
}

func TestHasBearerToken(t *testing.T) {
	assert.True(t, makeConfig("", "", "token").HasBearerToken())
	assert.False(t, makeConfig("k", "a", "").HasBearerToken())
}

func TestValidateAuth(t *testing.T) {
	assert.NoError(t, makeConfig("k", "a", "").ValidateAuth())
	assert.NoError(t, makeConfig("", "", "t").ValidateAuth())

	err := makeConfig("k", "", "").ValidateAuth()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DD_API_KEY")
	assert.Contains(t, err.Error(), "DD_ACCESS_TOKEN")
}

func TestAPIHost(t *testing.T) {
	tests := []struct {
		name string
		site string
		want string
	}{
		{name: "us site", site: "datadoghq.com", want: "api.datadoghq.com"},
		{name: "eu site", site: "datadoghq.eu", want: "api.datadoghq.eu"},
		{name: "oncall site used verbatim", site: "navy.oncall.datadoghq.com", want: "navy.oncall.datadoghq.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := makeConfig("", "", "t")
			cfg.Site = tt.site
			assert.Equal(t, tt.want, cfg.APIHost())
		})
	}
}

func TestAPIBaseURL(t *testing.T) {
	cfg := makeConfig("", "", "t")
	assert.Equal(t, "https://api.datadoghq.com", cfg.APIBaseURL())

	cfg.Site = "datadoghq.eu"
	assert.Equal(t, "https://api.datadoghq.eu", cfg.APIBaseURL())
}

func TestMockServerOverride(t *testing.T) {
	t.Setenv(MockServerEnv, "http://127.0.0.1:9000")

	cfg := makeConfig("", "", "t")
	assert.Equal(t, "127.0.0.1:9000", cfg.APIHost())
	assert.Equal(t, "http", cfg.APIScheme())
	assert.Equal(t, "http://127.0.0.1:9000", cfg.APIBaseURL())
}

func TestMockServerTrailingSlash(t *testing.T) {
	t.Setenv(MockServerEnv, "http://127.0.0.1:9000/")

	cfg := makeConfig("", "", "t")
	assert.Equal(t, "http://127.0.0.1:9000", cfg.APIBaseURL())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DD_API_KEY", "")
	t.Setenv("DD_APP_KEY", "")
	t.Setenv("DD_ACCESS_TOKEN", "")
	t.Setenv("DD_SITE", "")
	t.Setenv("DD_OUTPUT", "")
	t.Setenv("HOUND_TRANSPORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "datadoghq.com", cfg.Site)
	assert.Equal(t, "auto", cfg.Output)
	assert.Equal(t, TransportNative, cfg.Transport)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DD_API_KEY", "env-api-key")
	t.Setenv("DD_APP_KEY", "env-app-key")
	t.Setenv("DD_SITE", "datadoghq.eu")
	t.Setenv("HOUND_TRANSPORT", TransportGateway)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-api-key", cfg.APIKey)
	assert.Equal(t, "env-app-key", cfg.AppKey)
	assert.Equal(t, "datadoghq.eu", cfg.Site)
	assert.Equal(t, TransportGateway, cfg.Transport)
}
