package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Transport target names. The transport is fixed per process: "native"
// calls the typed Datadog binding where possible, "gateway" routes every
// request through the generic verb gateway.
const (
	TransportNative  = "native"
	TransportGateway = "gateway"
)

// MockServerEnv overrides the API base URL, redirecting every request to
// a local mock server. Used by integration tests.
const MockServerEnv = "HOUND_MOCK_SERVER"

// Config is the process-wide runtime configuration. It is loaded once at
// startup and never mutated afterwards; every dispatch receives it by
// reference.
type Config struct {
	APIKey      string `mapstructure:"api_key"`
	AppKey      string `mapstructure:"app_key"`
	AccessToken string `mapstructure:"access_token"`
	Site        string `mapstructure:"site"`
	Output      string `mapstructure:"output"`
	Transport   string `mapstructure:"transport"`
	AgentMode   bool   `mapstructure:"agent_mode"`
	Debug       bool   `mapstructure:"debug"`
}

// Load builds the configuration with precedence env > file > default.
// Flag overrides are applied by the caller after this returns.
//
// Environment variables: DD_API_KEY, DD_APP_KEY, DD_ACCESS_TOKEN,
// DD_SITE, DD_OUTPUT, HOUND_TRANSPORT. Optional config file:
// ~/.config/hound/config.yaml (or the platform equivalent).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "hound"))
	}

	v.SetDefault("site", "datadoghq.com")
	v.SetDefault("output", "auto")
	v.SetDefault("transport", TransportNative)

	bindings := map[string]string{
		"api_key":      "DD_API_KEY",
		"app_key":      "DD_APP_KEY",
		"access_token": "DD_ACCESS_TOKEN",
		"site":         "DD_SITE",
		"output":       "DD_OUTPUT",
		"transport":    "HOUND_TRANSPORT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// HasBearerToken reports whether a bearer token is configured.
func (c *Config) HasBearerToken() bool {
	return c.AccessToken != ""
}

// HasAPIKeys reports whether a complete API/application key pair is
// configured. A pair with only one half is treated as absent.
func (c *Config) HasAPIKeys() bool {
	return c.APIKey != "" && c.AppKey != ""
}

// ValidateAuth fails when no usable credentials are configured at all.
func (c *Config) ValidateAuth() error {
	if !c.HasBearerToken() && !c.HasAPIKeys() {
		return errors.New(
			"authentication required: set DD_ACCESS_TOKEN for bearer auth, " +
				"or set DD_API_KEY and DD_APP_KEY for API key auth")
	}
	return nil
}

// APIHost returns the API hostname for the configured site, e.g.
// "api.datadoghq.com". On-call subdomains are already fully qualified
// and are used verbatim.
func (c *Config) APIHost() string {
	if mock := os.Getenv(MockServerEnv); mock != "" {
		return strings.TrimPrefix(strings.TrimPrefix(mock, "https://"), "http://")
	}
	if strings.Contains(c.Site, "oncall") {
		return c.Site
	}
	return "api." + c.Site
}

// APIScheme returns the URL scheme for API requests. Always "https"
// unless a plain-http mock server is configured.
func (c *Config) APIScheme() string {
	if mock := os.Getenv(MockServerEnv); mock != "" && strings.HasPrefix(mock, "http://") {
		return "http"
	}
	return "https"
}

// APIBaseURL returns the normalized base URL for raw HTTP requests,
// e.g. "https://api.datadoghq.com". No trailing slash.
func (c *Config) APIBaseURL() string {
	if mock := os.Getenv(MockServerEnv); mock != "" {
		return strings.TrimSuffix(mock, "/")
	}
	return c.APIScheme() + "://" + c.APIHost()
}
