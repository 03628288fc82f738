package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datahound/hound/internal/config"
)

func TestResolveAuthAnyMode(t *testing.T) {
	ep := NewEndpoint(http.MethodGet, "/api/v1/monitor")
	require.Equal(t, AnyMode, ep.Policy)

	tests := []struct {
		name     string
		creds    Credentials
		wantMode AuthMode
		wantErr  error
	}{
		{
			name:     "bearer token selects bearer",
			creds:    Credentials{AccessToken: "x"},
			wantMode: AuthBearer,
		},
		{
			name:     "key pair selects api key",
			creds:    Credentials{APIKey: "a", AppKey: "b"},
			wantMode: AuthAPIKey,
		},
		{
			name:     "bearer takes precedence over key pair",
			creds:    Credentials{AccessToken: "x", APIKey: "a", AppKey: "b"},
			wantMode: AuthBearer,
		},
		{
			name:    "no credentials fails",
			creds:   Credentials{},
			wantErr: ErrNoCredentials,
		},
		{
			name:    "incomplete pair is treated as absent",
			creds:   Credentials{APIKey: "a"},
			wantErr: ErrNoCredentials,
		},
		{
			name:    "app key alone is treated as absent",
			creds:   Credentials{AppKey: "b"},
			wantErr: ErrNoCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := ResolveAuth(tt.creds, ep)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, mode)
		})
	}
}

func TestResolveAuthAPIKeyOnly(t *testing.T) {
	ep := NewEndpoint(http.MethodPost, "/api/v2/logs/events/search")
	require.Equal(t, APIKeyOnly, ep.Policy)

	t.Run("key pair succeeds", func(t *testing.T) {
		mode, err := ResolveAuth(Credentials{APIKey: "a", AppKey: "b"}, ep)
		require.NoError(t, err)
		assert.Equal(t, AuthAPIKey, mode)
	})

	t.Run("bearer token alone is rejected", func(t *testing.T) {
		_, err := ResolveAuth(Credentials{AccessToken: "x"}, ep)
		var reqErr *EndpointRequiresAPIKeyError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.MethodPost, reqErr.Method)
		assert.Equal(t, "/api/v2/logs/events/search", reqErr.Path)
		assert.Contains(t, err.Error(), "DD_API_KEY")
		assert.Contains(t, err.Error(), "DD_APP_KEY")
	})

	t.Run("key pair wins even when bearer is also present", func(t *testing.T) {
		mode, err := ResolveAuth(Credentials{AccessToken: "x", APIKey: "a", AppKey: "b"}, ep)
		require.NoError(t, err)
		assert.Equal(t, AuthAPIKey, mode)
	})

	t.Run("incomplete pair is rejected", func(t *testing.T) {
		_, err := ResolveAuth(Credentials{APIKey: "a", AccessToken: "x"}, ep)
		var reqErr *EndpointRequiresAPIKeyError
		assert.ErrorAs(t, err, &reqErr)
	})
}

func TestCredentialsMode(t *testing.T) {
	assert.Equal(t, AuthBearer, Credentials{AccessToken: "x"}.Mode())
	assert.Equal(t, AuthAPIKey, Credentials{APIKey: "a", AppKey: "b"}.Mode())
	assert.Equal(t, AuthNone, Credentials{APIKey: "a"}.Mode())
	assert.Equal(t, AuthNone, Credentials{}.Mode())
}

func TestAuthModeString(t *testing.T) {
	assert.Equal(t, "OAuth2 Bearer Token", AuthBearer.String())
	assert.Equal(t, "API Keys (DD_API_KEY + DD_APP_KEY)", AuthAPIKey.String())
	assert.Equal(t, "None", AuthNone.String())
}

func TestCredentialsFrom(t *testing.T) {
	cfg := &config.Config{APIKey: "a", AppKey: "b", AccessToken: "t"}
	creds := CredentialsFrom(cfg)
	assert.Equal(t, "a", creds.APIKey)
	assert.Equal(t, "b", creds.AppKey)
	assert.Equal(t, "t", creds.AccessToken)
}
