package api

import (
	"errors"
	"fmt"

	"github.com/datahound/hound/internal/config"
)

// AuthMode is the authentication mode resolved for a single request.
type AuthMode int

const (
	AuthNone AuthMode = iota
	AuthBearer
	AuthAPIKey
)

// String returns a human-readable description of the auth mode.
func (m AuthMode) String() string {
	switch m {
	case AuthBearer:
		return "OAuth2 Bearer Token"
	case AuthAPIKey:
		return "API Keys (DD_API_KEY + DD_APP_KEY)"
	default:
		return "None"
	}
}

// Credentials holds the static credentials available to the process.
// At most one bearer token and one key pair; a key pair with only one
// half configured counts as absent.
type Credentials struct {
	AccessToken string
	APIKey      string
	AppKey      string
}

// CredentialsFrom extracts the credentials from the runtime configuration.
func CredentialsFrom(cfg *config.Config) Credentials {
	return Credentials{
		AccessToken: cfg.AccessToken,
		APIKey:      cfg.APIKey,
		AppKey:      cfg.AppKey,
	}
}

// HasBearer reports whether a bearer token is available.
func (c Credentials) HasBearer() bool {
	return c.AccessToken != ""
}

// HasKeyPair reports whether a complete API/application key pair is available.
func (c Credentials) HasKeyPair() bool {
	return c.APIKey != "" && c.AppKey != ""
}

// Mode returns the auth mode the credentials would select for an
// unrestricted endpoint, without failing. Used by `hound auth status`.
func (c Credentials) Mode() AuthMode {
	if c.HasBearer() {
		return AuthBearer
	}
	if c.HasKeyPair() {
		return AuthAPIKey
	}
	return AuthNone
}

// ErrNoCredentials is returned when no usable credentials are configured.
var ErrNoCredentials = errors.New(
	"authentication required: set DD_ACCESS_TOKEN for bearer auth, " +
		"or set DD_API_KEY and DD_APP_KEY for API key auth")

// EndpointRequiresAPIKeyError is returned when an endpoint only accepts
// key-pair auth and no complete pair is configured, regardless of any
// bearer token being present.
type EndpointRequiresAPIKeyError struct {
	Method string
	Path   string
	Reason string
}

func (e *EndpointRequiresAPIKeyError) Error() string {
	return fmt.Sprintf(
		"endpoint %s %s does not support bearer-token authentication (%s); "+
			"set the DD_API_KEY and DD_APP_KEY environment variables",
		e.Method, e.Path, e.Reason)
}

// ResolveAuth decides the auth mode for a request against ep.
//
// APIKeyOnly endpoints accept nothing but a complete key pair; bearer
// tokens are rejected locally instead of being sent and failed remotely.
// AnyMode endpoints prefer the bearer token, then fall back to the pair.
func ResolveAuth(creds Credentials, ep Endpoint) (AuthMode, error) {
	switch ep.Policy {
	case APIKeyOnly:
		if creds.HasKeyPair() {
			return AuthAPIKey, nil
		}
		return AuthNone, &EndpointRequiresAPIKeyError{Method: ep.Method, Path: ep.Path, Reason: ep.Reason}
	default:
		if creds.HasBearer() {
			return AuthBearer, nil
		}
		if creds.HasKeyPair() {
			return AuthAPIKey, nil
		}
		return AuthNone, ErrNoCredentials
	}
}
