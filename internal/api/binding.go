package api

import (
	"context"
	"net/http"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"

	"github.com/datahound/hound/internal/config"
	"github.com/datahound/hound/internal/useragent"
)

// TypedCall invokes an operation on the typed Datadog binding. Nil on
// endpoints the binding does not cover; the native transport falls back
// to a raw HTTP request for those, and the gateway transport ignores it
// entirely.
type TypedCall func(ctx context.Context, client *datadog.APIClient) (any, *http.Response, error)

// Incident operations are still marked unstable in the binding; enable
// them up front so calls don't fail with an "unstable operation" error.
var unstableOperations = []string{
	"v2.ListIncidents",
	"v2.GetIncident",
	"v2.CreateIncident",
	"v2.UpdateIncident",
	"v2.DeleteIncident",
}

// newAPIClient configures the typed binding for the configured site.
func newAPIClient(cfg *config.Config) *datadog.APIClient {
	conf := datadog.NewConfiguration()
	conf.Host = cfg.APIHost()
	conf.Scheme = cfg.APIScheme()
	conf.UserAgent = useragent.String()
	for _, op := range unstableOperations {
		conf.SetUnstableOperationEnabled(op, true)
	}
	return datadog.NewAPIClient(conf)
}

// bindingContext injects the resolved auth mode into the context the
// typed binding reads credentials from. Exactly one scheme is present:
// a bearer token produces a single Authorization header, a key pair
// produces the two key headers.
func bindingContext(ctx context.Context, mode AuthMode, creds Credentials) context.Context {
	switch mode {
	case AuthBearer:
		return context.WithValue(ctx, datadog.ContextAccessToken, creds.AccessToken)
	case AuthAPIKey:
		return context.WithValue(ctx, datadog.ContextAPIKeys, map[string]datadog.APIKey{
			"apiKeyAuth": {Key: creds.APIKey},
			"appKeyAuth": {Key: creds.AppKey},
		})
	}
	return ctx
}
