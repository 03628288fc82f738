package api

import (
	"net/http"
	"strings"
)

// EndpointPolicy constrains which auth modes an endpoint accepts.
type EndpointPolicy int

const (
	// AnyMode endpoints accept bearer tokens or API key pairs.
	AnyMode EndpointPolicy = iota
	// APIKeyOnly endpoints reject bearer tokens upstream; requests must
	// carry an API/application key pair.
	APIKeyOnly
)

// Endpoint describes one API operation: the HTTP method and path, the
// auth policy it enforces, and an optional typed-binding call.
type Endpoint struct {
	Method string
	Path   string
	Policy EndpointPolicy
	Reason string
	Typed  TypedCall
}

// NewEndpoint builds a descriptor for method and path, resolving the
// auth policy from the restriction table.
func NewEndpoint(method, path string) Endpoint {
	ep := Endpoint{Method: method, Path: path, Policy: AnyMode}
	if r := lookupRestriction(method, path); r != nil {
		ep.Policy = APIKeyOnly
		ep.Reason = r.reason
	}
	return ep
}

// WithTyped attaches a typed-binding call to the descriptor.
func (e Endpoint) WithTyped(fn TypedCall) Endpoint {
	e.Typed = fn
	return e
}

type restriction struct {
	path   string
	method string
	reason string
}

const (
	reasonLogs          = "the logs API does not accept bearer tokens"
	reasonLogsConfig    = "the logs configuration API does not accept bearer tokens"
	reasonRUM           = "the RUM API does not accept bearer tokens"
	reasonKeyManagement = "the key management API does not accept bearer tokens"
	reasonEvents        = "the events search API does not accept bearer tokens"
	reasonErrorTracking = "the error tracking API does not accept bearer tokens"
)

// apiKeyOnlyEndpoints lists endpoints that reject bearer auth upstream.
// A trailing "/" makes the entry a prefix match, covering
// ID-parameterized paths like /api/v2/rum/applications/{id}.
var apiKeyOnlyEndpoints = []restriction{
	// Logs
	{path: "/api/v2/logs/events", method: http.MethodPost, reason: reasonLogs},
	{path: "/api/v2/logs/events/search", method: http.MethodPost, reason: reasonLogs},
	{path: "/api/v2/logs/analytics/aggregate", method: http.MethodPost, reason: reasonLogs},
	{path: "/api/v2/logs/config/archives", method: http.MethodGet, reason: reasonLogsConfig},
	{path: "/api/v2/logs/config/archives/", method: http.MethodGet, reason: reasonLogsConfig},
	{path: "/api/v2/logs/config/archives/", method: http.MethodDelete, reason: reasonLogsConfig},
	{path: "/api/v2/logs/config/custom_destinations", method: http.MethodGet, reason: reasonLogsConfig},
	{path: "/api/v2/logs/config/custom_destinations/", method: http.MethodGet, reason: reasonLogsConfig},
	{path: "/api/v2/logs/config/metrics", method: http.MethodGet, reason: reasonLogsConfig},
	{path: "/api/v2/logs/config/metrics/", method: http.MethodGet, reason: reasonLogsConfig},
	{path: "/api/v2/logs/config/metrics/", method: http.MethodDelete, reason: reasonLogsConfig},

	// RUM
	{path: "/api/v2/rum/applications", method: http.MethodGet, reason: reasonRUM},
	{path: "/api/v2/rum/applications/", method: http.MethodGet, reason: reasonRUM},
	{path: "/api/v2/rum/applications", method: http.MethodPost, reason: reasonRUM},
	{path: "/api/v2/rum/applications/", method: http.MethodPatch, reason: reasonRUM},
	{path: "/api/v2/rum/applications/", method: http.MethodDelete, reason: reasonRUM},
	{path: "/api/v2/rum/metrics", method: http.MethodGet, reason: reasonRUM},
	{path: "/api/v2/rum/metrics/", method: http.MethodGet, reason: reasonRUM},
	{path: "/api/v2/rum/retention_filters", method: http.MethodGet, reason: reasonRUM},
	{path: "/api/v2/rum/retention_filters/", method: http.MethodGet, reason: reasonRUM},
	{path: "/api/v2/rum/events/search", method: http.MethodPost, reason: reasonRUM},

	// API/application key management
	{path: "/api/v2/api_keys", method: http.MethodGet, reason: reasonKeyManagement},
	{path: "/api/v2/api_keys/", method: http.MethodGet, reason: reasonKeyManagement},
	{path: "/api/v2/api_keys", method: http.MethodPost, reason: reasonKeyManagement},
	{path: "/api/v2/api_keys/", method: http.MethodDelete, reason: reasonKeyManagement},
	{path: "/api/v2/application_keys", method: http.MethodGet, reason: reasonKeyManagement},
	{path: "/api/v2/application_keys/", method: http.MethodGet, reason: reasonKeyManagement},
	{path: "/api/v2/application_keys/", method: http.MethodPatch, reason: reasonKeyManagement},
	{path: "/api/v2/application_keys/", method: http.MethodDelete, reason: reasonKeyManagement},

	// Events
	{path: "/api/v2/events/search", method: http.MethodPost, reason: reasonEvents},

	// Error tracking
	{path: "/api/v2/error_tracking/issues/search", method: http.MethodPost, reason: reasonErrorTracking},
	{path: "/api/v2/error_tracking/issues/", method: http.MethodGet, reason: reasonErrorTracking},
}

func lookupRestriction(method, path string) *restriction {
	for i := range apiKeyOnlyEndpoints {
		r := &apiKeyOnlyEndpoints[i]
		if r.method != method {
			continue
		}
		if strings.HasSuffix(r.path, "/") {
			if strings.HasPrefix(path, r.path[:len(r.path)-1]) {
				return r
			}
		} else if r.path == path {
			return r
		}
	}
	return nil
}
