package api

import (
	"fmt"
	"net/http"
	"net/url"
)

// Request is a concrete, transport-agnostic API request. Query and Body
// are mutually exclusive in practice: GET/DELETE requests carry query
// parameters, mutating requests carry a JSON body.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// Response is the raw result of a successful dispatch. Body is the
// verbatim JSON payload; rendering is the formatter's concern.
type Response struct {
	Status int
	Body   []byte
}

// APIError is a non-2xx platform response. The body is preserved
// verbatim for diagnostics; these are never retried.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Body)
}

// applyAuth sets the auth headers for the resolved mode. The switch
// guarantees a request never carries both schemes.
func applyAuth(req *http.Request, mode AuthMode, creds Credentials) {
	switch mode {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	case AuthAPIKey:
		req.Header.Set("DD-API-KEY", creds.APIKey)
		req.Header.Set("DD-APPLICATION-KEY", creds.AppKey)
	}
}
