package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"

	"github.com/datahound/hound/internal/config"
	"github.com/datahound/hound/internal/useragent"
	"github.com/datahound/hound/internal/util"
)

// Transporter issues a resolved, authenticated request. The two
// implementations are interchangeable: for the same endpoint, request
// and auth mode they produce logically identical HTTP requests.
type Transporter interface {
	Do(ctx context.Context, ep Endpoint, req *Request, mode AuthMode) (*Response, error)
}

// NewTransporter selects the transport once at startup from configuration.
func NewTransporter(cfg *config.Config) (Transporter, error) {
	switch cfg.Transport {
	case "", config.TransportNative:
		return newNativeTransport(cfg), nil
	case config.TransportGateway:
		return newGatewayTransport(cfg), nil
	default:
		return nil, fmt.Errorf("unknown transport %q (expected %s or %s)",
			cfg.Transport, config.TransportNative, config.TransportGateway)
	}
}

// The transport owns the only timeout in the dispatch pipeline.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// issue performs a raw HTTP request against baseURL. Shared by the
// native fallback path and every gateway verb so both produce the same
// method, URL, headers and body.
func issue(ctx context.Context, client *http.Client, baseURL string, req *Request, mode AuthMode, creds Credentials) (*Response, error) {
	u := baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", useragent.String())
	if len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	applyAuth(httpReq, mode, creds)

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// nativeTransport prefers the typed binding when the endpoint carries a
// typed call, and falls back to a direct HTTP request for the internal
// or unstable surfaces the binding does not cover.
type nativeTransport struct {
	cfg    *config.Config
	creds  Credentials
	client *http.Client
	api    *datadog.APIClient
}

func newNativeTransport(cfg *config.Config) *nativeTransport {
	return &nativeTransport{
		cfg:    cfg,
		creds:  CredentialsFrom(cfg),
		client: newHTTPClient(),
		api:    newAPIClient(cfg),
	}
}

func (t *nativeTransport) Do(ctx context.Context, ep Endpoint, req *Request, mode AuthMode) (*Response, error) {
	if ep.Typed != nil {
		return t.typed(ctx, ep, mode)
	}
	util.LogDebugf("raw %s %s", req.Method, req.Path)
	return issue(ctx, t.client, t.cfg.APIBaseURL(), req, mode, t.creds)
}

func (t *nativeTransport) typed(ctx context.Context, ep Endpoint, mode AuthMode) (*Response, error) {
	util.LogDebugf("typed %s %s", ep.Method, ep.Path)

	out, httpResp, err := ep.Typed(bindingContext(ctx, mode, t.creds), t.api)
	if err != nil {
		var apiErr datadog.GenericOpenAPIError
		if errors.As(err, &apiErr) && httpResp != nil {
			return nil, &APIError{StatusCode: httpResp.StatusCode, Body: string(apiErr.Body())}
		}
		return nil, fmt.Errorf("executing request: %w", err)
	}

	// Re-encode the typed value so both transports hand the formatter
	// the same shape: raw JSON bytes. The binding's types carry custom
	// marshalers, hence encoding/json here.
	body, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}

	status := http.StatusOK
	if httpResp != nil {
		status = httpResp.StatusCode
	}
	return &Response{Status: status, Body: body}, nil
}

// gatewayTransport routes every request through the generic verb
// gateway, for environments where the typed binding is unavailable.
// Header rules match the native raw path exactly.
type gatewayTransport struct {
	cfg    *config.Config
	creds  Credentials
	client *http.Client
}

func newGatewayTransport(cfg *config.Config) *gatewayTransport {
	return &gatewayTransport{
		cfg:    cfg,
		creds:  CredentialsFrom(cfg),
		client: newHTTPClient(),
	}
}

func (t *gatewayTransport) Do(ctx context.Context, ep Endpoint, req *Request, mode AuthMode) (*Response, error) {
	util.LogDebugf("gateway %s %s", req.Method, req.Path)

	switch strings.ToUpper(req.Method) {
	case http.MethodGet:
		return t.get(ctx, req.Path, req.Query, mode)
	case http.MethodPost:
		return t.post(ctx, req.Path, req.Body, mode)
	case http.MethodPut:
		return t.put(ctx, req.Path, req.Body, mode)
	case http.MethodPatch:
		return t.patch(ctx, req.Path, req.Body, mode)
	case http.MethodDelete:
		return t.delete(ctx, req.Path, mode)
	default:
		return nil, fmt.Errorf("unsupported method %q", req.Method)
	}
}

func (t *gatewayTransport) get(ctx context.Context, path string, query map[string][]string, mode AuthMode) (*Response, error) {
	return issue(ctx, t.client, t.cfg.APIBaseURL(),
		&Request{Method: http.MethodGet, Path: path, Query: query}, mode, t.creds)
}

func (t *gatewayTransport) post(ctx context.Context, path string, body []byte, mode AuthMode) (*Response, error) {
	return issue(ctx, t.client, t.cfg.APIBaseURL(),
		&Request{Method: http.MethodPost, Path: path, Body: body}, mode, t.creds)
}

func (t *gatewayTransport) put(ctx context.Context, path string, body []byte, mode AuthMode) (*Response, error) {
	return issue(ctx, t.client, t.cfg.APIBaseURL(),
		&Request{Method: http.MethodPut, Path: path, Body: body}, mode, t.creds)
}

func (t *gatewayTransport) patch(ctx context.Context, path string, body []byte, mode AuthMode) (*Response, error) {
	return issue(ctx, t.client, t.cfg.APIBaseURL(),
		&Request{Method: http.MethodPatch, Path: path, Body: body}, mode, t.creds)
}

func (t *gatewayTransport) delete(ctx context.Context, path string, mode AuthMode) (*Response, error) {
	return issue(ctx, t.client, t.cfg.APIBaseURL(),
		&Request{Method: http.MethodDelete, Path: path}, mode, t.creds)
}
