package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datahound/hound/internal/config"
	"github.com/datahound/hound/internal/util"
)

func TestDispatcherTimeRange(t *testing.T) {
	cfg := transportConfig(t, config.TransportGateway, "http://127.0.0.1:0")
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	fromMs, toMs, err := d.TimeRange("7d", "now")
	require.NoError(t, err)
	assert.Equal(t, int64(7*86400*1000), toMs-fromMs)
	assert.Zero(t, fromMs%1000)
	assert.Zero(t, toMs%1000)
}

func TestDispatcherTimeRangeFailsFast(t *testing.T) {
	cfg := transportConfig(t, config.TransportGateway, "http://127.0.0.1:0")
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	var parseErr *util.TimeParseError

	_, _, err = d.TimeRange("garbage", "now")
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "garbage", parseErr.Input)

	_, _, err = d.TimeRange("now", "nonsense")
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "nonsense", parseErr.Input)
}

func TestDispatcherAuthFailureNeverReachesNetwork(t *testing.T) {
	server, seen := newRecordingServer(t, http.StatusOK, `{}`)
	cfg := transportConfig(t, config.TransportGateway, server.URL)
	cfg.APIKey = ""
	cfg.AppKey = ""
	cfg.AccessToken = ""
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	ep := NewEndpoint(http.MethodGet, "/api/v1/monitor")
	_, err = d.Do(context.Background(), ep, &Request{Method: http.MethodGet, Path: "/api/v1/monitor"})
	assert.ErrorIs(t, err, ErrNoCredentials)
	assert.Empty(t, *seen)
}

func TestDispatcherTimeParseFailureNeverReachesNetwork(t *testing.T) {
	server, seen := newRecordingServer(t, http.StatusOK, `{}`)
	cfg := transportConfig(t, config.TransportGateway, server.URL)
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	_, err = d.DoWindowed(context.Background(), "bogus", "now",
		func(fromMs, toMs int64) (Endpoint, *Request, error) {
			t.Fatal("builder must not run when time resolution fails")
			return Endpoint{}, nil, nil
		})

	var parseErr *util.TimeParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Empty(t, *seen)
}

func TestDispatcherEndToEndWindowed(t *testing.T) {
	// A windowed dispatch with from=7d, to=now and bearer credentials
	// must produce a request whose instants differ by exactly seven
	// days of milliseconds and carry exactly one Authorization header.
	server, seen := newRecordingServer(t, http.StatusOK, `{"events":[]}`)
	cfg := transportConfig(t, config.TransportGateway, server.URL)
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	body, err := d.DoWindowed(context.Background(), "7d", "now",
		func(fromMs, toMs int64) (Endpoint, *Request, error) {
			query := url.Values{}
			query.Set("from", strconv.FormatInt(fromMs, 10))
			query.Set("to", strconv.FormatInt(toMs, 10))
			return NewEndpoint(http.MethodGet, "/api/v1/events"),
				&Request{Method: http.MethodGet, Path: "/api/v1/events", Query: query}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, `{"events":[]}`, string(body))

	require.Len(t, *seen, 1)
	got := (*seen)[0]

	fromMs, err := strconv.ParseInt(got.Query.Get("from"), 10, 64)
	require.NoError(t, err)
	toMs, err := strconv.ParseInt(got.Query.Get("to"), 10, 64)
	require.NoError(t, err)
	assert.Equal(t, int64(7*86400*1000), toMs-fromMs)

	assert.Len(t, got.Headers.Values("Authorization"), 1)
	assert.Equal(t, "Bearer test-token", got.Headers.Get("Authorization"))
	assert.Empty(t, got.Headers.Get("DD-API-KEY"))
	assert.Empty(t, got.Headers.Get("DD-APPLICATION-KEY"))
}

func TestDispatcherRestrictedEndpointWithBearerOnly(t *testing.T) {
	server, seen := newRecordingServer(t, http.StatusOK, `{}`)
	cfg := transportConfig(t, config.TransportGateway, server.URL)
	cfg.APIKey = ""
	cfg.AppKey = ""
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	ep := NewEndpoint(http.MethodPost, "/api/v2/logs/events/search")
	_, err = d.Do(context.Background(), ep,
		&Request{Method: http.MethodPost, Path: "/api/v2/logs/events/search", Body: []byte(`{}`)})

	var reqErr *EndpointRequiresAPIKeyError
	require.ErrorAs(t, err, &reqErr)
	assert.Empty(t, *seen, "restricted endpoint must be rejected locally, not sent and failed remotely")
}

func TestDispatcherPropagatesAPIError(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusNotFound, `{"errors":["Monitor not found"]}`)
	cfg := transportConfig(t, config.TransportGateway, server.URL)
	d, err := NewDispatcher(cfg)
	require.NoError(t, err)

	ep := NewEndpoint(http.MethodGet, "/api/v1/monitor/123")
	_, err = d.Do(context.Background(), ep, &Request{Method: http.MethodGet, Path: "/api/v1/monitor/123"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Monitor not found")
}
