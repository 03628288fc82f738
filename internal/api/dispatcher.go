package api

import (
	"context"

	"github.com/datahound/hound/internal/config"
	"github.com/datahound/hound/internal/util"
)

// Dispatcher is the facade every command goes through: it resolves the
// time range, resolves auth against the endpoint's policy, and issues
// the request on the process-wide transport. Each dispatch is a single
// linear pipeline; any stage error is fatal to the dispatch and a
// time-parse failure never reaches the network.
type Dispatcher struct {
	cfg       *config.Config
	creds     Credentials
	transport Transporter
}

// NewDispatcher builds a dispatcher for the configured transport target.
func NewDispatcher(cfg *config.Config) (*Dispatcher, error) {
	transport, err := NewTransporter(cfg)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{
		cfg:       cfg,
		creds:     CredentialsFrom(cfg),
		transport: transport,
	}, nil
}

// Credentials returns the credentials the dispatcher resolves against.
func (d *Dispatcher) Credentials() Credentials {
	return d.creds
}

// Do resolves auth for the endpoint and dispatches the request,
// returning the raw response body for the formatter.
func (d *Dispatcher) Do(ctx context.Context, ep Endpoint, req *Request) ([]byte, error) {
	mode, err := ResolveAuth(d.creds, ep)
	if err != nil {
		return nil, err
	}
	util.LogDebugf("dispatching %s %s (auth=%s)", ep.Method, ep.Path, mode)

	resp, err := d.transport.Do(ctx, ep, req, mode)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// TimeRange resolves a from/to expression pair to epoch milliseconds,
// failing fast on the first invalid expression.
func (d *Dispatcher) TimeRange(from, to string) (int64, int64, error) {
	fromMs, err := util.ParseTimeToUnixMilli(from)
	if err != nil {
		return 0, 0, err
	}
	toMs, err := util.ParseTimeToUnixMilli(to)
	if err != nil {
		return 0, 0, err
	}
	return fromMs, toMs, nil
}

// DoWindowed resolves the time range, hands the resolved instants to
// build, and dispatches the endpoint and request it returns.
func (d *Dispatcher) DoWindowed(ctx context.Context, from, to string, build func(fromMs, toMs int64) (Endpoint, *Request, error)) ([]byte, error) {
	fromMs, toMs, err := d.TimeRange(from, to)
	if err != nil {
		return nil, err
	}
	ep, req, err := build(fromMs, toMs)
	if err != nil {
		return nil, err
	}
	return d.Do(ctx, ep, req)
}
