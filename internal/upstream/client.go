// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

/*
Package upstream is the gateway's only doorway to the municipal REST API.

Every feature service funnels through [Client], which owns the two cross-
cutting behaviors the SPA's axios interceptors used to provide:

  - Request side: attach `Authorization: Bearer <token>` when a token is
    present; proceed anonymously otherwise (the upstream decides per-route
    whether that is acceptable).
  - Response side: translate non-2xx responses into [apperr.AppError] values,
    and tag a 401 from any endpoint EXCEPT login/register as session expiry
    so the caller tears the local session down (see [RespondError]).

No retries, no queueing, no deduplication: a failed call is terminal for that
user action, exactly as in the browser client this gateway replaces.
*/
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ademarli/municipality-gateway/internal/platform/apperr"
	"github.com/ademarli/municipality-gateway/internal/platform/constants"
	"github.com/ademarli/municipality-gateway/internal/platform/ctxutil"
)

// maxErrorBodyBytes caps how much of an upstream error body is read.
const maxErrorBodyBytes = 64 << 10

// # Client

// Client performs JSON round-trips against the municipal REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a [Client] for the given upstream origin.
//
// The base URL must not end with a slash; paths passed to the verb methods
// start with one.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: constants.UpstreamRequestTimeout,
		},
		logger: logger,
	}
}

// # Verb Helpers

// Get performs a GET request. query may be nil.
func (client *Client) Get(ctx context.Context, path string, query url.Values, token string, out any) error {
	return client.do(ctx, http.MethodGet, path, query, token, nil, out)
}

// Post performs a POST request with an optional JSON body.
func (client *Client) Post(ctx context.Context, path, token string, body, out any) error {
	return client.do(ctx, http.MethodPost, path, nil, token, body, out)
}

// Put performs a PUT request with an optional JSON body.
func (client *Client) Put(ctx context.Context, path, token string, body, out any) error {
	return client.do(ctx, http.MethodPut, path, nil, token, body, out)
}

// Patch performs a PATCH request with an optional JSON body.
func (client *Client) Patch(ctx context.Context, path, token string, body, out any) error {
	return client.do(ctx, http.MethodPatch, path, nil, token, body, out)
}

// Delete performs a DELETE request.
func (client *Client) Delete(ctx context.Context, path, token string) error {
	return client.do(ctx, http.MethodDelete, path, nil, token, nil, nil)
}

// Ping probes upstream reachability for the readiness endpoint.
//
// Any HTTP response counts as reachable — a 404 from the root path still
// proves the service is up; only transport-level failures are errors.
func (client *Client) Ping(ctx context.Context) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+"/", nil)
	if err != nil {
		return err
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("upstream: unreachable: %w", err)
	}
	_ = response.Body.Close()

	return nil
}

// # Round Trip

/*
do executes one upstream round-trip.

Description: Marshals the body (when present), injects the bearer token and
the request correlation ID, and decodes a 2xx JSON response into out. Non-2xx
responses are parsed into an [apperr.AppError]; transport-level failures map
to 502 so the browser can distinguish "service down" from "request rejected".

Parameters:
  - ctx: context.Context (carries the per-request deadline and correlation ID)
  - method, path: Upstream route, path starting with "/"
  - query: Optional query parameters
  - token: Bearer token, or "" for anonymous calls
  - body: Optional request payload (JSON-marshaled)
  - out: Optional response target (JSON-unmarshaled)

Returns:
  - error: nil on 2xx, *apperr.AppError otherwise (session-expiry tagged)
*/
func (client *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {

	target := client.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	// ── 1. Request Assembly ───────────────────────────────────────────────
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperr.Internal(fmt.Errorf("upstream: marshal request body: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperr.Internal(fmt.Errorf("upstream: build request: %w", err))
	}

	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	// Bearer injection: only when a token is actually present.
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	// Forward the correlation ID so gateway and upstream logs line up.
	if rid := ctxutil.GetRequestID(ctx); rid != "" {
		request.Header.Set(constants.HeaderXRequestID, rid)
	}

	// ── 2. Execution ──────────────────────────────────────────────────────
	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Warn("upstream_transport_failure",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return apperr.BadGateway(err)
	}
	defer func() { _ = response.Body.Close() }()

	// ── 3. Error Translation ──────────────────────────────────────────────
	if response.StatusCode < 200 || response.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodyBytes))
		return client.parseError(path, response.StatusCode, raw)
	}

	// ── 4. Response Decoding ──────────────────────────────────────────────
	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return apperr.BadGateway(fmt.Errorf("upstream: decode %s %s: %w", method, path, err))
	}

	return nil
}
