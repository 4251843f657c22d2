// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

/*
Package constants provides centralized, immutable values for the entire gateway.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Upstream: Timeouts and path prefixes for the municipal REST API.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Session: Cookie configuration and Redis key taxonomy.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the handler logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "municipality-gateway"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle,
	// including the forwarded upstream call.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Upstream API

const (
	// UpstreamRequestTimeout bounds a single round-trip to the municipal REST API.
	UpstreamRequestTimeout = 15 * time.Second

	// UpstreamLoginPath and UpstreamRegisterPath are the auth-bootstrap endpoints.
	// A 401 from these two paths is a credential failure, never a session expiry.
	UpstreamLoginPath    = "/api/auth/login"
	UpstreamRegisterPath = "/api/auth/register"
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session

const (
	// SessionCookieName is the browser cookie holding the opaque session ID.
	SessionCookieName = "mgw_session"

	// SessionCookiePath keeps the cookie valid for the whole site so that
	// navigation-level guards can read it on every route.
	SessionCookiePath = "/"

	// DefaultSessionTTL is how long a session record lives in Redis when the
	// auth response carries no expiry hint.
	DefaultSessionTTL = 12 * time.Hour

	// LoginRoute and ForbiddenRoute are the navigation targets used by the
	// route guard and the forced-logout path.
	LoginRoute     = "/auth/login"
	ForbiddenRoute = "/403"
)

// # Redis Prefixes (Key Taxonomy)

const (
	RedisPrefixSession       = "session:token:"
	RedisPrefixFeedbackStats = "feedback:stats:"
)

// # Feedback Caching

const (
	// FeedbackStatsTTL bounds how long an authoritative rating aggregate is cached.
	FeedbackStatsTTL = 5 * time.Minute

	// FeedbackProvisionalTTL bounds the lifetime of an optimistic, locally
	// computed aggregate that has not yet been confirmed upstream.
	FeedbackProvisionalTTL = 30 * time.Second
)

// # Catalog Caching

const (
	// CatalogCacheTTL is the in-process cache lifetime for the public
	// department/category catalog, which changes rarely.
	CatalogCacheTTL = 5 * time.Minute

	// CatalogCacheSweep is how often expired catalog entries are purged.
	CatalogCacheSweep = 10 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
)
