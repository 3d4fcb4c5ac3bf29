// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers, CSRF cookie and header names.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "harmonia-api"
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

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
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

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXCSRFToken    = "X-CSRFToken"
	HeaderAuthorization = "Authorization"
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "harmonia.app"

	// AccessTokenTTL is how long a staff access token remains valid.
	AccessTokenTTL = 8 * time.Hour

	// MaxLoginFailures is how many wrong passwords an email may submit per window.
	MaxLoginFailures = 5

	// LoginFailureWindow is how long failed attempts are remembered.
	LoginFailureWindow = 15 * time.Minute

	// SessionCookieName carries the access token for browser sessions.
	SessionCookieName = "harmonia_session"
)

// # CSRF

const (
	// CSRFCookieName is the cookie read by the dashboard before unsafe requests.
	CSRFCookieName = "csrftoken"

	// CSRFTokenBytes is the entropy of a freshly issued token.
	CSRFTokenBytes = 32

	// DefaultCSRFTokenTTL is how long an issued token is honoured.
	DefaultCSRFTokenTTL = 12 * time.Hour
)

// # Catalog Defaults

const (
	// DefaultTerritory is applied to shares and deals without an explicit territory.
	DefaultTerritory = "Worldwide"

	// SplitTolerance is the absolute deviation from 100% still treated as complete.
	SplitTolerance = 0.01
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldDetail  = "detail"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCatalog   = "catalog"
	SchemaRights    = "rights"
	SchemaDeals     = "deals"
	SchemaContracts = "contracts"
	SchemaUsers     = "users"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixCSRFToken     = "csrf:token:"
	RedisPrefixLoginFailures = "auth:login_failures:"
)
