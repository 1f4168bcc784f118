// Copyright (c) 2026 Aperture. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Session cookie configuration.
  - Gallery: ordering and upload limits.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "aperture-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Uploads arrive as a single JSON body, so this is generous.
	DefaultReadTimeout = 60 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 60 * time.Second

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

// # Authentication

const (
	// SessionIssuer is the standard 'iss' claim in session tokens.
	SessionIssuer = "aperture.gallery"

	// SessionCookieName is the name of the admin session cookie.
	SessionCookieName = "aperture_session"

	// SessionTTL is how long an admin session stays valid.
	SessionTTL = 7 * 24 * time.Hour
)

// # HTTP Headers

const (
	HeaderXRequestID = "X-Request-ID"
)

// # Gallery

const (
	// MaxUploadBytes is the decoded upload size ceiling (10 MB).
	// Enforced before any call to the blob store.
	MaxUploadBytes = 10 * 1024 * 1024

	// ColumnCount is the number of masonry columns in the public gallery.
	ColumnCount = 3

	// ColumnOrderStride reserves an order range per column so a column can
	// hold up to ColumnOrderStride-1 images without colliding with the next
	// column's range.
	ColumnOrderStride = 1000
)

// # Redis Keys

const (
	RedisKeyImages     = "aperture:images"
	RedisKeyCredential = "aperture:admin_credential"
)
