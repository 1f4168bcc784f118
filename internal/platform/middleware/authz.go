// Copyright (c) 2026 Aperture. All rights reserved.

// Session authentication middleware.
//
// # Architecture
//
// A front proxy may gate /admin/* page routes with the same cookie, but the
// API performs its own verification here — the proxy check is convenience,
// the API check is the contract.
package middleware

import (
	"net/http"

	"aperture/internal/platform/apperr"
	"aperture/internal/platform/constants"
	"aperture/internal/platform/ctxutil"
	"aperture/internal/platform/respond"
	"aperture/internal/platform/sec"
)

// SessionVerifier defines the interface needed to verify session cookies.
//
// # Why an interface?
//
// Defining SessionVerifier here decouples the middleware from the sec
// implementation, allowing us to easily inject mocks during unit testing.
type SessionVerifier interface {
	Verify(tokenStr string) (*sec.SessionClaims, error)
}

// Authenticate extracts and verifies the session cookie.
//
// # Flow
//  1. Check for the session cookie.
//  2. If absent, request proceeds as anonymous.
//  3. If present, verify the signed token via [SessionVerifier].
//  4. Inject [*sec.SessionClaims] into the request context for downstream use.
//
// An invalid or expired cookie also proceeds as anonymous rather than
// erroring: public routes must stay readable with a stale cookie, and
// protected routes reject anonymous requests via [RequireSession].
func Authenticate(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := verifier.Verify(cookie.Value)
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithSession(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireSession blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.SessionClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetSession(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Unauthorized"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
