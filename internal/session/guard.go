// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package session

import (
	"context"
	"net/http"

	"github.com/ademarli/municipality-gateway/internal/platform/constants"
	"github.com/ademarli/municipality-gateway/internal/platform/ctxkey"
)

// # Session Sink

// Sink is a shared cell that hands the session a guard resolves back to
// middleware wrapped around it. The guard injects the session into a derived
// context an outer middleware never sees; a sink planted before the guard
// runs crosses that boundary.
type Sink struct {
	Session *Session
}

// WithSink returns a context carrying sink for a downstream guard to fill.
func WithSink(ctx context.Context, sink *Sink) context.Context {
	return context.WithValue(ctx, ctxkey.KeySessionSink, sink)
}

// report fills the request's sink, when one was planted.
func report(ctx context.Context, sess *Session) {
	if sink, ok := ctx.Value(ctxkey.KeySessionSink).(*Sink); ok {
		sink.Session = sess
	}
}

// # Route Guard

// RequireRoles guards a route subtree behind the current session state.
//
// # Decision Table
//
//	no token                          -> 302 to /auth/login
//	roles given, none satisfied       -> 302 to /403
//	otherwise                         -> inject Session, serve
//
// The decision is purely local and synchronous: no upstream round-trip, no
// stored transitions — the guard is stateless and re-evaluated per request.
// A token that is present but already expired upstream passes the guard and
// is caught by the first forwarded API call instead.
//
// An empty role list requires authentication only.
func RequireRoles(manager *Manager, roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			sess := manager.Load(request)

			// ── 1. Authentication ─────────────────────────────────────────────
			if !sess.Authenticated() {
				http.Redirect(writer, request, constants.LoginRoute, http.StatusFound)
				return
			}

			// ── 2. Authorization ──────────────────────────────────────────────
			// Undecodable claims fail every role check and land here too.
			if len(roles) > 0 && !HasAnyRole(sess.Claims, roles...) {
				http.Redirect(writer, request, constants.ForbiddenRoute, http.StatusFound)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeySession, &sess)
			report(ctx, &sess)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// Attach resolves the session on every request without gating anything.
//
// Public routes use it so that handlers (e.g. the feed's rating control) can
// distinguish anonymous from signed-in browsers.
func Attach(manager *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			sess := manager.Load(request)
			ctx := context.WithValue(request.Context(), ctxkey.KeySession, &sess)
			report(ctx, &sess)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// FromContext retrieves the [*Session] injected by [RequireRoles] or [Attach].
//
// # Returns
//   - The session, or nil when no guard ran on this route.
func FromContext(ctx context.Context) *Session {
	sess, ok := ctx.Value(ctxkey.KeySession).(*Session)
	if !ok {
		return nil
	}
	return sess
}
