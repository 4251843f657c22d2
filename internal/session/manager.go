// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ademarli/municipality-gateway/internal/platform/constants"
	"github.com/ademarli/municipality-gateway/pkg/uuidv7"
)

// # Session Manager

// Manager binds the cookie lifecycle to a [TokenStore].
//
// It is the single owner of session state transitions: establish on login,
// load on every guarded request, clear on logout, expire on upstream 401.
// All components that touch session state receive a *Manager explicitly —
// there is no ambient global.
type Manager struct {
	store      TokenStore
	defaultTTL time.Duration
	secure     bool
	logger     *slog.Logger
}

// NewManager constructs a [Manager].
//
// # Parameters
//   - store: Session record persistence.
//   - defaultTTL: Record lifetime when the auth response has no expiry hint.
//   - secure: Whether issued cookies carry the Secure flag (production).
//   - logger: Structured logger for lifecycle events.
func NewManager(store TokenStore, defaultTTL time.Duration, secure bool, logger *slog.Logger) *Manager {
	if defaultTTL <= 0 {
		defaultTTL = constants.DefaultSessionTTL
	}
	return &Manager{
		store:      store,
		defaultTTL: defaultTTL,
		secure:     secure,
		logger:     logger,
	}
}

/*
Establish persists the token from an upstream auth response and issues the
session cookie.

Description: Accepts both auth-response shapes (`accessToken` or `token`).
When NEITHER field is present the call silently does nothing — callers that
require a session must check [AuthResponse.BearerToken] themselves before
treating the login as successful. The auth handlers do exactly that.

Parameters:
  - context: context.Context
  - writer: http.ResponseWriter (receives the Set-Cookie header)
  - response: AuthResponse

Returns:
  - error: Storage failures only; a token-less response is not an error here
*/
func (manager *Manager) Establish(context context.Context, writer http.ResponseWriter, response AuthResponse) error {

	token := response.BearerToken()
	if token == "" {
		return nil
	}

	ttl := manager.defaultTTL
	if response.ExpiresInSeconds > 0 {
		ttl = time.Duration(response.ExpiresInSeconds) * time.Second
	}

	id := uuidv7.New()

	record := Record{
		Token:            token,
		TokenType:        response.TokenType,
		ExpiresInSeconds: response.ExpiresInSeconds,
	}

	if err := manager.store.Save(context, id, record, ttl); err != nil {
		return err
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    id,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(ttl / time.Second),
		Secure:   manager.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

/*
Load resolves the request's session cookie into a [Session].

Description: A missing cookie, an unknown ID, or a storage failure all yield
the zero Session (anonymous). When a token is found its claims are decoded
best-effort: decode failure leaves Token populated and Claims nil, and does
NOT remove the record from storage.

Parameters:
  - request: *http.Request

Returns:
  - Session: The resolved authentication state (never an error)
*/
func (manager *Manager) Load(request *http.Request) Session {

	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return Session{}
	}

	record, err := manager.store.Get(request.Context(), cookie.Value)
	if err != nil {
		// Storage trouble degrades to anonymous rather than failing the page.
		manager.logger.Warn("session_load_failed", slog.Any("error", err))
		return Session{}
	}

	if record == nil {
		return Session{}
	}

	return Session{
		Token:  record.Token,
		Claims: DecodeClaims(record.Token),
	}
}

/*
Clear destroys the session record and expires the cookie.

Description: Idempotent — clearing an absent or already-cleared session is a
no-op. Used by logout and by the forced teardown in [Manager.Expire].

Parameters:
  - context: context.Context
  - writer: http.ResponseWriter
  - request: *http.Request
*/
func (manager *Manager) Clear(context context.Context, writer http.ResponseWriter, request *http.Request) {

	cookie, err := request.Cookie(constants.SessionCookieName)
	if err == nil && cookie.Value != "" {
		if err := manager.store.Delete(context, cookie.Value); err != nil {
			manager.logger.Warn("session_delete_failed", slog.Any("error", err))
		}
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   manager.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

/*
Expire tears the session down after the upstream rejected its token and sends
the browser back to the login screen.

Description: This is the gateway's equivalent of the SPA's global 401
interceptor: clear storage, expire the cookie, hard-navigate to login.
Auth-bootstrap endpoints never route through here — a 401 from login or
register is a credential error surfaced to the form instead.
*/
func (manager *Manager) Expire(writer http.ResponseWriter, request *http.Request) {
	manager.Clear(request.Context(), writer, request)
	http.Redirect(writer, request, constants.LoginRoute, http.StatusFound)
}
