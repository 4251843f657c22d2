// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package session

import (
	"context"
	"time"
)

// # Session Types

// AuthResponse is the upstream auth-bootstrap payload.
//
// The upstream API has shipped two shapes over time: `accessToken` (current)
// and `token` (legacy). Both are accepted; `accessToken` wins when both are
// present.
type AuthResponse struct {
	Token            string `json:"token"`
	AccessToken      string `json:"accessToken"`
	TokenType        string `json:"tokenType"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

// BearerToken returns the access token regardless of which field carried it.
// It returns "" when neither field is present.
func (r AuthResponse) BearerToken() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// Record is the server-side session state persisted per cookie ID.
type Record struct {
	// Token is the raw upstream bearer token, stored verbatim.
	Token string `json:"token"`

	// TokenType is the upstream's scheme hint, normally "Bearer".
	TokenType string `json:"token_type,omitempty"`

	// ExpiresInSeconds is the upstream's expiry hint at issue time. It is
	// advisory only; actual expiry is enforced by the upstream rejecting the
	// token.
	ExpiresInSeconds int64 `json:"expires_in_seconds,omitempty"`
}

// Session is the per-request view of the browser's authentication state.
//
// # Invariant
//
// A non-empty Token with nil Claims means the token failed to decode; such a
// session is treated as unauthenticated by the guard, but the token itself is
// never discarded on decode failure.
type Session struct {
	Token  string
	Claims *Claims
}

// Authenticated reports whether a token is present at all.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// UserID returns the numeric account ID from the decoded claims, or 0 when
// the claims are absent or undecodable.
func (s Session) UserID() int64 {
	if s.Claims == nil {
		return 0
	}
	return s.Claims.UserID
}

// # Token Store

// TokenStore persists session records keyed by the opaque cookie ID.
//
// # Why an interface?
//
// Production uses Redis so sessions survive gateway restarts and scale across
// replicas; tests use the in-memory implementation.
type TokenStore interface {
	// Save persists the record under id for at most ttl.
	Save(ctx context.Context, id string, record Record, ttl time.Duration) error

	// Get returns the record for id, or (nil, nil) when the id is unknown
	// or expired. Errors are reserved for storage failures.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes the record. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
