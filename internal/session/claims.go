// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

/*
Package session owns the browser session lifecycle for the gateway.

It persists the upstream-issued access token server-side (keyed by an opaque
cookie), decodes the token payload for navigation-level decisions, and guards
role-scoped route subtrees.

# Trust Model

The token payload is decoded WITHOUT signature verification. The decoded claims
drive navigation only (which subtree a browser may enter); real authorization is
re-checked by the upstream API on every forwarded request, which rejects stale
or tampered tokens with a 401. The gateway reacts to that rejection by tearing
the session down (see [Manager.Expire]).
*/
package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// # Decoded Claims

// Claims is the unverified payload of an upstream access token.
//
// Absent fields stay zero-valued; a token that fails to decode yields no
// Claims at all rather than a partial struct.
type Claims struct {
	jwt.RegisteredClaims

	// Roles is the set of role names granted to the account. The observed
	// domain assigns exactly one, but the wire format is a list.
	Roles []string `json:"roles"`

	// UserID is the upstream numeric account identifier.
	UserID int64 `json:"userId"`

	// Email is the account's primary contact address.
	Email string `json:"email"`
}

// DecodeClaims performs a best-effort, non-verifying decode of the token's
// payload segment.
//
// # Failure Semantics
//
// Any malformation (wrong segment count, bad base64, bad JSON) yields nil.
// Decode failure must never propagate as an error: a session holding an
// undecodable token is simply treated as unauthenticated while the raw token
// string stays in storage untouched.
func DecodeClaims(token string) *Claims {
	claims := &Claims{}

	// ParseUnverified splits the three dot-separated segments and unmarshals
	// the middle one. The signature segment is ignored entirely.
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	return claims
}

// # Roles

// Role is the closed set of authorization levels known to the gateway.
//
// Using a named type instead of free-form strings makes an unknown or
// misspelled role a compile-time error at every call site. Unknown role names
// arriving inside a token simply never match any constant.
type Role string

const (
	// RoleCitizen submits and tracks complaints.
	RoleCitizen Role = "CITIZEN"

	// RoleAgent triages complaints for their department.
	RoleAgent Role = "AGENT"

	// RoleAdmin manages categories, departments, and membership.
	RoleAdmin Role = "ADMIN"
)

// HasRole reports whether the decoded claims grant the given role.
//
// # Fails Closed
//
// Nil claims, a missing role list, and an empty role list all yield false.
func HasRole(claims *Claims, role Role) bool {
	if claims == nil {
		return false
	}

	for _, name := range claims.Roles {
		if name == string(role) {
			return true
		}
	}

	return false
}

// HasAnyRole reports whether the claims grant at least one of the given roles.
// An empty requirement list yields false; callers treat "no roles required"
// before reaching this predicate.
func HasAnyRole(claims *Claims, roles ...Role) bool {
	for _, role := range roles {
		if HasRole(claims, role) {
			return true
		}
	}
	return false
}
