// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

/*
Package auth bridges browser credentials to upstream-issued access tokens.

The gateway never verifies passwords itself. Login and register are forwarded
verbatim to the municipal API; on success the returned bearer token is stowed
server-side and the browser receives only an opaque session cookie (see the
session package). Logout destroys the server-side record and expires the
cookie.
*/
package auth

import "github.com/ademarli/municipality-gateway/internal/session"

// LoginRequest mirrors the portal's login form.
//
// EmailOrPhone accepts either identifier; the upstream resolves which one it
// was handed.
type LoginRequest struct {
	EmailOrPhone string `json:"emailOrPhone"`
	Password     string `json:"password"`
}

// RegisterRequest mirrors the portal's citizen sign-up form.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// SessionView is what the browser learns about its own session. The bearer
// token is deliberately absent: it never crosses back over the cookie
// boundary.
type SessionView struct {
	Authenticated bool     `json:"authenticated"`
	UserID        int64    `json:"userId,omitempty"`
	Email         string   `json:"email,omitempty"`
	Roles         []string `json:"roles,omitempty"`
}

// NewSessionView projects a resolved session into its browser-safe shape.
func NewSessionView(sess *session.Session) SessionView {
	if sess == nil || !sess.Authenticated() || sess.Claims == nil {
		return SessionView{Authenticated: sess != nil && sess.Authenticated()}
	}

	return SessionView{
		Authenticated: true,
		UserID:        sess.Claims.UserID,
		Email:         sess.Claims.Email,
		Roles:         sess.Claims.Roles,
	}
}
