// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package session_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademarli/municipality-gateway/internal/session"
)

// makeToken builds a structurally valid JWT with the given payload and a
// garbage signature. Decoding never verifies, so the signature content is
// irrelevant.
func makeToken(t *testing.T, payload map[string]any) string {
	t.Helper()

	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	require.NoError(t, err)

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	encode := base64.RawURLEncoding.EncodeToString
	return encode(header) + "." + encode(body) + "." + encode([]byte("sig"))
}

/*
TestDecodeClaims_Valid checks payload extraction from a well-formed token.
*/
func TestDecodeClaims_Valid(t *testing.T) {
	token := makeToken(t, map[string]any{
		"sub":    "42",
		"userId": 42,
		"email":  "citizen@example.com",
		"roles":  []string{"CITIZEN"},
	})

	claims := session.DecodeClaims(token)
	require.NotNil(t, claims)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "citizen@example.com", claims.Email)
	assert.Equal(t, []string{"CITIZEN"}, claims.Roles)
}

/*
TestDecodeClaims_Malformed checks that every malformation yields nil rather
than an error or a partial struct.
*/
func TestDecodeClaims_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"two_segments", "abc.def"},
		{"four_segments", "a.b.c.d"},
		{"bad_base64_payload", "eyJhbGciOiJIUzI1NiJ9.%%%.sig"},
		{"payload_not_json", "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.sig"},
		{"opaque_string", "not-a-jwt-at-all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, session.DecodeClaims(tt.token))
		})
	}
}

/*
TestHasRole covers the fail-closed predicate.
*/
func TestHasRole(t *testing.T) {
	tests := []struct {
		name     string
		claims   *session.Claims
		role     session.Role
		expected bool
	}{
		{"nil_claims", nil, session.RoleCitizen, false},
		{"no_roles", &session.Claims{}, session.RoleCitizen, false},
		{"empty_role_list", &session.Claims{Roles: []string{}}, session.RoleCitizen, false},
		{"match", &session.Claims{Roles: []string{"CITIZEN"}}, session.RoleCitizen, true},
		{"other_role", &session.Claims{Roles: []string{"AGENT"}}, session.RoleCitizen, false},
		{"case_sensitive", &session.Claims{Roles: []string{"citizen"}}, session.RoleCitizen, false},
		{"unknown_name_in_token", &session.Claims{Roles: []string{"SUPERUSER"}}, session.RoleAdmin, false},
		{"second_of_many", &session.Claims{Roles: []string{"AGENT", "ADMIN"}}, session.RoleAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, session.HasRole(tt.claims, tt.role))
		})
	}
}

/*
TestHasAnyRole checks the disjunction used by shared route subtrees.
*/
func TestHasAnyRole(t *testing.T) {
	agent := &session.Claims{Roles: []string{"AGENT"}}

	assert.True(t, session.HasAnyRole(agent, session.RoleAgent, session.RoleAdmin))
	assert.False(t, session.HasAnyRole(agent, session.RoleAdmin))
	assert.False(t, session.HasAnyRole(agent))
	assert.False(t, session.HasAnyRole(nil, session.RoleAgent, session.RoleAdmin))
}
