// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademarli/municipality-gateway/internal/platform/middleware"
	"github.com/ademarli/municipality-gateway/internal/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// signedInCookie establishes a session for the given claims payload and
// returns the resulting browser cookie.
func signedInCookie(t *testing.T, manager *session.Manager, payload map[string]any) *http.Cookie {
	t.Helper()

	encode := func(v any) string {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(raw)
	}
	token := encode(map[string]string{"alg": "HS256", "typ": "JWT"}) +
		"." + encode(payload) +
		"." + base64.RawURLEncoding.EncodeToString([]byte("sig"))

	recorder := httptest.NewRecorder()
	err := manager.Establish(context.Background(), recorder, session.AuthResponse{AccessToken: token, TokenType: "Bearer"})
	require.NoError(t, err)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

/*
TestStructuredLogger_UserIDFromGuard checks that the finished-request log line
carries the account identifier when a route guard resolved an authenticated
session, even though the guard injects that session into a derived context the
logging middleware never observes.
*/
func TestStructuredLogger_UserIDFromGuard(t *testing.T) {
	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuffer, nil))

	manager := session.NewManager(session.NewMemoryTokenStore(), time.Hour, false, discardLogger())
	cookie := signedInCookie(t, manager, map[string]any{"userId": 42, "roles": []string{"CITIZEN"}})

	handler := middleware.StructuredLogger(logger)(
		session.Attach(manager)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		})),
	)

	request := httptest.NewRequest(http.MethodGet, "/api/public/feed", nil)
	request.AddCookie(cookie)
	handler.ServeHTTP(httptest.NewRecorder(), request)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logBuffer.Bytes(), &entry))
	assert.Equal(t, float64(42), entry["user_id"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
}

/*
TestStructuredLogger_AnonymousHasNoUserID checks that requests without a
resolvable session log no account identifier at all.
*/
func TestStructuredLogger_AnonymousHasNoUserID(t *testing.T) {
	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuffer, nil))

	manager := session.NewManager(session.NewMemoryTokenStore(), time.Hour, false, discardLogger())

	handler := middleware.StructuredLogger(logger)(
		session.Attach(manager)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		})),
	)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/public/feed", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logBuffer.Bytes(), &entry))
	_, present := entry["user_id"]
	assert.False(t, present)
}
