// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package upstream_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademarli/municipality-gateway/internal/platform/apperr"
	"github.com/ademarli/municipality-gateway/internal/platform/constants"
	"github.com/ademarli/municipality-gateway/internal/upstream"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(serverURL string) *upstream.Client {
	return upstream.NewClient(serverURL, discardLogger())
}

/*
TestClient_BearerInjection checks the request-side contract: the token
travels as an Authorization header when present and is absent otherwise.
*/
func TestClient_BearerInjection(t *testing.T) {
	var gotAuthorization string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotAuthorization = request.Header.Get("Authorization")
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newClient(server.URL)

	t.Run("with_token", func(t *testing.T) {
		require.NoError(t, client.Get(context.Background(), "/api/citizen/complaints/my", nil, "my-token", nil))
		assert.Equal(t, "Bearer my-token", gotAuthorization)
	})

	t.Run("anonymous", func(t *testing.T) {
		require.NoError(t, client.Get(context.Background(), "/api/public/feed", nil, "", nil))
		assert.Empty(t, gotAuthorization)
	})
}

/*
TestClient_DecodesResponse checks the happy-path JSON round-trip.
*/
func TestClient_DecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "Pothole on Main St", body["title"])

		writer.WriteHeader(http.StatusCreated)
		_, _ = writer.Write([]byte(`{"id": 12, "trackingCode": "MG-2026-000012"}`))
	}))
	defer server.Close()

	var out struct {
		ID           int64  `json:"id"`
		TrackingCode string `json:"trackingCode"`
	}

	client := newClient(server.URL)
	err := client.Post(context.Background(), "/api/citizen/complaints", "tok",
		map[string]string{"title": "Pothole on Main St"}, &out)

	require.NoError(t, err)
	assert.Equal(t, int64(12), out.ID)
	assert.Equal(t, "MG-2026-000012", out.TrackingCode)
}

/*
TestClient_ErrorBodyPriority checks the message extraction chain, shape by
shape, in its strict priority order.
*/
func TestClient_ErrorBodyPriority(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    string
	}{
		{
			name:        "plain_json_string",
			status:      http.StatusNotFound,
			body:        `"Tracking code not found"`,
			wantMessage: "Tracking code not found",
			wantCode:    "UPSTREAM_ERROR",
		},
		{
			name:        "field_errors_joined_sorted",
			status:      http.StatusBadRequest,
			body:        `{"fieldErrors":{"title":"Too short","categoryId":"Unknown category"},"message":"ignored"}`,
			wantMessage: "categoryId: Unknown category • title: Too short",
			wantCode:    "UPSTREAM_ERROR",
		},
		{
			name:        "message_field",
			status:      http.StatusConflict,
			body:        `{"message":"Category is still referenced","code":"CATEGORY_IN_USE"}`,
			wantMessage: "Category is still referenced",
			wantCode:    "CATEGORY_IN_USE",
		},
		{
			name:        "code_only",
			status:      http.StatusUnprocessableEntity,
			body:        `{"code":"ILLEGAL_TRANSITION"}`,
			wantMessage: "ILLEGAL_TRANSITION",
			wantCode:    "ILLEGAL_TRANSITION",
		},
		{
			name:        "empty_body_falls_back_to_status_text",
			status:      http.StatusServiceUnavailable,
			body:        "",
			wantMessage: "Service Unavailable",
			wantCode:    "UPSTREAM_ERROR",
		},
		{
			name:        "html_error_page_falls_back_to_status_text",
			status:      http.StatusBadGateway,
			body:        "<html><body>proxy error</body></html>",
			wantMessage: "Bad Gateway",
			wantCode:    "UPSTREAM_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(tt.status)
				_, _ = writer.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := newClient(server.URL).Get(context.Background(), "/api/public/feed", nil, "", nil)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.status, appError.HTTPStatus)
			assert.Equal(t, tt.wantMessage, appError.Message)
			assert.Equal(t, tt.wantCode, appError.Code)
		})
	}
}

/*
TestClient_SessionExpiryTagging checks the 401 split: auth-bootstrap paths
surface a credential failure, every other path is tagged as session expiry.
*/
func TestClient_SessionExpiryTagging(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"message":"Unauthorized"}`))
	}))
	defer server.Close()

	client := newClient(server.URL)

	tests := []struct {
		name        string
		path        string
		wantExpired bool
	}{
		{"login_is_credential_failure", constants.UpstreamLoginPath, false},
		{"register_is_credential_failure", constants.UpstreamRegisterPath, false},
		{"citizen_path_is_expiry", "/api/citizen/complaints/my", true},
		{"admin_path_is_expiry", "/api/admin/categories", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.Get(context.Background(), tt.path, nil, "stale-token", nil)
			require.Error(t, err)

			assert.Equal(t, tt.wantExpired, upstream.IsSessionExpired(err))

			// The HTTP mapping survives the tagging wrapper in both cases.
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, http.StatusUnauthorized, appError.HTTPStatus)
		})
	}
}

/*
TestClient_TransportFailure checks that an unreachable upstream maps to 502
UPSTREAM_UNAVAILABLE rather than surfacing a raw transport error.
*/
func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // deliberately dead

	err := newClient(server.URL).Get(context.Background(), "/api/public/feed", nil, "", nil)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadGateway, appError.HTTPStatus)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", appError.Code)
	assert.False(t, upstream.IsSessionExpired(err))
}

// recordingExpirer counts forced teardowns.
type recordingExpirer struct {
	calls int
}

func (e *recordingExpirer) Expire(writer http.ResponseWriter, request *http.Request) {
	e.calls++
	http.Redirect(writer, request, constants.LoginRoute, http.StatusFound)
}

/*
TestRespondError checks the handler-side split: expiry errors trigger the
teardown redirect, everything else renders the JSON error envelope.
*/
func TestRespondError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == constants.UpstreamLoginPath {
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		writer.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newClient(server.URL)

	t.Run("expired_session_redirects", func(t *testing.T) {
		err := client.Get(context.Background(), "/api/citizen/notifications", nil, "stale", nil)
		require.Error(t, err)

		expirer := &recordingExpirer{}
		recorder := httptest.NewRecorder()
		upstream.RespondError(recorder, httptest.NewRequest(http.MethodGet, "/", nil), err, expirer)

		assert.Equal(t, 1, expirer.calls)
		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, constants.LoginRoute, recorder.Header().Get("Location"))
	})

	t.Run("credential_failure_renders_envelope", func(t *testing.T) {
		err := client.Post(context.Background(), constants.UpstreamLoginPath, "", map[string]string{}, nil)
		require.Error(t, err)

		expirer := &recordingExpirer{}
		recorder := httptest.NewRecorder()
		upstream.RespondError(recorder, httptest.NewRequest(http.MethodPost, "/", nil), err, expirer)

		assert.Zero(t, expirer.calls)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		var envelope map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "Invalid credentials", envelope["error"])
	})
}
