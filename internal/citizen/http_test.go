// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package citizen_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ademarli/municipality-gateway/internal/citizen"
	"github.com/ademarli/municipality-gateway/internal/platform/ctxkey"
	"github.com/ademarli/municipality-gateway/internal/session"
	"github.com/ademarli/municipality-gateway/internal/upstream"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withSession simulates the route guard by injecting a fixed session.
func withSession(sess *session.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := context.WithValue(request.Context(), ctxkey.KeySession, sess)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// newCitizenRouter wires a citizen handler against a fake upstream and
// returns the router plus a counter of forwarded requests.
func newCitizenRouter(t *testing.T, upstreamHandler http.HandlerFunc) (chi.Router, *atomic.Int64) {
	t.Helper()

	var forwarded atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		forwarded.Add(1)
		upstreamHandler(writer, request)
	}))
	t.Cleanup(server.Close)

	api := upstream.NewClient(server.URL, discardLogger())
	service := citizen.NewService(api, nil, discardLogger())
	handler := citizen.NewHandler(service, nil)

	router := chi.NewRouter()
	router.Use(withSession(&session.Session{
		Token:  "citizen-token",
		Claims: &session.Claims{UserID: 7, Roles: []string{"CITIZEN"}},
	}))
	handler.RegisterRoutes(router)

	return router, &forwarded
}

/*
TestCreateComplaint_ValidationShortCircuits checks that a payload the portal
form would reject is blocked in the gateway with field details — and that the
upstream never sees the request.
*/
func TestCreateComplaint_ValidationShortCircuits(t *testing.T) {
	router, forwarded := newCitizenRouter(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusCreated)
	})

	tests := []struct {
		name      string
		payload   string
		wantField string
	}{
		{
			name:      "title_one_short_of_minimum",
			payload:   `{"departmentId":1,"categoryId":2,"title":"123456789","description":"ok"}`,
			wantField: "title",
		},
		{
			name:      "unselected_department",
			payload:   `{"departmentId":0,"categoryId":2,"title":"A long enough title","description":""}`,
			wantField: "departmentId",
		},
		{
			name:      "unselected_category",
			payload:   `{"departmentId":3,"categoryId":0,"title":"A long enough title","description":""}`,
			wantField: "categoryId",
		},
		{
			name:      "oversized_description",
			payload:   `{"departmentId":1,"categoryId":2,"title":"A long enough title","description":"` + strings.Repeat("x", 2001) + `"}`,
			wantField: "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/complaints", strings.NewReader(tt.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			var envelope struct {
				Code    string `json:"code"`
				Details []struct {
					Field string `json:"field"`
				} `json:"details"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
			require.NotEmpty(t, envelope.Details)
			assert.Equal(t, tt.wantField, envelope.Details[0].Field)
		})
	}

	assert.Equal(t, int64(0), forwarded.Load(), "rejected payloads must never reach the upstream")
}

/*
TestCreateComplaint_ForwardsValidPayload checks the pass-through path: a
valid submission reaches the upstream with the bearer token attached and the
created complaint flows back.
*/
func TestCreateComplaint_ForwardsValidPayload(t *testing.T) {
	router, forwarded := newCitizenRouter(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/citizen/complaints", request.URL.Path)
		assert.Equal(t, "Bearer citizen-token", request.Header.Get("Authorization"))

		writer.WriteHeader(http.StatusCreated)
		_, _ = writer.Write([]byte(`{"id":12,"trackingCode":"MG-2026-000012","title":"Broken bench in Central Park","status":"NEW"}`))
	})

	payload := `{"departmentId":1,"categoryId":2,"title":"Broken bench in Central Park","description":"The seat slats are missing."}`
	request := httptest.NewRequest(http.MethodPost, "/complaints", strings.NewReader(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, int64(1), forwarded.Load())

	var envelope struct {
		Data struct {
			ID           int64  `json:"id"`
			TrackingCode string `json:"trackingCode"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, int64(12), envelope.Data.ID)
	assert.Equal(t, "MG-2026-000012", envelope.Data.TrackingCode)
}

/*
TestMine_ForwardsPagination checks that the list endpoint forwards clamped
paging parameters and returns the Spring envelope untouched inside data.
*/
func TestMine_ForwardsPagination(t *testing.T) {
	router, _ := newCitizenRouter(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/citizen/complaints/my", request.URL.Path)
		assert.Equal(t, "2", request.URL.Query().Get("page"))
		assert.Equal(t, "10", request.URL.Query().Get("size"))

		_, _ = writer.Write([]byte(`{"content":[{"id":1,"title":"t","status":"NEW"}],"totalElements":21,"totalPages":3,"number":2,"size":10}`))
	})

	request := httptest.NewRequest(http.MethodGet, "/complaints/my?page=2&size=10", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data struct {
			TotalElements int64 `json:"totalElements"`
			Number        int   `json:"number"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, int64(21), envelope.Data.TotalElements)
	assert.Equal(t, 2, envelope.Data.Number)
}

/*
TestDetail_NonNumericID checks that a malformed path segment is rejected
locally as a validation error.
*/
func TestDetail_NonNumericID(t *testing.T) {
	router, forwarded := newCitizenRouter(t, func(writer http.ResponseWriter, request *http.Request) {})

	request := httptest.NewRequest(http.MethodGet, "/complaints/abc", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, int64(0), forwarded.Load())
}

/*
TestNotifications_MarkRead checks the PATCH forwarding for the inbox.
*/
func TestNotifications_MarkRead(t *testing.T) {
	router, forwarded := newCitizenRouter(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPatch, request.Method)
		assert.Equal(t, "/api/citizen/notifications/5/read", request.URL.Path)
		writer.WriteHeader(http.StatusNoContent)
	})

	request := httptest.NewRequest(http.MethodPatch, "/notifications/5/read", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, int64(1), forwarded.Load())
}
