// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package agent_test

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

	"github.com/ademarli/municipality-gateway/internal/agent"
	"github.com/ademarli/municipality-gateway/internal/platform/ctxkey"
	"github.com/ademarli/municipality-gateway/internal/session"
	"github.com/ademarli/municipality-gateway/internal/upstream"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAgentRouter(t *testing.T, upstreamHandler http.HandlerFunc) (chi.Router, *atomic.Int64) {
	t.Helper()

	var forwarded atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		forwarded.Add(1)
		upstreamHandler(writer, request)
	}))
	t.Cleanup(server.Close)

	api := upstream.NewClient(server.URL, discardLogger())
	handler := agent.NewHandler(agent.NewService(api, discardLogger()), nil)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			sess := &session.Session{
				Token:  "agent-token",
				Claims: &session.Claims{UserID: 3, Roles: []string{"AGENT"}},
			}
			ctx := context.WithValue(request.Context(), ctxkey.KeySession, sess)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	})
	handler.RegisterRoutes(router)

	return router, &forwarded
}

/*
TestChangeStatus_ResolutionRequiresPublicAnswer checks the conditional rule:
RESOLVED demands a public answer of useful length, other transitions do not.
*/
func TestChangeStatus_ResolutionRequiresPublicAnswer(t *testing.T) {
	tests := []struct {
		name          string
		payload       string
		wantStatus    int
		wantForwarded int64
	}{
		{
			name:          "resolved_without_answer_rejected",
			payload:       `{"toStatus":"RESOLVED","note":"done"}`,
			wantStatus:    http.StatusBadRequest,
			wantForwarded: 0,
		},
		{
			name:          "resolved_with_short_answer_rejected",
			payload:       `{"toStatus":"RESOLVED","publicAnswer":"fixed"}`,
			wantStatus:    http.StatusBadRequest,
			wantForwarded: 0,
		},
		{
			name:          "resolved_with_answer_forwarded",
			payload:       `{"toStatus":"RESOLVED","publicAnswer":"The pothole was repaired on Tuesday."}`,
			wantStatus:    http.StatusOK,
			wantForwarded: 1,
		},
		{
			name:          "in_review_without_answer_forwarded",
			payload:       `{"toStatus":"IN_REVIEW","note":"assigned to road crew"}`,
			wantStatus:    http.StatusOK,
			wantForwarded: 1,
		},
		{
			name:          "unknown_status_rejected",
			payload:       `{"toStatus":"ARCHIVED"}`,
			wantStatus:    http.StatusBadRequest,
			wantForwarded: 0,
		},
		{
			name:          "oversized_note_rejected",
			payload:       `{"toStatus":"CLOSED","note":"` + strings.Repeat("n", 1001) + `"}`,
			wantStatus:    http.StatusBadRequest,
			wantForwarded: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, forwarded := newAgentRouter(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, "/api/agent/complaints/9/status", request.URL.Path)
				_, _ = writer.Write([]byte(`{"id":9,"status":"RESOLVED"}`))
			})

			request := httptest.NewRequest(http.MethodPost, "/complaints/9/status", strings.NewReader(tt.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantForwarded, forwarded.Load())
		})
	}
}

/*
TestList_FiltersForwarded checks that search text and a valid status filter
reach the upstream query string, and that an unknown status never leaves the
gateway.
*/
func TestList_FiltersForwarded(t *testing.T) {
	t.Run("valid_filters", func(t *testing.T) {
		router, _ := newAgentRouter(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/agent/complaints", request.URL.Path)
			assert.Equal(t, "pothole", request.URL.Query().Get("q"))
			assert.Equal(t, "NEW", request.URL.Query().Get("status"))
			assert.Equal(t, "0", request.URL.Query().Get("page"))

			_, _ = writer.Write([]byte(`{"content":[],"totalElements":0,"totalPages":0,"number":0,"size":20}`))
		})

		request := httptest.NewRequest(http.MethodGet, "/complaints?q=pothole&status=NEW", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("unknown_status_rejected_locally", func(t *testing.T) {
		router, forwarded := newAgentRouter(t, func(writer http.ResponseWriter, request *http.Request) {})

		request := httptest.NewRequest(http.MethodGet, "/complaints?status=BOGUS", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, int64(0), forwarded.Load())
	})
}

/*
TestChangeStatus_UpstreamRejectionPassesThrough checks that a business-rule
rejection (illegal transition) keeps the upstream's status and message.
*/
func TestChangeStatus_UpstreamRejectionPassesThrough(t *testing.T) {
	router, _ := newAgentRouter(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusConflict)
		_, _ = writer.Write([]byte(`{"message":"Cannot reopen a closed complaint"}`))
	})

	payload := `{"toStatus":"IN_REVIEW"}`
	request := httptest.NewRequest(http.MethodPost, "/complaints/9/status", strings.NewReader(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusConflict, recorder.Code)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "Cannot reopen a closed complaint", envelope["error"])
}
