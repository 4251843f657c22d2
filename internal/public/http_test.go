// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package public_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/ademarli/municipality-gateway/internal/public"
	"github.com/ademarli/municipality-gateway/internal/upstream"
)

func newPublicRouter(t *testing.T, upstreamHandler http.HandlerFunc) (chi.Router, *atomic.Int64) {
	t.Helper()

	var forwarded atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		forwarded.Add(1)
		upstreamHandler(writer, request)
	}))
	t.Cleanup(server.Close)

	service := public.NewService(upstream.NewClient(server.URL, discardLogger()), discardLogger())
	router := chi.NewRouter()
	public.NewHandler(service).RegisterRoutes(router)

	return router, &forwarded
}

/*
TestTrack_CodeLengthBounds checks the lookup form's 8..50 length rule: too
short and too long codes are rejected locally.
*/
func TestTrack_CodeLengthBounds(t *testing.T) {
	tests := []struct {
		name          string
		code          string
		wantStatus    int
		wantForwarded int64
	}{
		{"too_short", "MG-1", http.StatusBadRequest, 0},
		{"too_long", strings.Repeat("A", 51), http.StatusBadRequest, 0},
		{"minimum_length", "MG-12345", http.StatusOK, 1},
		{"typical", "MG-2026-000012", http.StatusOK, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, forwarded := newPublicRouter(t, func(writer http.ResponseWriter, request *http.Request) {
				_, _ = writer.Write([]byte(`{"trackingCode":"x","title":"t","status":"NEW"}`))
			})

			request := httptest.NewRequest(http.MethodGet, "/complaints/track/"+tt.code, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantForwarded, forwarded.Load())
		})
	}
}

/*
TestFeed_PassesThroughNotFound checks that an upstream rejection on the feed
surfaces with its original status.
*/
func TestFeed_PassesThroughNotFound(t *testing.T) {
	router, _ := newPublicRouter(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusServiceUnavailable)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/feed", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}
