// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ademarli/municipality-gateway/pkg/pagination"
)

/*
TestFromRequest covers parsing and clamping of the page/size query params.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantPage int
		wantSize int
	}{
		{"defaults", "/feed", 0, 20},
		{"explicit", "/feed?page=2&size=50", 2, 50},
		{"zero_indexed_first_page", "/feed?page=0&size=10", 0, 10},
		{"negative_page_clamped", "/feed?page=-1", 0, 20},
		{"zero_size_clamped", "/feed?size=0", 0, 20},
		{"oversized_clamped", "/feed?size=5000", 0, 20},
		{"garbage_ignored", "/feed?page=abc&size=xyz", 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantSize, params.Size)
		})
	}
}

/*
TestParams_Query checks the upstream query-string encoding.
*/
func TestParams_Query(t *testing.T) {
	values := pagination.Params{Page: 3, Size: 25}.Query()

	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "25", values.Get("size"))
}
