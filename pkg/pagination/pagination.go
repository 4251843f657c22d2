// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

// Package pagination provides shared types and helpers for paginated upstream
// list endpoints.
//
// # Overview
//
// The municipal REST API is a Spring application, so every list endpoint
// speaks Spring's page envelope: `{content, totalElements, totalPages,
// number, size}` with zero-indexed page numbers. This package mirrors that
// shape instead of inventing a second pagination dialect for the gateway.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/ademarli/municipality-gateway/pkg/convert"
)

const (
	// DefaultSize is the number of items per page if not specified.
	DefaultSize = 20
	// MaxSize is the upper bound for items per page to prevent abuse.
	MaxSize = 100
	// DefaultPage is the starting page (zero-indexed, per Spring).
	DefaultPage = 0
)

// Page is the Spring page envelope as returned by the upstream API.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// Params holds the parsed page and size from a request's query string.
type Params struct {
	Page int
	Size int
}

// Query encodes the params into URL query values for an upstream call.
func (p Params) Query() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(p.Page))
	values.Set("size", strconv.Itoa(p.Size))
	return values
}

// FromRequest parses "page" and "size" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultSize], or [MaxSize].
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	size := parseIntParam(r, "size", DefaultSize)

	if page < 0 {
		page = DefaultPage
	}

	if size < 1 || size > MaxSize {
		size = DefaultSize
	}

	return Params{Page: page, Size: size}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	return convert.ToIntD(r.URL.Query().Get(key), defaultVal)
}
