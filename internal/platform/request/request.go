// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ademarli/municipality-gateway/internal/platform/apperr"
	"github.com/ademarli/municipality-gateway/internal/platform/ctxutil"
	"github.com/ademarli/municipality-gateway/internal/platform/validate"
	"github.com/ademarli/municipality-gateway/internal/session"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntParam retrieves a named URL parameter and parses it as an int64.

Returns:
  - int64: The parsed identifier
  - error: apperr.ValidationError when the segment is not a number
*/
func IntParam(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, validate.RequiredError(name, "Must be a numeric identifier")
	}

	return id, nil
}

/*
Session extracts the browser session injected by the route guard.

Returns nil on routes where no guard ran.
*/
func Session(request *http.Request) *session.Session {
	return ctxutil.GetSession(request.Context())
}

/*
RequiredSession ensures the request carries an authenticated session.

Returns:
  - *session.Session: The resolved session (token guaranteed non-empty)
  - error: apperr.Unauthorized when the request is anonymous
*/
func RequiredSession(request *http.Request) (*session.Session, error) {

	sess := ctxutil.GetSession(request.Context())

	if sess == nil || !sess.Authenticated() {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return sess, nil
}
