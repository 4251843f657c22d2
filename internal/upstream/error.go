// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/ademarli/municipality-gateway/internal/platform/apperr"
	"github.com/ademarli/municipality-gateway/internal/platform/constants"
	"github.com/ademarli/municipality-gateway/internal/platform/respond"
)

// ErrSessionExpired tags a 401 received on any endpoint other than the auth
// bootstrap routes. The bearer token the gateway holds is no longer accepted
// upstream, so the only sane reaction is a full local-session teardown.
var ErrSessionExpired = errors.New("upstream rejected the bearer token")

// fieldErrorSeparator joins multiple field-level messages into one sentence.
const fieldErrorSeparator = " • "

// errorBody mirrors the shapes the municipal API uses for error payloads.
// Not every field is present on every response; extraction is best-effort.
type errorBody struct {
	Message     string            `json:"message"`
	Code        string            `json:"code"`
	FieldErrors map[string]string `json:"fieldErrors"`
}

/*
parseError converts a non-2xx upstream response into an [apperr.AppError].

Description: Extracts the most specific human-readable message available from
the response body, checking shapes in strict priority order:

 1. A bare JSON string ("Tracking code not found")
 2. {fieldErrors: {...}} joined as "field: message" pairs with a bullet separator
 3. {message: "..."}
 4. {code: "..."}
 5. The standard HTTP status text

A 401 from anything other than login/register additionally wraps
[ErrSessionExpired] so [RespondError] can force a logout.

Parameters:
  - path: Upstream route that produced the response (expiry exemption check)
  - status: HTTP status code of the upstream response
  - raw: Response body, already read and length-capped

Returns:
  - error: *apperr.AppError, possibly wrapping [ErrSessionExpired]
*/
func (client *Client) parseError(path string, status int, raw []byte) error {

	message, code, details := extractMessage(raw)

	appError := apperr.FromStatus(status, code, message, details...)

	client.logger.Debug("upstream_rejection",
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("code", appError.Code),
	)

	if status == http.StatusUnauthorized && !isAuthBootstrap(path) {
		// Both the sentinel and the AppError stay reachable through the chain:
		// errors.Is finds the expiry tag, errors.As finds the HTTP mapping.
		return fmt.Errorf("%w: %w", ErrSessionExpired, appError)
	}

	return appError
}

// extractMessage walks the error-body priority chain. All return values may
// be empty; [apperr.FromStatus] supplies the status-text fallback.
func extractMessage(raw []byte) (message, code string, details []apperr.FieldError) {

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "", "", nil
	}

	// Priority 1: a bare JSON string body.
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain, "", nil
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		// Not JSON at all (e.g. an HTML error page from a proxy). The raw
		// text is not client-safe; let the status text speak.
		return "", "", nil
	}

	// Priority 2: field-level validation errors, joined deterministically.
	if len(body.FieldErrors) > 0 {
		fields := make([]string, 0, len(body.FieldErrors))
		for field := range body.FieldErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		// The joined sentence names each field so the browser can show it
		// verbatim; the structured details carry the same pairs separately.
		messages := make([]string, 0, len(fields))
		for _, field := range fields {
			messages = append(messages, field+": "+body.FieldErrors[field])
			details = append(details, apperr.FieldError{Field: field, Message: body.FieldErrors[field]})
		}
		return strings.Join(messages, fieldErrorSeparator), body.Code, details
	}

	// Priority 3 and 4: message, then code.
	if body.Message != "" {
		return body.Message, body.Code, nil
	}
	return body.Code, body.Code, nil
}

// isAuthBootstrap reports whether path is exempt from session-expiry
// tagging. A 401 on these routes means "wrong credentials", not "stale token".
func isAuthBootstrap(path string) bool {
	return path == constants.UpstreamLoginPath || path == constants.UpstreamRegisterPath
}

// IsSessionExpired reports whether err carries the session-expiry tag.
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

// # Handler Integration

// SessionExpirer tears down the local session and redirects to login.
// [session.Manager] satisfies it.
type SessionExpirer interface {
	Expire(w http.ResponseWriter, r *http.Request)
}

// RespondError is the single exit point handlers use for upstream failures.
//
// A session-expired error clears the cookie and 302s to the login route;
// every other error renders the standard JSON error envelope.
func RespondError(w http.ResponseWriter, r *http.Request, err error, sessions SessionExpirer) {
	if sessions != nil && IsSessionExpired(err) {
		sessions.Expire(w, r)
		return
	}
	respond.Error(w, r, err)
}
