// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ademarli/municipality-gateway/internal/platform/apperr"
	"github.com/ademarli/municipality-gateway/internal/platform/constants"
	"github.com/ademarli/municipality-gateway/internal/session"
	"github.com/ademarli/municipality-gateway/internal/upstream"
)

// Service forwards credential flows upstream and manages the resulting
// session.
type Service struct {
	api      *upstream.Client
	sessions *session.Manager
	logger   *slog.Logger
}

// NewService constructs the auth [Service].
func NewService(api *upstream.Client, sessions *session.Manager, logger *slog.Logger) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
		logger:   logger,
	}
}

/*
Login exchanges credentials for a session.

Description: Forwards the credentials to the upstream login endpoint. A 401
from that endpoint is a credential failure and passes through to the form
unchanged (no session teardown — there is nothing to tear down). On success
the bearer token is persisted and the session cookie issued on writer.

An auth response that carries NO token in either accepted field is treated as
a malformed upstream response and rejected, so a "successful" login can never
yield a cookie that maps to an empty token.

Parameters:
  - ctx: context.Context
  - writer: http.ResponseWriter (receives Set-Cookie)
  - payload: LoginRequest (already validated)

Returns:
  - SessionView: Browser-safe session summary
  - error: Credential rejection, transport failure, or storage failure
*/
func (service *Service) Login(ctx context.Context, writer http.ResponseWriter, payload LoginRequest) (SessionView, error) {

	var response session.AuthResponse
	if err := service.api.Post(ctx, constants.UpstreamLoginPath, "", payload, &response); err != nil {
		return SessionView{}, err
	}

	return service.establish(ctx, writer, response)
}

// Register creates a citizen account upstream and, when the upstream includes
// a token in its response, logs the new citizen straight in.
func (service *Service) Register(ctx context.Context, writer http.ResponseWriter, payload RegisterRequest) (SessionView, error) {

	var response session.AuthResponse
	if err := service.api.Post(ctx, constants.UpstreamRegisterPath, "", payload, &response); err != nil {
		return SessionView{}, err
	}

	return service.establish(ctx, writer, response)
}

// Logout destroys the session. Always succeeds, even for anonymous callers.
func (service *Service) Logout(ctx context.Context, writer http.ResponseWriter, request *http.Request) {
	service.sessions.Clear(ctx, writer, request)
}

// establish validates the auth response, persists the token, and projects the
// fresh session for the browser.
func (service *Service) establish(ctx context.Context, writer http.ResponseWriter, response session.AuthResponse) (SessionView, error) {

	token := response.BearerToken()
	if token == "" {
		service.logger.Error("auth_response_without_token")
		return SessionView{}, apperr.Internal(fmt.Errorf("auth: upstream response carried no access token"))
	}

	if err := service.sessions.Establish(ctx, writer, response); err != nil {
		return SessionView{}, apperr.Internal(fmt.Errorf("auth: persist session: %w", err))
	}

	fresh := session.Session{Token: token, Claims: session.DecodeClaims(token)}
	return NewSessionView(&fresh), nil
}
