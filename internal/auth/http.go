// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ademarli/municipality-gateway/internal/platform/request"
	"github.com/ademarli/municipality-gateway/internal/platform/respond"
	"github.com/ademarli/municipality-gateway/internal/platform/validate"
	"github.com/ademarli/municipality-gateway/internal/session"
)

type Handler struct {
	service  *Service
	sessions *session.Manager
}

func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/login", handler.login)
	router.Post("/register", handler.register)
	router.Post("/logout", handler.logout)
	router.Get("/me", handler.me)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload LoginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 1. Form Validation ────────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.
		Required("emailOrPhone", payload.EmailOrPhone).
		MinLen("emailOrPhone", payload.EmailOrPhone, 3).
		Required("password", payload.Password).
		MinLen("password", payload.Password, 6)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Credential Exchange ────────────────────────────────────────────
	view, err := handler.service.Login(request.Context(), writer, payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var payload RegisterRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 1. Form Validation ────────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.
		Required("fullName", payload.FullName).
		Required("email", payload.Email).
		Email("email", payload.Email).
		Required("phone", payload.Phone).
		Phone("phone", payload.Phone).
		Required("password", payload.Password).
		MinLen("password", payload.Password, 6).
		Password("password", payload.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Account Creation ───────────────────────────────────────────────
	view, err := handler.service.Register(request.Context(), writer, payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, view)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.service.Logout(request.Context(), writer, request)
	respond.NoContent(writer)
}

// me reports the browser's own session state. Anonymous callers receive
// {authenticated: false} rather than a 401 so the page shell can render
// without error handling.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	sess := handler.sessions.Load(request)
	respond.OK(writer, NewSessionView(&sess))
}
