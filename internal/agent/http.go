// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package agent

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ademarli/municipality-gateway/internal/complaint"
	requestutil "github.com/ademarli/municipality-gateway/internal/platform/request"
	"github.com/ademarli/municipality-gateway/internal/platform/respond"
	"github.com/ademarli/municipality-gateway/internal/platform/validate"
	"github.com/ademarli/municipality-gateway/internal/upstream"
	"github.com/ademarli/municipality-gateway/pkg/pagination"
)

type Handler struct {
	service  *Service
	sessions upstream.SessionExpirer
}

func NewHandler(service *Service, sessions upstream.SessionExpirer) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/complaints", handler.list)
	router.Get("/complaints/{id}", handler.detail)
	router.Post("/complaints/{id}/status", handler.changeStatus)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := ListFilter{
		Query:  request.URL.Query().Get("q"),
		Status: request.URL.Query().Get("status"),
	}

	// An unknown status filter is a caller bug, not an empty result set.
	if filter.Status != "" && !complaint.IsValidStatus(filter.Status) {
		respond.Error(writer, request, validate.RequiredError("status", "Unknown complaint status"))
		return
	}

	page, err := handler.service.List(request.Context(), sess.Token, filter, pagination.FromRequest(request))
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	complaintID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.Detail(request.Context(), sess.Token, complaintID)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) changeStatus(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	complaintID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload StatusChangeRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 1. Form Validation ────────────────────────────────────────────────
	validator := &validate.Validator{}
	validator.
		OneOf("toStatus", string(payload.ToStatus), complaint.StatusNames()...).
		MaxLen("note", payload.Note, NoteMaxLen).
		MaxLen("publicAnswer", payload.PublicAnswer, PublicAnswerMaxLen)

	// A resolution is published to the feed, so it must carry an answer.
	if payload.ToStatus == complaint.StatusResolved {
		validator.
			Required("publicAnswer", payload.PublicAnswer).
			MinLen("publicAnswer", payload.PublicAnswer, PublicAnswerMinLen)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Transition ─────────────────────────────────────────────────────
	updated, err := handler.service.ChangeStatus(request.Context(), sess.Token, complaintID, payload)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, updated)
}
