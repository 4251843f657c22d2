// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package citizen

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
	router.Post("/complaints", handler.create)
	router.Get("/complaints/my", handler.mine)
	router.Get("/complaints/my/overview", handler.overview)
	router.Get("/complaints/{id}", handler.detail)

	router.Get("/notifications", handler.notifications)
	router.Get("/notifications/unread-count", handler.unreadCount)
	router.Patch("/notifications/{id}/read", handler.markRead)
	router.Patch("/notifications/read-all", handler.markAllRead)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload complaint.CreateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 1. Form Validation ────────────────────────────────────────────────
	// The upstream is never contacted for a payload the portal form would
	// have rejected.
	validator := &validate.Validator{}
	validator.
		PositiveID("departmentId", payload.DepartmentID).
		PositiveID("categoryId", payload.CategoryID).
		Required("title", payload.Title).
		MinLen("title", payload.Title, complaint.TitleMinLen).
		MaxLen("title", payload.Title, complaint.TitleMaxLen).
		MaxLen("description", payload.Description, complaint.DescriptionMaxLen)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Submission ─────────────────────────────────────────────────────
	created, err := handler.service.Create(request.Context(), sess.Token, payload)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) mine(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.Mine(request.Context(), sess.Token, pagination.FromRequest(request))
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) overview(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	overview, err := handler.service.Overview(request.Context(), sess.Token, sess.UserID(), pagination.FromRequest(request))
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, overview)
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

func (handler *Handler) notifications(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.Notifications(request.Context(), sess.Token, pagination.FromRequest(request))
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) unreadCount(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.service.UnreadCount(request.Context(), sess.Token)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, count)
}

func (handler *Handler) markRead(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	notificationID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.MarkRead(request.Context(), sess.Token, notificationID); err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) markAllRead(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.MarkAllRead(request.Context(), sess.Token); err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.NoContent(writer)
}
