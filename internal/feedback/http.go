// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package feedback

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ademarli/municipality-gateway/internal/platform/request"
	"github.com/ademarli/municipality-gateway/internal/platform/respond"
	"github.com/ademarli/municipality-gateway/internal/platform/validate"
	"github.com/ademarli/municipality-gateway/internal/upstream"
)

type Handler struct {
	service  *Service
	sessions upstream.SessionExpirer
}

func NewHandler(service *Service, sessions upstream.SessionExpirer) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// RegisterCitizenRoutes mounts the authenticated rating endpoints. The
// citizen route guard runs before any of these handlers.
func (handler *Handler) RegisterCitizenRoutes(router chi.Router) {
	router.Put("/{id}/rating", handler.rate)
	router.Get("/{id}/rating/me", handler.myRating)
	router.Get("/{id}/rating/stats", handler.myStats)
}

// RegisterPublicRoutes mounts the anonymous aggregate endpoint under the
// public complaints route space.
func (handler *Handler) RegisterPublicRoutes(router chi.Router) {
	router.Get("/complaints/{id}/rating/stats", handler.publicStats)
}

func (handler *Handler) rate(writer http.ResponseWriter, request *http.Request) {
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

	var payload RateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.Range("rating", payload.Rating, MinRating, MaxRating).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.Rate(request.Context(), sess.Token, sess.UserID(), complaintID, payload.Rating)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, stats)
}

func (handler *Handler) myRating(writer http.ResponseWriter, request *http.Request) {
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

	rating, err := handler.service.MyRating(request.Context(), sess.Token, complaintID)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, rating)
}

func (handler *Handler) myStats(writer http.ResponseWriter, request *http.Request) {
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

	stats, err := handler.service.MyStats(request.Context(), sess.Token, sess.UserID(), complaintID)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, stats)
}

func (handler *Handler) publicStats(writer http.ResponseWriter, request *http.Request) {
	complaintID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.PublicStats(request.Context(), complaintID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}
