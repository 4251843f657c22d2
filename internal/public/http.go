// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package public

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ademarli/municipality-gateway/internal/platform/request"
	"github.com/ademarli/municipality-gateway/internal/platform/respond"
	"github.com/ademarli/municipality-gateway/internal/platform/validate"
	"github.com/ademarli/municipality-gateway/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/feed", handler.feed)
	router.Get("/complaints/track/{code}", handler.track)
	router.Get("/departments", handler.departments)
	router.Get("/departments/{id}/categories", handler.categories)
}

func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	page, err := handler.service.Feed(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) track(writer http.ResponseWriter, request *http.Request) {
	code := requestutil.Param(request, "code")

	validator := &validate.Validator{}
	validator.
		Required("trackingCode", code).
		MinLen("trackingCode", code, TrackingCodeMinLen).
		MaxLen("trackingCode", code, TrackingCodeMaxLen)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	complaint, err := handler.service.Track(request.Context(), code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, complaint)
}

func (handler *Handler) departments(writer http.ResponseWriter, request *http.Request) {
	departments, err := handler.service.Departments(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, departments)
}

func (handler *Handler) categories(writer http.ResponseWriter, request *http.Request) {
	departmentID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	categories, err := handler.service.Categories(request.Context(), departmentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}
