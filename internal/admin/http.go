// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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
	router.Route("/categories", func(r chi.Router) {
		r.Get("/", handler.listCategories)
		r.Post("/", handler.createCategory)
		r.Put("/{id}", handler.updateCategory)
		r.Delete("/{id}", handler.deleteCategory)
	})

	router.Route("/departments", func(r chi.Router) {
		r.Get("/", handler.listDepartments)
		r.Post("/", handler.createDepartment)
		r.Put("/{id}", handler.updateDepartment)
		r.Delete("/{id}", handler.deleteDepartment)

		r.Get("/{id}/members", handler.listMembers)
		r.Post("/{id}/members", handler.addMember)
		r.Delete("/{id}/members/{userId}", handler.removeMember)
		r.Patch("/{id}/members/{userId}/role/{role}", handler.changeMemberRole)
	})
}

// # Categories

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.ListCategories(request.Context(), sess.Token, pagination.FromRequest(request))
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload, err := decodeCategoryRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateCategory(request.Context(), sess.Token, payload)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	categoryID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload, err := decodeCategoryRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateCategory(request.Context(), sess.Token, categoryID, payload)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	categoryID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCategory(request.Context(), sess.Token, categoryID); err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.NoContent(writer)
}

// decodeCategoryRequest decodes and validates the category form.
func decodeCategoryRequest(request *http.Request) (CategoryRequest, error) {
	var payload CategoryRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		return payload, err
	}

	validator := &validate.Validator{}
	validator.
		Required("name", payload.Name).
		MinLen("name", payload.Name, NameMinLen).
		MaxLen("name", payload.Name, NameMaxLen).
		PositiveID("defaultDepartmentId", payload.DefaultDepartmentID)

	return payload, validator.Err()
}

// # Departments

func (handler *Handler) listDepartments(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.ListDepartments(request.Context(), sess.Token, pagination.FromRequest(request))
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) createDepartment(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload, err := decodeDepartmentRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateDepartment(request.Context(), sess.Token, payload)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateDepartment(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	departmentID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload, err := decodeDepartmentRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateDepartment(request.Context(), sess.Token, departmentID, payload)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteDepartment(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	departmentID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteDepartment(request.Context(), sess.Token, departmentID); err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.NoContent(writer)
}

// decodeDepartmentRequest decodes and validates the department form.
func decodeDepartmentRequest(request *http.Request) (DepartmentRequest, error) {
	var payload DepartmentRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		return payload, err
	}

	validator := &validate.Validator{}
	validator.
		Required("name", payload.Name).
		MinLen("name", payload.Name, NameMinLen).
		MaxLen("name", payload.Name, NameMaxLen)

	return payload, validator.Err()
}

// # Membership

func (handler *Handler) listMembers(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	departmentID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	members, err := handler.service.ListMembers(request.Context(), sess.Token, departmentID)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, members)
}

func (handler *Handler) addMember(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	departmentID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload AddMemberRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		PositiveID("userId", payload.UserID).
		OneOf("memberRole", payload.MemberRole, MemberRoleNames()...)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	added, err := handler.service.AddMember(request.Context(), sess.Token, departmentID, payload)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.Created(writer, added)
}

func (handler *Handler) removeMember(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	departmentID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.IntParam(request, "userId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveMember(request.Context(), sess.Token, departmentID, userID); err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) changeMemberRole(writer http.ResponseWriter, request *http.Request) {
	sess, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	departmentID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.IntParam(request, "userId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	memberRole := requestutil.Param(request, "role")
	validator := &validate.Validator{}
	if err := validator.OneOf("memberRole", memberRole, MemberRoleNames()...).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.ChangeMemberRole(request.Context(), sess.Token, departmentID, userID, memberRole)
	if err != nil {
		upstream.RespondError(writer, request, err, handler.sessions)
		return
	}
	respond.OK(writer, updated)
}
