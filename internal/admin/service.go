// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package admin

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/ademarli/municipality-gateway/internal/upstream"
	"github.com/ademarli/municipality-gateway/pkg/pagination"
)

// CatalogInvalidator flushes the anonymous catalog cache after a mutation.
// The public service satisfies it.
type CatalogInvalidator interface {
	InvalidateCatalog()
}

// Service forwards administration operations upstream.
type Service struct {
	api     *upstream.Client
	catalog CatalogInvalidator
	logger  *slog.Logger
}

// NewService constructs the admin [Service].
func NewService(api *upstream.Client, catalog CatalogInvalidator, logger *slog.Logger) *Service {
	return &Service{
		api:     api,
		catalog: catalog,
		logger:  logger,
	}
}

// # Categories

// ListCategories returns one page of categories.
func (service *Service) ListCategories(ctx context.Context, token string, params pagination.Params) (*pagination.Page[Category], error) {
	var page pagination.Page[Category]
	if err := service.api.Get(ctx, "/api/admin/categories", params.Query(), token, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateCategory creates a category and flushes the catalog cache.
func (service *Service) CreateCategory(ctx context.Context, token string, payload CategoryRequest) (*Category, error) {
	var created Category
	if err := service.api.Post(ctx, "/api/admin/categories", token, payload, &created); err != nil {
		return nil, err
	}
	service.catalog.InvalidateCatalog()
	return &created, nil
}

// UpdateCategory updates a category and flushes the catalog cache.
func (service *Service) UpdateCategory(ctx context.Context, token string, categoryID int64, payload CategoryRequest) (*Category, error) {
	var updated Category
	path := fmt.Sprintf("/api/admin/categories/%d", categoryID)
	if err := service.api.Put(ctx, path, token, payload, &updated); err != nil {
		return nil, err
	}
	service.catalog.InvalidateCatalog()
	return &updated, nil
}

// DeleteCategory deletes a category and flushes the catalog cache. A category
// still referenced by complaints is rejected upstream with a passthrough 409.
func (service *Service) DeleteCategory(ctx context.Context, token string, categoryID int64) error {
	path := fmt.Sprintf("/api/admin/categories/%d", categoryID)
	if err := service.api.Delete(ctx, path, token); err != nil {
		return err
	}
	service.catalog.InvalidateCatalog()
	return nil
}

// # Departments

// ListDepartments returns one page of departments.
func (service *Service) ListDepartments(ctx context.Context, token string, params pagination.Params) (*pagination.Page[Department], error) {
	var page pagination.Page[Department]
	if err := service.api.Get(ctx, "/api/admin/departments", params.Query(), token, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateDepartment creates a department and flushes the catalog cache.
func (service *Service) CreateDepartment(ctx context.Context, token string, payload DepartmentRequest) (*Department, error) {
	var created Department
	if err := service.api.Post(ctx, "/api/admin/departments", token, payload, &created); err != nil {
		return nil, err
	}
	service.catalog.InvalidateCatalog()
	return &created, nil
}

// UpdateDepartment updates a department and flushes the catalog cache.
func (service *Service) UpdateDepartment(ctx context.Context, token string, departmentID int64, payload DepartmentRequest) (*Department, error) {
	var updated Department
	path := fmt.Sprintf("/api/admin/departments/%d", departmentID)
	if err := service.api.Put(ctx, path, token, payload, &updated); err != nil {
		return nil, err
	}
	service.catalog.InvalidateCatalog()
	return &updated, nil
}

// DeleteDepartment deletes a department and flushes the catalog cache.
func (service *Service) DeleteDepartment(ctx context.Context, token string, departmentID int64) error {
	path := fmt.Sprintf("/api/admin/departments/%d", departmentID)
	if err := service.api.Delete(ctx, path, token); err != nil {
		return err
	}
	service.catalog.InvalidateCatalog()
	return nil
}

// # Membership

// ListMembers returns every staff account attached to a department.
func (service *Service) ListMembers(ctx context.Context, token string, departmentID int64) ([]Member, error) {
	var members []Member
	path := fmt.Sprintf("/api/admin/departments/%d/members", departmentID)
	if err := service.api.Get(ctx, path, nil, token, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember attaches a staff account to a department.
func (service *Service) AddMember(ctx context.Context, token string, departmentID int64, payload AddMemberRequest) (*Member, error) {
	var added Member
	path := fmt.Sprintf("/api/admin/departments/%d/members", departmentID)
	if err := service.api.Post(ctx, path, token, payload, &added); err != nil {
		return nil, err
	}

	service.logger.Info("department_member_added",
		slog.Int64("department_id", departmentID),
		slog.Int64("user_id", payload.UserID),
	)
	return &added, nil
}

// RemoveMember detaches a staff account from a department.
func (service *Service) RemoveMember(ctx context.Context, token string, departmentID, userID int64) error {
	path := fmt.Sprintf("/api/admin/departments/%d/members/%d", departmentID, userID)
	return service.api.Delete(ctx, path, token)
}

// ChangeMemberRole switches a member between MEMBER and MANAGER. The role
// travels as a path segment upstream, so it is escaped even though the
// validator has already constrained it.
func (service *Service) ChangeMemberRole(ctx context.Context, token string, departmentID, userID int64, memberRole string) (*Member, error) {
	var updated Member
	path := fmt.Sprintf("/api/admin/departments/%d/members/%d/role/%s", departmentID, userID, url.PathEscape(memberRole))
	if err := service.api.Patch(ctx, path, token, nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
