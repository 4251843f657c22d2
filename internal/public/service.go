// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package public

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ademarli/municipality-gateway/internal/platform/constants"
	"github.com/ademarli/municipality-gateway/internal/upstream"
	"github.com/ademarli/municipality-gateway/pkg/pagination"
)

// Catalog cache keys. The catalog is tiny, so whole-collection entries are
// cached rather than per-item ones.
const (
	cacheKeyDepartments      = "catalog:departments"
	cacheKeyCategoriesPrefix = "catalog:categories:"
)

// Service serves the anonymous portal surface.
type Service struct {
	api     *upstream.Client
	catalog *gocache.Cache
	logger  *slog.Logger
}

// NewService constructs the public [Service] with its own catalog cache.
func NewService(api *upstream.Client, logger *slog.Logger) *Service {
	return &Service{
		api:     api,
		catalog: gocache.New(constants.CatalogCacheTTL, constants.CatalogCacheSweep),
		logger:  logger,
	}
}

// Feed returns one page of the resolved-complaints feed.
func (service *Service) Feed(ctx context.Context, params pagination.Params) (*pagination.Page[FeedItem], error) {
	var page pagination.Page[FeedItem]
	if err := service.api.Get(ctx, "/api/public/feed", params.Query(), "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Track resolves a tracking code into its anonymous complaint view.
//
// The code is path-escaped before forwarding: it is user input headed
// straight into an upstream URL.
func (service *Service) Track(ctx context.Context, code string) (*TrackedComplaint, error) {
	var complaint TrackedComplaint
	path := "/api/public/complaints/track/" + url.PathEscape(code)
	if err := service.api.Get(ctx, path, nil, "", &complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

// Departments returns the department catalog, cached in-process.
func (service *Service) Departments(ctx context.Context) ([]Department, error) {

	if cached, found := service.catalog.Get(cacheKeyDepartments); found {
		return cached.([]Department), nil
	}

	var departments []Department
	if err := service.api.Get(ctx, "/api/public/departments", nil, "", &departments); err != nil {
		return nil, err
	}

	service.catalog.SetDefault(cacheKeyDepartments, departments)
	return departments, nil
}

// Categories returns the category catalog for one department, cached
// in-process per department.
func (service *Service) Categories(ctx context.Context, departmentID int64) ([]Category, error) {

	key := fmt.Sprintf("%s%d", cacheKeyCategoriesPrefix, departmentID)
	if cached, found := service.catalog.Get(key); found {
		return cached.([]Category), nil
	}

	var categories []Category
	path := fmt.Sprintf("/api/public/departments/%d/categories", departmentID)
	if err := service.api.Get(ctx, path, nil, "", &categories); err != nil {
		return nil, err
	}

	service.catalog.SetDefault(key, categories)
	return categories, nil
}

// InvalidateCatalog drops every cached catalog collection. The admin service
// calls this after any category or department mutation so the public form
// reflects the change without waiting out the TTL.
func (service *Service) InvalidateCatalog() {
	service.catalog.Flush()
	service.logger.Debug("catalog_cache_flushed")
}
