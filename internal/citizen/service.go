// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package citizen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ademarli/municipality-gateway/internal/complaint"
	"github.com/ademarli/municipality-gateway/internal/feedback"
	"github.com/ademarli/municipality-gateway/internal/upstream"
	"github.com/ademarli/municipality-gateway/pkg/pagination"
	"github.com/ademarli/municipality-gateway/pkg/slice"
)

// Service forwards citizen operations upstream and assembles the overview.
type Service struct {
	api      *upstream.Client
	feedback *feedback.Service
	logger   *slog.Logger
}

// NewService constructs the citizen [Service].
func NewService(api *upstream.Client, feedbackService *feedback.Service, logger *slog.Logger) *Service {
	return &Service{
		api:      api,
		feedback: feedbackService,
		logger:   logger,
	}
}

// # Complaints

// Create submits a new complaint. The returned complaint carries the
// tracking code the citizen can hand to others for anonymous lookup.
func (service *Service) Create(ctx context.Context, token string, payload complaint.CreateRequest) (*complaint.Complaint, error) {
	var created complaint.Complaint
	if err := service.api.Post(ctx, "/api/citizen/complaints", token, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Mine returns one page of the caller's own complaints.
func (service *Service) Mine(ctx context.Context, token string, params pagination.Params) (*pagination.Page[complaint.Complaint], error) {
	var page pagination.Page[complaint.Complaint]
	if err := service.api.Get(ctx, "/api/citizen/complaints/my", params.Query(), token, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Detail returns one of the caller's complaints. Ownership is enforced
// upstream; a foreign ID yields the upstream's 404 or 403 unchanged.
func (service *Service) Detail(ctx context.Context, token string, complaintID int64) (*complaint.Complaint, error) {
	var detail complaint.Complaint
	path := fmt.Sprintf("/api/citizen/complaints/%d", complaintID)
	if err := service.api.Get(ctx, path, nil, token, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

/*
Overview assembles the "my complaints" dashboard in one response.

Description: Fetches the requested complaints page, then the rating aggregate
for every resolved complaint on it. A failed aggregate lookup degrades to an
absent map entry rather than failing the dashboard; the page is still fully
renderable without a rating widget.

Parameters:
  - ctx: context.Context
  - token: Bearer token of the citizen
  - userID: Numeric user ID (rating cache plane)
  - params: Page request

Returns:
  - *Overview: The page plus per-complaint aggregates
  - error: Only when the complaints page itself cannot be fetched
*/
func (service *Service) Overview(ctx context.Context, token string, userID int64, params pagination.Params) (*Overview, error) {

	page, err := service.Mine(ctx, token, params)
	if err != nil {
		return nil, err
	}

	resolved := slice.Filter(page.Content, func(c complaint.Complaint) bool {
		return c.Status == complaint.StatusResolved
	})

	ratings := make(map[int64]*feedback.Stats, len(resolved))
	for _, c := range resolved {
		stats, err := service.feedback.MyStats(ctx, token, userID, c.ID)
		if err != nil {
			service.logger.Warn("overview_rating_lookup_failed",
				slog.Int64("complaint_id", c.ID),
				slog.Any("error", err),
			)
			continue
		}
		ratings[c.ID] = stats
	}

	return &Overview{Complaints: page, Ratings: ratings}, nil
}

// # Notifications

// Notifications returns one page of the caller's inbox.
func (service *Service) Notifications(ctx context.Context, token string, params pagination.Params) (*pagination.Page[Notification], error) {
	var page pagination.Page[Notification]
	if err := service.api.Get(ctx, "/api/citizen/notifications", params.Query(), token, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UnreadCount returns the caller's unread-notification badge number.
func (service *Service) UnreadCount(ctx context.Context, token string) (*UnreadCount, error) {
	var count UnreadCount
	if err := service.api.Get(ctx, "/api/citizen/notifications/unread-count", nil, token, &count); err != nil {
		return nil, err
	}
	return &count, nil
}

// MarkRead marks one notification as read. Idempotent upstream.
func (service *Service) MarkRead(ctx context.Context, token string, notificationID int64) error {
	path := fmt.Sprintf("/api/citizen/notifications/%d/read", notificationID)
	return service.api.Patch(ctx, path, token, nil, nil)
}

// MarkAllRead clears the whole unread set.
func (service *Service) MarkAllRead(ctx context.Context, token string) error {
	return service.api.Patch(ctx, "/api/citizen/notifications/read-all", token, nil, nil)
}
