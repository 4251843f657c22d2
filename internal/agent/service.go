// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ademarli/municipality-gateway/internal/complaint"
	"github.com/ademarli/municipality-gateway/internal/upstream"
	"github.com/ademarli/municipality-gateway/pkg/pagination"
)

// Service forwards workbench operations upstream.
type Service struct {
	api    *upstream.Client
	logger *slog.Logger
}

// NewService constructs the agent [Service].
func NewService(api *upstream.Client, logger *slog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// List returns one page of the agent's complaint queue, optionally filtered
// by free text and lifecycle state.
func (service *Service) List(ctx context.Context, token string, filter ListFilter, params pagination.Params) (*pagination.Page[complaint.Complaint], error) {

	query := params.Query()
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}

	var page pagination.Page[complaint.Complaint]
	if err := service.api.Get(ctx, "/api/agent/complaints", query, token, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Detail returns one complaint from the agent's queue.
func (service *Service) Detail(ctx context.Context, token string, complaintID int64) (*complaint.Complaint, error) {
	var detail complaint.Complaint
	path := fmt.Sprintf("/api/agent/complaints/%d", complaintID)
	if err := service.api.Get(ctx, path, nil, token, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ChangeStatus performs a lifecycle transition. Which transitions are legal
// from the current state is the upstream's rule; an illegal one comes back
// as a passthrough rejection with the upstream's message.
func (service *Service) ChangeStatus(ctx context.Context, token string, complaintID int64, payload StatusChangeRequest) (*complaint.Complaint, error) {

	var updated complaint.Complaint
	path := fmt.Sprintf("/api/agent/complaints/%d/status", complaintID)
	if err := service.api.Post(ctx, path, token, payload, &updated); err != nil {
		return nil, err
	}

	service.logger.Info("complaint_status_changed",
		slog.Int64("complaint_id", complaintID),
		slog.String("to_status", string(payload.ToStatus)),
	)

	return &updated, nil
}
