// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

/*
Package complaint holds the domain types shared by every surface that handles
complaints: the citizen pages, the agent workbench, and the admin screens.

The gateway does not persist complaints; these types describe the upstream
API's wire shapes and the lifecycle vocabulary the whole portal agrees on.
*/
package complaint

import (
	"time"

	"github.com/ademarli/municipality-gateway/pkg/slice"
)

// # Lifecycle

// Status is the closed set of complaint lifecycle states.
type Status string

const (
	StatusNew      Status = "NEW"
	StatusInReview Status = "IN_REVIEW"
	StatusResolved Status = "RESOLVED"
	StatusClosed   Status = "CLOSED"
)

// AllStatuses lists every valid status, in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusNew, StatusInReview, StatusResolved, StatusClosed}
}

// StatusNames returns the status vocabulary as plain strings, for validators
// and query-parameter checks.
func StatusNames() []string {
	return slice.Map(AllStatuses(), func(status Status) string {
		return string(status)
	})
}

// IsValidStatus reports whether name is a known lifecycle state.
func IsValidStatus(name string) bool {
	for _, status := range AllStatuses() {
		if name == string(status) {
			return true
		}
	}
	return false
}

// # Wire Shapes

// Complaint is the full upstream representation of one complaint.
//
// Anonymous surfaces use their own reduced views; this shape appears only on
// authenticated routes, where the submitter is the caller (citizen) or a
// staff member (agent, admin).
type Complaint struct {
	ID             int64         `json:"id"`
	TrackingCode   string        `json:"trackingCode"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Status         Status        `json:"status"`
	DepartmentID   int64         `json:"departmentId"`
	DepartmentName string        `json:"departmentName"`
	CategoryID     int64         `json:"categoryId"`
	CategoryName   string        `json:"categoryName"`
	PublicAnswer   string        `json:"publicAnswer,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      *time.Time    `json:"updatedAt,omitempty"`
	ResolvedAt     *time.Time    `json:"resolvedAt,omitempty"`
	History        []StatusEntry `json:"history,omitempty"`
}

// StatusEntry is one recorded step in a complaint's status history.
type StatusEntry struct {
	Status    Status    `json:"status"`
	Note      string    `json:"note,omitempty"`
	ChangedAt time.Time `json:"changedAt"`
}

// CreateRequest is the citizen's submission payload.
//
// Latitude and Longitude come from the map picker and are optional; the
// upstream API stores them verbatim, so they pass through unvalidated.
type CreateRequest struct {
	DepartmentID int64    `json:"departmentId"`
	CategoryID   int64    `json:"categoryId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// Submission form bounds, matching the portal's complaint form.
const (
	TitleMinLen       = 10
	TitleMaxLen       = 200
	DescriptionMaxLen = 2000
)
