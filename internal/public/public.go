// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

/*
Package public serves the anonymous surface of the portal: the resolved-
complaints feed, tracking-code lookup, and the department/category catalog
that the complaint form needs before a citizen has even logged in.

None of these endpoints require a session. The catalog is cached in-process
because it is requested by every visitor and changes only when an admin edits
it.
*/
package public

import "time"

// FeedItem is one resolved complaint on the public feed.
type FeedItem struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Status         string     `json:"status"`
	DepartmentName string     `json:"departmentName"`
	CategoryName   string     `json:"categoryName"`
	PublicAnswer   string     `json:"publicAnswer,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	ResolvedAt     *time.Time `json:"resolvedAt,omitempty"`
	AvgRating      float64    `json:"avgRating"`
	RatingCount    int        `json:"ratingCount"`
}

// TrackedComplaint is the anonymous view returned for a tracking-code lookup.
//
// It deliberately omits the submitter's identity; the tracking code is a
// bearer secret and the response must stay safe to show on a shared screen.
type TrackedComplaint struct {
	TrackingCode   string        `json:"trackingCode"`
	Title          string        `json:"title"`
	Status         string        `json:"status"`
	DepartmentName string        `json:"departmentName"`
	CategoryName   string        `json:"categoryName"`
	PublicAnswer   string        `json:"publicAnswer,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	History        []StatusEntry `json:"history,omitempty"`
}

// StatusEntry is one step in a complaint's status history.
type StatusEntry struct {
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	ChangedAt time.Time `json:"changedAt"`
}

// Department is a catalog entry for the complaint form's department select.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category is a catalog entry scoped to a department.
type Category struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	DefaultDepartmentID int64  `json:"defaultDepartmentId,omitempty"`
}

// Tracking-code length bounds, matching the portal's lookup form.
const (
	TrackingCodeMinLen = 8
	TrackingCodeMaxLen = 50
)
