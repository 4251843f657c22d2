// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

/*
Package citizen serves the authenticated citizen surface: submitting and
reading one's own complaints, the resolved-complaint overview with rating
aggregates, and the notification inbox.

Every route in this package sits behind the CITIZEN role guard; handlers can
therefore assume a resolved session.
*/
package citizen

import (
	"time"

	"github.com/ademarli/municipality-gateway/internal/complaint"
	"github.com/ademarli/municipality-gateway/internal/feedback"
	"github.com/ademarli/municipality-gateway/pkg/pagination"
)

// Notification is one inbox entry, typically announcing a status change on
// one of the citizen's complaints.
type Notification struct {
	ID          int64     `json:"id"`
	Message     string    `json:"message"`
	ComplaintID int64     `json:"complaintId,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UnreadCount carries the badge number for the notification bell.
type UnreadCount struct {
	Count int64 `json:"count"`
}

// Overview is the "my complaints" dashboard payload: one page of the
// citizen's complaints plus the rating aggregate for each resolved one, so
// the page renders rating widgets without a second round of requests.
type Overview struct {
	Complaints *pagination.Page[complaint.Complaint] `json:"complaints"`
	Ratings    map[int64]*feedback.Stats             `json:"ratings"`
}
