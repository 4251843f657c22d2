// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

/*
Package agent serves the staff workbench: browsing the department's complaint
queue and moving complaints through their lifecycle.

Routes in this package sit behind the AGENT-or-ADMIN role guard. Which
complaints an agent may actually see is decided upstream by department
membership; the gateway forwards and renders, it does not re-derive the
assignment rules.
*/
package agent

import "github.com/ademarli/municipality-gateway/internal/complaint"

// ListFilter narrows the complaint queue. Zero values mean "no filter".
type ListFilter struct {
	// Query is a free-text search over title and tracking code.
	Query string

	// Status restricts the queue to one lifecycle state.
	Status string
}

// StatusChangeRequest is the workbench payload for a lifecycle transition.
//
// PublicAnswer is required when transitioning to RESOLVED: the answer is what
// the public feed and the tracking page show, so a resolution without one is
// rejected before it reaches the upstream.
type StatusChangeRequest struct {
	ToStatus     complaint.Status `json:"toStatus"`
	Note         string           `json:"note,omitempty"`
	PublicAnswer string           `json:"publicAnswer,omitempty"`
}

// Status-change form bounds.
const (
	NoteMaxLen         = 1000
	PublicAnswerMinLen = 10
	PublicAnswerMaxLen = 2000
)
