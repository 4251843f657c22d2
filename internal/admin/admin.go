// Copyright (c) 2026 Municipality Gateway. All rights reserved.
// Author: ade.marli.dev@gmail.com

/*
Package admin serves the administration surface: category and department
management plus department membership.

Routes in this package sit behind the ADMIN role guard. Mutations flush the
public catalog cache so the complaint form's dropdowns pick the change up
immediately.
*/
package admin

import "time"

// Category is the admin view of a complaint category.
type Category struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	DefaultDepartmentID int64      `json:"defaultDepartmentId"`
	CreatedAt           *time.Time `json:"createdAt,omitempty"`
}

// CategoryRequest is the create/update payload for a category.
type CategoryRequest struct {
	Name                string `json:"name"`
	DefaultDepartmentID int64  `json:"defaultDepartmentId"`
}

// Department is the admin view of a department.
type Department struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	MemberCount int        `json:"memberCount,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// DepartmentRequest is the create/update payload for a department.
type DepartmentRequest struct {
	Name string `json:"name"`
}

// Member is one staff account attached to a department.
type Member struct {
	UserID     int64  `json:"userId"`
	FullName   string `json:"fullName,omitempty"`
	Email      string `json:"email,omitempty"`
	MemberRole string `json:"memberRole"`
}

// AddMemberRequest attaches a staff account to a department.
type AddMemberRequest struct {
	UserID     int64  `json:"userId"`
	MemberRole string `json:"memberRole"`
}

// Membership roles within a department. Distinct from account roles: a
// MANAGER here is still an AGENT account, just one that can reassign work.
const (
	MemberRoleMember  = "MEMBER"
	MemberRoleManager = "MANAGER"
)

// MemberRoleNames lists the membership-role vocabulary for validators.
func MemberRoleNames() []string {
	return []string{MemberRoleMember, MemberRoleManager}
}

// Name bounds shared by the category and department forms.
const (
	NameMinLen = 3
	NameMaxLen = 100
)
