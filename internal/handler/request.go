package handler

import "github.com/mishasvintus/team_roster_admin/internal/domain"

// MemberRequest represents request body for POST /team-members/ and PUT /team-members/:id/.
type MemberRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email,max=254"`
	PhoneNumber string `json:"phone_number" binding:"required,phone"`
	RoleID      *int64 `json:"role_id" binding:"required"`
}

// Draft converts the request into the write shape.
func (r MemberRequest) Draft() domain.TeamMemberDraft {
	return domain.TeamMemberDraft{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		RoleID:      r.RoleID,
	}
}

// RoleRequest represents request body for POST /roles/ and PUT /roles/:id/.
type RoleRequest struct {
	Name          string  `json:"name" binding:"required,max=100"`
	IsAdmin       bool    `json:"is_admin"`
	PermissionIDs []int64 `json:"permission_ids"`
}

// Draft converts the request into the write shape.
func (r RoleRequest) Draft() domain.RoleDraft {
	ids := r.PermissionIDs
	if ids == nil {
		ids = []int64{}
	}
	return domain.RoleDraft{Name: r.Name, IsAdmin: r.IsAdmin, PermissionIDs: ids}
}

// PermissionRequest represents request body for POST /permissions/ and PUT /permissions/:id/.
type PermissionRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// Draft converts the request into the write shape.
func (r PermissionRequest) Draft() domain.PermissionDraft {
	return domain.PermissionDraft{Name: r.Name}
}
