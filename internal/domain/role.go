package domain

import "time"

// Permission is a named capability granted through roles.
type Permission struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Key returns the permission identity.
func (p Permission) Key() int64 {
	return p.ID
}

// PermissionDraft is the payload sent to create or update a permission.
type PermissionDraft struct {
	Name string `json:"name" validate:"required"`
}

// Role groups permissions under a name.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	IsAdmin     bool         `json:"is_admin"`
	Permissions []Permission `json:"permissions"`
	CreatedAt   *time.Time   `json:"created_at,omitempty"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
}

// Key returns the role identity.
func (r Role) Key() int64 {
	return r.ID
}

// HasPermission reports whether the role grants the named permission.
func (r Role) HasPermission(name string) bool {
	for _, p := range r.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// RoleDraft is the payload sent to create or update a role.
type RoleDraft struct {
	Name          string  `json:"name" validate:"required"`
	IsAdmin       bool    `json:"is_admin"`
	PermissionIDs []int64 `json:"permission_ids"`
}

// Seeded permission and role names.
const (
	PermissionDeleteMembers = "Can delete members"
	RoleRegular             = "Regular - Can't delete members"
	RoleAdmin               = "Admin - Can delete members"
)
