package handler

import (
	"context"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_services.go -package=mocks

// MemberServiceInterface defines the interface for team member operations.
type MemberServiceInterface interface {
	List(ctx context.Context) ([]domain.TeamMember, error)
	Get(ctx context.Context, id int64) (*domain.TeamMember, error)
	Create(ctx context.Context, draft domain.TeamMemberDraft) (*domain.TeamMember, error)
	Update(ctx context.Context, id int64, draft domain.TeamMemberDraft) (*domain.TeamMember, error)
	Delete(ctx context.Context, id int64) error
}

// RoleServiceInterface defines the interface for role operations.
type RoleServiceInterface interface {
	List(ctx context.Context) ([]domain.Role, error)
	Get(ctx context.Context, id int64) (*domain.Role, error)
	Create(ctx context.Context, draft domain.RoleDraft) (*domain.Role, error)
	Update(ctx context.Context, id int64, draft domain.RoleDraft) (*domain.Role, error)
	Delete(ctx context.Context, id int64) error
}

// PermissionServiceInterface defines the interface for permission operations.
type PermissionServiceInterface interface {
	List(ctx context.Context) ([]domain.Permission, error)
	Get(ctx context.Context, id int64) (*domain.Permission, error)
	Create(ctx context.Context, draft domain.PermissionDraft) (*domain.Permission, error)
	Update(ctx context.Context, id int64, draft domain.PermissionDraft) (*domain.Permission, error)
	Delete(ctx context.Context, id int64) error
}
