package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
	"github.com/mishasvintus/team_roster_admin/internal/repository"
	"github.com/mishasvintus/team_roster_admin/internal/repository/permission"
	"github.com/mishasvintus/team_roster_admin/internal/repository/role"
)

// RoleService handles role business logic.
type RoleService struct {
	db *sql.DB
}

// NewRoleService creates a new role service.
func NewRoleService(db *sql.DB) *RoleService {
	return &RoleService{db: db}
}

// List returns all roles ordered by name.
func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	roles, err := role.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// Get retrieves a role with its permissions.
func (s *RoleService) Get(ctx context.Context, id int64) (*domain.Role, error) {
	r, err := role.Get(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return r, nil
}

// Create stores a role together with its permissions.
func (s *RoleService) Create(ctx context.Context, draft domain.RoleDraft) (*domain.Role, error) {
	return s.write(ctx, draft, func(tx *sql.Tx) (int64, error) {
		return role.Create(ctx, tx, draft)
	})
}

// Update overwrites role id and replaces its permissions.
func (s *RoleService) Update(ctx context.Context, id int64, draft domain.RoleDraft) (*domain.Role, error) {
	return s.write(ctx, draft, func(tx *sql.Tx) (int64, error) {
		return id, role.Update(ctx, tx, id, draft)
	})
}

// Delete removes role id. Members holding the role keep existing without one.
func (s *RoleService) Delete(ctx context.Context, id int64) error {
	if err := role.Delete(ctx, s.db, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return nil
}

func (s *RoleService) write(ctx context.Context, draft domain.RoleDraft, apply func(tx *sql.Tx) (int64, error)) (*domain.Role, error) {
	permissionIDs := unique(draft.PermissionIDs)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if len(permissionIDs) > 0 {
		n, err := permission.CountExisting(ctx, tx, permissionIDs)
		if err != nil {
			return nil, err
		}
		if n != len(permissionIDs) {
			return nil, ErrInvalidPermission
		}
	}

	id, err := apply(tx)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRoleNotFound
		case repository.IsUniqueViolation(err):
			return nil, ErrRoleExists
		}
		return nil, err
	}

	if err := role.SetPermissions(ctx, tx, id, permissionIDs); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrInvalidPermission
		}
		return nil, err
	}

	r, err := role.Get(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read role: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return r, nil
}

func unique(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
