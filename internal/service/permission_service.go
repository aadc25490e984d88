package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
	"github.com/mishasvintus/team_roster_admin/internal/repository"
	"github.com/mishasvintus/team_roster_admin/internal/repository/permission"
)

// PermissionService handles permission business logic.
type PermissionService struct {
	db *sql.DB
}

// NewPermissionService creates a new permission service.
func NewPermissionService(db *sql.DB) *PermissionService {
	return &PermissionService{db: db}
}

// List returns all permissions ordered by name.
func (s *PermissionService) List(ctx context.Context) ([]domain.Permission, error) {
	permissions, err := permission.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return permissions, nil
}

// Get retrieves a permission.
func (s *PermissionService) Get(ctx context.Context, id int64) (*domain.Permission, error) {
	p, err := permission.Get(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPermissionNotFound
		}
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}
	return p, nil
}

// Create stores a permission.
func (s *PermissionService) Create(ctx context.Context, draft domain.PermissionDraft) (*domain.Permission, error) {
	id, err := permission.Create(ctx, s.db, draft)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrPermissionExists
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Update renames permission id.
func (s *PermissionService) Update(ctx context.Context, id int64, draft domain.PermissionDraft) (*domain.Permission, error) {
	if err := permission.Update(ctx, s.db, id, draft); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrPermissionNotFound
		case repository.IsUniqueViolation(err):
			return nil, ErrPermissionExists
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes permission id and revokes it from every role.
func (s *PermissionService) Delete(ctx context.Context, id int64) error {
	if err := permission.Delete(ctx, s.db, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPermissionNotFound
		}
		return fmt.Errorf("failed to delete permission: %w", err)
	}
	return nil
}
