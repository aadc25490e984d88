package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
	"github.com/mishasvintus/team_roster_admin/internal/repository"
	"github.com/mishasvintus/team_roster_admin/internal/repository/member"
	"github.com/mishasvintus/team_roster_admin/internal/repository/role"
)

// MemberService handles team member business logic.
type MemberService struct {
	db *sql.DB
}

// NewMemberService creates a new team member service.
func NewMemberService(db *sql.DB) *MemberService {
	return &MemberService{db: db}
}

// List returns all team members, newest first.
func (s *MemberService) List(ctx context.Context) ([]domain.TeamMember, error) {
	members, err := member.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

// Get retrieves a team member with its role.
func (s *MemberService) Get(ctx context.Context, id int64) (*domain.TeamMember, error) {
	m, err := member.Get(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}
	return m, nil
}

// Create stores a new team member and returns it as persisted.
func (s *MemberService) Create(ctx context.Context, draft domain.TeamMemberDraft) (*domain.TeamMember, error) {
	return s.write(ctx, func(tx *sql.Tx) (int64, error) {
		return member.Create(ctx, tx, draft)
	}, draft)
}

// Update overwrites team member id and returns it as persisted.
func (s *MemberService) Update(ctx context.Context, id int64, draft domain.TeamMemberDraft) (*domain.TeamMember, error) {
	return s.write(ctx, func(tx *sql.Tx) (int64, error) {
		return id, member.Update(ctx, tx, id, draft)
	}, draft)
}

// Delete removes team member id.
func (s *MemberService) Delete(ctx context.Context, id int64) error {
	if err := member.Delete(ctx, s.db, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	return nil
}

// write runs a create or update in a transaction after checking the role,
// then reads the member back.
func (s *MemberService) write(
	ctx context.Context,
	apply func(tx *sql.Tx) (int64, error),
	draft domain.TeamMemberDraft,
) (*domain.TeamMember, error) {
	if !domain.ValidPhone(draft.PhoneNumber) {
		return nil, ErrInvalidPhone
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if draft.RoleID != nil {
		exists, err := role.Exists(ctx, tx, *draft.RoleID)
		if err != nil {
			return nil, fmt.Errorf("failed to check role existence: %w", err)
		}
		if !exists {
			return nil, ErrInvalidRole
		}
	}

	id, err := apply(tx)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrMemberNotFound
		case repository.IsUniqueViolation(err):
			return nil, ErrEmailExists
		case repository.IsForeignKeyViolation(err):
			return nil, ErrInvalidRole
		case repository.IsCheckViolation(err):
			return nil, ErrInvalidPhone
		}
		return nil, err
	}

	m, err := member.Get(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read team member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return m, nil
}
