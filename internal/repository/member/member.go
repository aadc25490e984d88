package member

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
	"github.com/mishasvintus/team_roster_admin/internal/repository"
	"github.com/mishasvintus/team_roster_admin/internal/repository/role"
)

const selectMembers = `
	SELECT m.id, m.first_name, m.last_name, m.email, m.phone_number, m.created_at, m.updated_at,
	       r.id, r.name, r.is_admin, r.created_at, r.updated_at
	FROM team_members m
	LEFT JOIN roles r ON r.id = m.role_id
`

// List returns all members, newest first, each with its role and permissions.
func List(ctx context.Context, exec repository.DBTX) ([]domain.TeamMember, error) {
	rows, err := exec.QueryContext(ctx, selectMembers+` ORDER BY m.created_at DESC, m.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	members := make([]domain.TeamMember, 0)
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	if err := attachPermissions(ctx, exec, members); err != nil {
		return nil, err
	}
	return members, nil
}

// Get retrieves one member. Returns sql.ErrNoRows when it does not exist.
func Get(ctx context.Context, exec repository.DBTX, id int64) (*domain.TeamMember, error) {
	m, err := scan(exec.QueryRowContext(ctx, selectMembers+` WHERE m.id = $1`, id))
	if err != nil {
		return nil, err
	}

	members := []domain.TeamMember{m}
	if err := attachPermissions(ctx, exec, members); err != nil {
		return nil, err
	}
	return &members[0], nil
}

// Create inserts a member and returns its id.
func Create(ctx context.Context, exec repository.DBTX, draft domain.TeamMemberDraft) (int64, error) {
	var id int64
	query := `
		INSERT INTO team_members (first_name, last_name, email, phone_number, role_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := exec.QueryRowContext(ctx, query,
		draft.FirstName, draft.LastName, draft.Email, draft.PhoneNumber, nullableID(draft.RoleID),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create team member: %w", err)
	}
	return id, nil
}

// Update overwrites a member. Returns sql.ErrNoRows when it does not exist.
func Update(ctx context.Context, exec repository.DBTX, id int64, draft domain.TeamMemberDraft) error {
	query := `
		UPDATE team_members
		SET first_name = $2, last_name = $3, email = $4, phone_number = $5, role_id = $6, updated_at = now()
		WHERE id = $1
	`
	res, err := exec.ExecContext(ctx, query,
		id, draft.FirstName, draft.LastName, draft.Email, draft.PhoneNumber, nullableID(draft.RoleID),
	)
	if err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}
	return repository.ExpectOne(res)
}

// Delete removes a member. Returns sql.ErrNoRows when it does not exist.
func Delete(ctx context.Context, exec repository.DBTX, id int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	return repository.ExpectOne(res)
}

func attachPermissions(ctx context.Context, exec repository.DBTX, members []domain.TeamMember) error {
	seen := make(map[int64]bool)
	roleIDs := make([]int64, 0)
	for _, m := range members {
		if m.Role != nil && !seen[m.Role.ID] {
			seen[m.Role.ID] = true
			roleIDs = append(roleIDs, m.Role.ID)
		}
	}

	perms, err := role.PermissionsByRole(ctx, exec, roleIDs)
	if err != nil {
		return err
	}
	for i := range members {
		if members[i].Role != nil {
			members[i].Role.Permissions = perms.Of(members[i].Role.ID)
		}
	}
	return nil
}

func scan(row repository.Scanner) (domain.TeamMember, error) {
	var (
		m                            domain.TeamMember
		createdAt, updatedAt         time.Time
		roleID                       sql.NullInt64
		roleName                     sql.NullString
		roleAdmin                    sql.NullBool
		roleCreatedAt, roleUpdatedAt sql.NullTime
	)
	err := row.Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.PhoneNumber, &createdAt, &updatedAt,
		&roleID, &roleName, &roleAdmin, &roleCreatedAt, &roleUpdatedAt,
	)
	if err != nil {
		return domain.TeamMember{}, err
	}
	m.CreatedAt = &createdAt
	m.UpdatedAt = &updatedAt

	if roleID.Valid {
		m.Role = &domain.Role{
			ID:        roleID.Int64,
			Name:      roleName.String,
			IsAdmin:   roleAdmin.Bool,
			CreatedAt: &roleCreatedAt.Time,
			UpdatedAt: &roleUpdatedAt.Time,
		}
	}
	return m, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
