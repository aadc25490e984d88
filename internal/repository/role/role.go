package role

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
	"github.com/mishasvintus/team_roster_admin/internal/repository"
)

const columns = `id, name, is_admin, created_at, updated_at`

// List returns all roles with their permissions, ordered by name.
func List(ctx context.Context, exec repository.DBTX) ([]domain.Role, error) {
	query := `SELECT ` + columns + ` FROM roles ORDER BY name`
	rows, err := exec.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	roles := make([]domain.Role, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, r)
		ids = append(ids, r.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	perms, err := PermissionsByRole(ctx, exec, ids)
	if err != nil {
		return nil, err
	}
	for i := range roles {
		roles[i].Permissions = perms.Of(roles[i].ID)
	}
	return roles, nil
}

// Get retrieves a role with its permissions. Returns sql.ErrNoRows when it does not exist.
func Get(ctx context.Context, exec repository.DBTX, id int64) (*domain.Role, error) {
	query := `SELECT ` + columns + ` FROM roles WHERE id = $1`
	r, err := scan(exec.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	perms, err := PermissionsByRole(ctx, exec, []int64{id})
	if err != nil {
		return nil, err
	}
	r.Permissions = perms.Of(id)
	return &r, nil
}

// Exists checks if a role exists.
func Exists(ctx context.Context, exec repository.DBTX, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM roles WHERE id = $1)`
	if err := exec.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check role existence: %w", err)
	}
	return exists, nil
}

// Create inserts a role without permissions and returns its id.
func Create(ctx context.Context, exec repository.DBTX, draft domain.RoleDraft) (int64, error) {
	var id int64
	query := `INSERT INTO roles (name, is_admin) VALUES ($1, $2) RETURNING id`
	if err := exec.QueryRowContext(ctx, query, draft.Name, draft.IsAdmin).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create role: %w", err)
	}
	return id, nil
}

// Update changes name and admin flag. Returns sql.ErrNoRows when the role does not exist.
func Update(ctx context.Context, exec repository.DBTX, id int64, draft domain.RoleDraft) error {
	query := `UPDATE roles SET name = $2, is_admin = $3, updated_at = now() WHERE id = $1`
	res, err := exec.ExecContext(ctx, query, id, draft.Name, draft.IsAdmin)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return repository.ExpectOne(res)
}

// Delete removes a role. Members holding it are left without a role.
// Returns sql.ErrNoRows when the role does not exist.
func Delete(ctx context.Context, exec repository.DBTX, id int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return repository.ExpectOne(res)
}

// SetPermissions replaces the permissions granted by a role.
func SetPermissions(ctx context.Context, exec repository.DBTX, roleID int64, permissionIDs []int64) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("failed to clear role permissions: %w", err)
	}
	if len(permissionIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO role_permissions (role_id, permission_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`
	if _, err := exec.ExecContext(ctx, query, roleID, pq.Array(permissionIDs)); err != nil {
		return fmt.Errorf("failed to grant role permissions: %w", err)
	}
	return nil
}

// Permissions maps a role id to the permissions it grants.
type Permissions map[int64][]domain.Permission

// Of returns the permissions of roleID, never nil.
func (p Permissions) Of(roleID int64) []domain.Permission {
	if perms, ok := p[roleID]; ok {
		return perms
	}
	return []domain.Permission{}
}

// PermissionsByRole loads the permissions of the given roles, ordered by name.
func PermissionsByRole(ctx context.Context, exec repository.DBTX, roleIDs []int64) (Permissions, error) {
	out := make(Permissions, len(roleIDs))
	if len(roleIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT rp.role_id, p.id, p.name, p.created_at, p.updated_at
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id
		WHERE rp.role_id = ANY($1)
		ORDER BY p.name
	`
	rows, err := exec.QueryContext(ctx, query, pq.Array(roleIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get role permissions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			roleID               int64
			p                    domain.Permission
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&roleID, &p.ID, &p.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role permission: %w", err)
		}
		p.CreatedAt = &createdAt
		p.UpdatedAt = &updatedAt
		out[roleID] = append(out[roleID], p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return out, nil
}

func scan(row repository.Scanner) (domain.Role, error) {
	var (
		r                    domain.Role
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&r.ID, &r.Name, &r.IsAdmin, &createdAt, &updatedAt); err != nil {
		return domain.Role{}, err
	}
	r.CreatedAt = &createdAt
	r.UpdatedAt = &updatedAt
	return r, nil
}
