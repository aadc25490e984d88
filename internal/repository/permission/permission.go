package permission

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
	"github.com/mishasvintus/team_roster_admin/internal/repository"
)

const columns = `id, name, created_at, updated_at`

// List returns all permissions ordered by name.
func List(ctx context.Context, exec repository.DBTX) ([]domain.Permission, error) {
	query := `SELECT ` + columns + ` FROM permissions ORDER BY name`
	rows, err := exec.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	defer rows.Close()

	permissions := make([]domain.Permission, 0)
	for rows.Next() {
		p, err := Scan(rows)
		if err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return permissions, nil
}

// Get retrieves one permission. Returns sql.ErrNoRows when it does not exist.
func Get(ctx context.Context, exec repository.DBTX, id int64) (*domain.Permission, error) {
	query := `SELECT ` + columns + ` FROM permissions WHERE id = $1`
	p, err := Scan(exec.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a permission and returns its id.
func Create(ctx context.Context, exec repository.DBTX, draft domain.PermissionDraft) (int64, error) {
	var id int64
	query := `INSERT INTO permissions (name) VALUES ($1) RETURNING id`
	if err := exec.QueryRowContext(ctx, query, draft.Name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create permission: %w", err)
	}
	return id, nil
}

// Update renames a permission. Returns sql.ErrNoRows when it does not exist.
func Update(ctx context.Context, exec repository.DBTX, id int64, draft domain.PermissionDraft) error {
	query := `UPDATE permissions SET name = $2, updated_at = now() WHERE id = $1`
	res, err := exec.ExecContext(ctx, query, id, draft.Name)
	if err != nil {
		return fmt.Errorf("failed to update permission: %w", err)
	}
	return repository.ExpectOne(res)
}

// Delete removes a permission. Returns sql.ErrNoRows when it does not exist.
func Delete(ctx context.Context, exec repository.DBTX, id int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM permissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete permission: %w", err)
	}
	return repository.ExpectOne(res)
}

// CountExisting returns how many of ids exist. ids must not contain duplicates.
func CountExisting(ctx context.Context, exec repository.DBTX, ids []int64) (int, error) {
	var n int
	query := `SELECT count(*) FROM permissions WHERE id = ANY($1)`
	if err := exec.QueryRowContext(ctx, query, pq.Array(ids)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count permissions: %w", err)
	}
	return n, nil
}

// Scan reads one row of permission columns.
func Scan(row repository.Scanner) (domain.Permission, error) {
	var (
		p                    domain.Permission
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&p.ID, &p.Name, &createdAt, &updatedAt); err != nil {
		return domain.Permission{}, err
	}
	p.CreatedAt = &createdAt
	p.UpdatedAt = &updatedAt
	return p, nil
}
