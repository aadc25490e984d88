package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
	"github.com/mishasvintus/team_roster_admin/internal/service"
	"github.com/mishasvintus/team_roster_admin/internal/testutil"
)

type fixture struct {
	members     *service.MemberService
	roles       *service.RoleService
	permissions *service.PermissionService

	canDelete *domain.Permission
	regular   *domain.Role
	admin     *domain.Role
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	f := fixture{
		members:     service.NewMemberService(db),
		roles:       service.NewRoleService(db),
		permissions: service.NewPermissionService(db),
	}

	var err error
	f.canDelete, err = f.permissions.Create(ctx, domain.PermissionDraft{Name: domain.PermissionDeleteMembers})
	require.NoError(t, err)
	f.regular, err = f.roles.Create(ctx, domain.RoleDraft{Name: domain.RoleRegular})
	require.NoError(t, err)
	f.admin, err = f.roles.Create(ctx, domain.RoleDraft{
		Name:          domain.RoleAdmin,
		IsAdmin:       true,
		PermissionIDs: []int64{f.canDelete.ID, f.canDelete.ID},
	})
	require.NoError(t, err)
	return f
}

func draft(email string, roleID int64) domain.TeamMemberDraft {
	return domain.TeamMemberDraft{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       email,
		PhoneNumber: "(555) 123-4567",
		RoleID:      &roleID,
	}
}

func TestMemberService(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.members.Create(ctx, draft("ada@example.com", f.admin.ID))
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	require.NotNil(t, first.Role)
	assert.Equal(t, f.admin.ID, first.Role.ID)
	assert.True(t, first.Role.HasPermission(domain.PermissionDeleteMembers))
	assert.NotNil(t, first.CreatedAt)

	second, err := f.members.Create(ctx, draft("grace@example.com", f.regular.ID))
	require.NoError(t, err)

	t.Run("list newest first", func(t *testing.T) {
		list, err := f.members.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)
		assert.Empty(t, list[0].Role.Permissions)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.members.Create(ctx, draft("ada@example.com", f.regular.ID))
		assert.ErrorIs(t, err, service.ErrEmailExists)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := f.members.Create(ctx, draft("new@example.com", 9999))
		assert.ErrorIs(t, err, service.ErrInvalidRole)
	})

	t.Run("invalid phone", func(t *testing.T) {
		d := draft("phone@example.com", f.regular.ID)
		d.PhoneNumber = "555-123-4567"
		_, err := f.members.Create(ctx, d)
		assert.ErrorIs(t, err, service.ErrInvalidPhone)
	})

	t.Run("update", func(t *testing.T) {
		d := draft("ada@example.com", f.regular.ID)
		d.LastName = "King"
		updated, err := f.members.Update(ctx, first.ID, d)
		require.NoError(t, err)
		assert.Equal(t, first.ID, updated.ID)
		assert.Equal(t, "King", updated.LastName)
		assert.Equal(t, f.regular.ID, updated.Role.ID)
	})

	t.Run("update unknown member", func(t *testing.T) {
		_, err := f.members.Update(ctx, 9999, draft("x@example.com", f.regular.ID))
		assert.ErrorIs(t, err, service.ErrMemberNotFound)
	})

	t.Run("delete twice", func(t *testing.T) {
		require.NoError(t, f.members.Delete(ctx, second.ID))
		assert.ErrorIs(t, f.members.Delete(ctx, second.ID), service.ErrMemberNotFound)

		_, err := f.members.Get(ctx, second.ID)
		assert.ErrorIs(t, err, service.ErrMemberNotFound)
	})
}

func TestRoleService(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	t.Run("permissions deduplicated", func(t *testing.T) {
		require.Len(t, f.admin.Permissions, 1)
		assert.Equal(t, f.canDelete.ID, f.admin.Permissions[0].ID)
	})

	t.Run("list ordered by name", func(t *testing.T) {
		roles, err := f.roles.List(ctx)
		require.NoError(t, err)
		require.Len(t, roles, 2)
		assert.Equal(t, domain.RoleAdmin, roles[0].Name)
		assert.Equal(t, domain.RoleRegular, roles[1].Name)
		assert.Empty(t, roles[1].Permissions)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := f.roles.Create(ctx, domain.RoleDraft{Name: domain.RoleAdmin})
		assert.ErrorIs(t, err, service.ErrRoleExists)
	})

	t.Run("unknown permission", func(t *testing.T) {
		_, err := f.roles.Create(ctx, domain.RoleDraft{Name: "Viewer", PermissionIDs: []int64{9999}})
		assert.ErrorIs(t, err, service.ErrInvalidPermission)
	})

	t.Run("update replaces permissions", func(t *testing.T) {
		updated, err := f.roles.Update(ctx, f.admin.ID, domain.RoleDraft{Name: domain.RoleAdmin, IsAdmin: true})
		require.NoError(t, err)
		assert.Empty(t, updated.Permissions)
	})

	t.Run("delete keeps members without role", func(t *testing.T) {
		m, err := f.members.Create(ctx, draft("orphan@example.com", f.regular.ID))
		require.NoError(t, err)

		require.NoError(t, f.roles.Delete(ctx, f.regular.ID))

		got, err := f.members.Get(ctx, m.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Role)

		_, err = f.roles.Get(ctx, f.regular.ID)
		assert.ErrorIs(t, err, service.ErrRoleNotFound)
	})
}

func TestPermissionService(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.permissions.Create(ctx, domain.PermissionDraft{Name: domain.PermissionDeleteMembers})
	assert.ErrorIs(t, err, service.ErrPermissionExists)

	renamed, err := f.permissions.Update(ctx, f.canDelete.ID, domain.PermissionDraft{Name: "Can remove members"})
	require.NoError(t, err)
	assert.Equal(t, "Can remove members", renamed.Name)

	require.NoError(t, f.permissions.Delete(ctx, f.canDelete.ID))
	admin, err := f.roles.Get(ctx, f.admin.ID)
	require.NoError(t, err)
	assert.Empty(t, admin.Permissions)

	assert.ErrorIs(t, f.permissions.Delete(ctx, f.canDelete.ID), service.ErrPermissionNotFound)
}
