package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
	"github.com/mishasvintus/team_roster_admin/internal/handler"
	handlermocks "github.com/mishasvintus/team_roster_admin/internal/handler/mocks"
	"github.com/mishasvintus/team_roster_admin/internal/middleware"
	"github.com/mishasvintus/team_roster_admin/internal/remote"
	"github.com/mishasvintus/team_roster_admin/internal/router"
	"github.com/mishasvintus/team_roster_admin/internal/service"
)

type services struct {
	members     *handlermocks.MockMemberServiceInterface
	roles       *handlermocks.MockRoleServiceInterface
	permissions *handlermocks.MockPermissionServiceInterface
}

func newServer(t *testing.T) (*httptest.Server, services) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, handler.RegisterValidators())

	ctrl := gomock.NewController(t)
	s := services{
		members:     handlermocks.NewMockMemberServiceInterface(ctrl),
		roles:       handlermocks.NewMockRoleServiceInterface(ctrl),
		permissions: handlermocks.NewMockPermissionServiceInterface(ctrl),
	}

	r := router.SetupRoutes(
		handler.NewMemberHandler(s.members),
		handler.NewRoleHandler(s.roles),
		handler.NewPermissionHandler(s.permissions),
		nil,
	)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, s
}

func TestRoutes_TeamMembersThroughClient(t *testing.T) {
	srv, s := newServer(t)
	ctx := context.Background()

	client, err := remote.NewTeamMembers(srv.URL)
	require.NoError(t, err)

	roleID := int64(1)
	draft := domain.TeamMemberDraft{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "(555) 123-4567",
		RoleID:      &roleID,
	}
	created := domain.TeamMember{ID: 3, FirstName: "Ada", LastName: "Lovelace", Role: &domain.Role{ID: 1}}

	s.members.EXPECT().Create(gomock.Any(), draft).Return(&created, nil)
	got, err := client.Create(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Equal(t, int64(1), got.Role.ID)

	s.members.EXPECT().List(gomock.Any()).Return([]domain.TeamMember{created}, nil)
	list, err := client.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	s.members.EXPECT().Get(gomock.Any(), int64(99)).Return(nil, service.ErrMemberNotFound)
	_, err = client.Get(ctx, 99)
	require.Error(t, err)
	assert.True(t, remote.IsNotFound(err))
	re, ok := remote.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Team member not found.", re.Message)

	s.members.EXPECT().Update(gomock.Any(), int64(3), gomock.Any()).Return(nil, service.ErrEmailExists)
	_, err = client.Update(ctx, 3, draft)
	status, ok := remote.StatusOf(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, status)

	s.members.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil)
	require.NoError(t, client.Delete(ctx, 3))
}

func TestRoutes_RolesAndPermissions(t *testing.T) {
	srv, s := newServer(t)
	ctx := context.Background()

	roles, err := remote.NewRoles(srv.URL)
	require.NoError(t, err)
	permissions, err := remote.NewPermissions(srv.URL)
	require.NoError(t, err)

	s.roles.EXPECT().List(gomock.Any()).Return([]domain.Role{{ID: 1, Name: domain.RoleRegular}}, nil)
	list, err := roles.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleRegular, list[0].Name)

	s.permissions.EXPECT().List(gomock.Any()).Return([]domain.Permission{}, nil)
	perms, err := permissions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, perms)
}

func TestRoutes_RequestIDEchoed(t *testing.T) {
	srv, s := newServer(t)

	s.roles.EXPECT().List(gomock.Any()).Return([]domain.Role{}, nil)
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/roles/", nil)
	require.NoError(t, err)
	req.Header.Set(middleware.HeaderRequestID, "abc")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "abc", resp.Header.Get(middleware.HeaderRequestID))
}
