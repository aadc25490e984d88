package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
)

func newTestServer(t *testing.T, setup func(r *gin.Engine)) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setup(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func int64Ptr(v int64) *int64 { return &v }

func TestResource_List(t *testing.T) {
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/team-members/", func(c *gin.Context) {
			c.JSON(http.StatusOK, []domain.TeamMember{
				{ID: 1, FirstName: "Ada", LastName: "Lovelace"},
				{ID: 2, FirstName: "Alan", LastName: "Turing"},
			})
		})
	})

	client, err := NewTeamMembers(srv.URL)
	require.NoError(t, err)

	members, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, int64(1), members[0].ID)
	assert.Equal(t, "Alan", members[1].FirstName)
}

func TestResource_ListEmptyBody(t *testing.T) {
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/roles/", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", []byte("null"))
		})
	})

	client, err := NewRoles(srv.URL + "/")
	require.NoError(t, err)

	roles, err := client.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, roles)
	assert.Empty(t, roles)
}

func TestResource_Get(t *testing.T) {
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/team-members/:id/", func(c *gin.Context) {
			if c.Param("id") != "7" {
				c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
				return
			}
			c.JSON(http.StatusOK, domain.TeamMember{ID: 7, FirstName: "Grace"})
		})
	})

	client, err := NewTeamMembers(srv.URL)
	require.NoError(t, err)

	m, err := client.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Grace", m.FirstName)

	_, err = client.Get(context.Background(), 8)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	re, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Not found.", re.Message)
}

func TestResource_CreateSendsDraft(t *testing.T) {
	var gotDraft domain.TeamMemberDraft
	var gotRequestID string
	srv := newTestServer(t, func(r *gin.Engine) {
		r.POST("/team-members/", func(c *gin.Context) {
			gotRequestID = c.GetHeader(HeaderRequestID)
			assert.NoError(t, c.ShouldBindJSON(&gotDraft))
			c.JSON(http.StatusCreated, domain.TeamMember{
				ID:          3,
				FirstName:   gotDraft.FirstName,
				LastName:    gotDraft.LastName,
				Email:       gotDraft.Email,
				PhoneNumber: gotDraft.PhoneNumber,
				Role:        &domain.Role{ID: *gotDraft.RoleID, Name: "Regular"},
			})
		})
	})

	client, err := NewTeamMembers(srv.URL)
	require.NoError(t, err)

	draft := domain.TeamMemberDraft{
		FirstName:   "New",
		LastName:    "Member",
		Email:       "new@example.com",
		PhoneNumber: "(555) 123-4567",
		RoleID:      int64Ptr(1),
	}
	created, err := client.Create(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, draft, gotDraft)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, int64(3), created.ID)
	require.NotNil(t, created.Role)
	assert.Equal(t, int64(1), created.Role.ID)
}

func TestResource_UpdateAndDelete(t *testing.T) {
	var deleted string
	srv := newTestServer(t, func(r *gin.Engine) {
		r.PUT("/roles/:id/", func(c *gin.Context) {
			var d domain.RoleDraft
			assert.NoError(t, c.ShouldBindJSON(&d))
			c.JSON(http.StatusOK, domain.Role{ID: 5, Name: d.Name, IsAdmin: d.IsAdmin})
		})
		r.DELETE("/roles/:id/", func(c *gin.Context) {
			deleted = c.Param("id")
			c.Status(http.StatusNoContent)
		})
	})

	client, err := NewRoles(srv.URL)
	require.NoError(t, err)

	role, err := client.Update(context.Background(), 5, domain.RoleDraft{Name: "Admin", IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, "Admin", role.Name)
	assert.True(t, role.IsAdmin)

	require.NoError(t, client.Delete(context.Background(), 5))
	assert.Equal(t, "5", deleted)
}

func TestResource_ErrorBodies(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectedMessage string
	}{
		{
			name:            "nested error object",
			status:          http.StatusBadRequest,
			body:            `{"error":{"code":"EMAIL_EXISTS","message":"email already exists"}}`,
			expectedMessage: "email already exists",
		},
		{
			name:            "flat error string",
			status:          http.StatusConflict,
			body:            `{"error":"conflict"}`,
			expectedMessage: "conflict",
		},
		{
			name:            "message field",
			status:          http.StatusInternalServerError,
			body:            `{"message":"boom"}`,
			expectedMessage: "boom",
		},
		{
			name:            "detail field",
			status:          http.StatusNotFound,
			body:            `{"detail":"Not found."}`,
			expectedMessage: "Not found.",
		},
		{
			name:            "empty body",
			status:          http.StatusBadGateway,
			body:            ``,
			expectedMessage: "",
		},
		{
			name:            "non json body",
			status:          http.StatusServiceUnavailable,
			body:            `<html>down</html>`,
			expectedMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(r *gin.Engine) {
				r.GET("/permissions/", func(c *gin.Context) {
					c.Data(tt.status, "application/json", []byte(tt.body))
				})
			})

			client, err := NewPermissions(srv.URL)
			require.NoError(t, err)

			_, err = client.List(context.Background())
			require.Error(t, err)
			re, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, re.Status)
			assert.Equal(t, tt.expectedMessage, re.Message)
			assert.False(t, re.Connectivity())
		})
	}
}

func TestResource_ConnectivityFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewTeamMembers(url)
	require.NoError(t, err)

	_, err = client.List(context.Background())
	require.Error(t, err)
	assert.True(t, IsConnectivity(err))
	status, ok := StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, StatusConnectivity, status)
}

func TestResource_MalformedResponse(t *testing.T) {
	srv := newTestServer(t, func(r *gin.Engine) {
		r.GET("/team-members/", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", []byte(`{"not":"a list"`))
		})
	})

	client, err := NewTeamMembers(srv.URL)
	require.NoError(t, err)

	_, err = client.List(context.Background())
	require.Error(t, err)
	status, ok := StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
}

func TestNewResource_InvalidInput(t *testing.T) {
	_, err := NewTeamMembers("not a url")
	assert.Error(t, err)

	_, err = NewTeamMembers("")
	assert.Error(t, err)

	_, err = NewResource[domain.Role, int64, domain.RoleDraft]("http://localhost", "/")
	assert.Error(t, err)
}
