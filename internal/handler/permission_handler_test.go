package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
	"github.com/mishasvintus/team_roster_admin/internal/handler"
	handlermocks "github.com/mishasvintus/team_roster_admin/internal/handler/mocks"
	"github.com/mishasvintus/team_roster_admin/internal/service"
)

func newPermissionRouter(m handler.PermissionServiceInterface) *gin.Engine {
	h := handler.NewPermissionHandler(m)
	r := gin.New()
	r.GET("/permissions/", h.List)
	r.POST("/permissions/", h.Create)
	r.GET("/permissions/:id/", h.Get)
	r.PUT("/permissions/:id/", h.Update)
	r.DELETE("/permissions/:id/", h.Delete)
	return r
}

func TestPermissionHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		requestBody    any
		mockSetup      func(*handlermocks.MockPermissionServiceInterface)
		expectedStatus int
		expectedCode   handler.ErrorCode
	}{
		{
			name:   "list",
			method: http.MethodGet,
			path:   "/permissions/",
			mockSetup: func(m *handlermocks.MockPermissionServiceInterface) {
				m.EXPECT().List(gomock.Any()).Return([]domain.Permission{{ID: 1, Name: domain.PermissionDeleteMembers}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "create",
			method:      http.MethodPost,
			path:        "/permissions/",
			requestBody: map[string]any{"name": "Can edit roles"},
			mockSetup: func(m *handlermocks.MockPermissionServiceInterface) {
				m.EXPECT().Create(gomock.Any(), domain.PermissionDraft{Name: "Can edit roles"}).
					Return(&domain.Permission{ID: 2, Name: "Can edit roles"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "create - missing name",
			method:         http.MethodPost,
			path:           "/permissions/",
			requestBody:    map[string]any{},
			mockSetup:      func(*handlermocks.MockPermissionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   handler.ErrorInvalidInput,
		},
		{
			name:        "create - duplicate",
			method:      http.MethodPost,
			path:        "/permissions/",
			requestBody: map[string]any{"name": domain.PermissionDeleteMembers},
			mockSetup: func(m *handlermocks.MockPermissionServiceInterface) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, service.ErrPermissionExists)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   handler.ErrorPermissionExists,
		},
		{
			name:        "update - not found",
			method:      http.MethodPut,
			path:        "/permissions/8/",
			requestBody: map[string]any{"name": "Renamed"},
			mockSetup: func(m *handlermocks.MockPermissionServiceInterface) {
				m.EXPECT().Update(gomock.Any(), int64(8), domain.PermissionDraft{Name: "Renamed"}).
					Return(nil, service.ErrPermissionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   handler.ErrorNotFound,
		},
		{
			name:   "get",
			method: http.MethodGet,
			path:   "/permissions/1/",
			mockSetup: func(m *handlermocks.MockPermissionServiceInterface) {
				m.EXPECT().Get(gomock.Any(), int64(1)).Return(&domain.Permission{ID: 1}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/permissions/1/",
			mockSetup: func(m *handlermocks.MockPermissionServiceInterface) {
				m.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := handlermocks.NewMockPermissionServiceInterface(ctrl)
			tt.mockSetup(mockService)

			w := serve(t, newPermissionRouter(mockService), tt.method, tt.path, tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error.Code)
			}
		})
	}
}
