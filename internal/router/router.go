package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mishasvintus/team_roster_admin/internal/handler"
	"github.com/mishasvintus/team_roster_admin/internal/middleware"
)

// SetupRoutes configures all API routes.
func SetupRoutes(
	memberHandler *handler.MemberHandler,
	roleHandler *handler.RoleHandler,
	permissionHandler *handler.PermissionHandler,
	log *zap.SugaredLogger,
) *gin.Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(log), middleware.Recovery(log))

	// Team member endpoints
	members := r.Group("/team-members")
	members.GET("/", memberHandler.List)
	members.POST("/", memberHandler.Create)
	members.GET("/:id/", memberHandler.Get)
	members.PUT("/:id/", memberHandler.Update)
	members.DELETE("/:id/", memberHandler.Delete)

	// Role endpoints
	roles := r.Group("/roles")
	roles.GET("/", roleHandler.List)
	roles.POST("/", roleHandler.Create)
	roles.GET("/:id/", roleHandler.Get)
	roles.PUT("/:id/", roleHandler.Update)
	roles.DELETE("/:id/", roleHandler.Delete)

	// Permission endpoints
	permissions := r.Group("/permissions")
	permissions.GET("/", permissionHandler.List)
	permissions.POST("/", permissionHandler.Create)
	permissions.GET("/:id/", permissionHandler.Get)
	permissions.PUT("/:id/", permissionHandler.Update)
	permissions.DELETE("/:id/", permissionHandler.Delete)

	return r
}
