package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mishasvintus/team_roster_admin/internal/service"
)

// RoleHandler handles role HTTP requests.
type RoleHandler struct {
	roleService RoleServiceInterface
}

// NewRoleHandler creates a new role handler.
func NewRoleHandler(roleService RoleServiceInterface) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// List handles GET /roles/.
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleService.List(c.Request.Context())
	if err != nil {
		InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// Get handles GET /roles/:id/.
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, service.ErrRoleNotFound.Error())
	if !ok {
		return
	}

	r, err := h.roleService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Create handles POST /roles/.
func (h *RoleHandler) Create(c *gin.Context) {
	var req RoleRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.roleService.Create(c.Request.Context(), req.Draft())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// Update handles PUT /roles/:id/.
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, service.ErrRoleNotFound.Error())
	if !ok {
		return
	}

	var req RoleRequest
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.roleService.Update(c.Request.Context(), id, req.Draft())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Delete handles DELETE /roles/:id/.
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, service.ErrRoleNotFound.Error())
	if !ok {
		return
	}

	if err := h.roleService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoleHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoleNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrRoleExists):
		BadRequest(c, ErrorRoleExists, err.Error())
	case errors.Is(err, service.ErrInvalidPermission):
		BadRequest(c, ErrorInvalidPermission, err.Error())
	default:
		InternalError(c, err)
	}
}
