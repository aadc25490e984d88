package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mishasvintus/team_roster_admin/internal/service"
)

// PermissionHandler handles permission HTTP requests.
type PermissionHandler struct {
	permissionService PermissionServiceInterface
}

// NewPermissionHandler creates a new permission handler.
func NewPermissionHandler(permissionService PermissionServiceInterface) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// List handles GET /permissions/.
func (h *PermissionHandler) List(c *gin.Context) {
	permissions, err := h.permissionService.List(c.Request.Context())
	if err != nil {
		InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, permissions)
}

// Get handles GET /permissions/:id/.
func (h *PermissionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, service.ErrPermissionNotFound.Error())
	if !ok {
		return
	}

	p, err := h.permissionService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create handles POST /permissions/.
func (h *PermissionHandler) Create(c *gin.Context) {
	var req PermissionRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.permissionService.Create(c.Request.Context(), req.Draft())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update handles PUT /permissions/:id/.
func (h *PermissionHandler) Update(c *gin.Context) {
	id, ok := pathID(c, service.ErrPermissionNotFound.Error())
	if !ok {
		return
	}

	var req PermissionRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.permissionService.Update(c.Request.Context(), id, req.Draft())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /permissions/:id/.
func (h *PermissionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, service.ErrPermissionNotFound.Error())
	if !ok {
		return
	}

	if err := h.permissionService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PermissionHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrPermissionExists):
		BadRequest(c, ErrorPermissionExists, err.Error())
	default:
		InternalError(c, err)
	}
}
