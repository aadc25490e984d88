package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mishasvintus/team_roster_admin/internal/service"
)

const memberNotFound = "Team member not found."

// MemberHandler handles team member HTTP requests.
type MemberHandler struct {
	memberService MemberServiceInterface
}

// NewMemberHandler creates a new team member handler.
func NewMemberHandler(memberService MemberServiceInterface) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List handles GET /team-members/.
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.List(c.Request.Context())
	if err != nil {
		InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// Get handles GET /team-members/:id/.
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := pathID(c, memberNotFound)
	if !ok {
		return
	}

	m, err := h.memberService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Create handles POST /team-members/.
func (h *MemberHandler) Create(c *gin.Context) {
	var req MemberRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.memberService.Create(c.Request.Context(), req.Draft())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// Update handles PUT /team-members/:id/.
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := pathID(c, memberNotFound)
	if !ok {
		return
	}

	var req MemberRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.memberService.Update(c.Request.Context(), id, req.Draft())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /team-members/:id/.
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, memberNotFound)
	if !ok {
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MemberHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		NotFound(c, memberNotFound)
	case errors.Is(err, service.ErrEmailExists):
		BadRequest(c, ErrorEmailExists, err.Error())
	case errors.Is(err, service.ErrInvalidRole):
		BadRequest(c, ErrorInvalidRole, err.Error())
	case errors.Is(err, service.ErrInvalidPhone):
		BadRequest(c, ErrorInvalidInput, err.Error())
	default:
		InternalError(c, err)
	}
}
