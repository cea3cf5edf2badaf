package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/huddlehq/huddle/internal/services"
	"github.com/huddlehq/huddle/pkg/middlewares"
)

type WorkspaceHandler struct {
	WorkspaceService *services.WorkspaceService
}

func NewWorkspaceHandler(workspaceService *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		WorkspaceService: workspaceService,
	}
}

// Create POST /api/v0/workspaces
func (h *WorkspaceHandler) Create(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	req := services.CreateWorkspaceRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	if _, err := h.WorkspaceService.Create(callerID, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Workspace created successfully"})
}

// List GET /api/v0/workspaces
func (h *WorkspaceHandler) List(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	rows, err := h.WorkspaceService.List(callerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// SetCurrent PUT /api/v0/workspaces/current
func (h *WorkspaceHandler) SetCurrent(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req struct {
		WorkspaceID uint `json:"workspaceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	if err := h.WorkspaceService.SetCurrent(callerID, req.WorkspaceID); err != nil {
		if errors.Is(err, services.ErrWorkspaceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Current workspace updated successfully"})
}

// GetCurrent GET /api/v0/workspaces/current
func (h *WorkspaceHandler) GetCurrent(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	workspaceID, err := h.WorkspaceService.GetCurrent(callerID)
	if err != nil {
		if errors.Is(err, services.ErrNoCurrentWorkspace) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No current workspace found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"currentWorkspace": workspaceID})
}

// ListUsers GET /api/v0/workspaces/:id/users
func (h *WorkspaceHandler) ListUsers(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.WorkspaceService.ListUsers(c.Request.Context(), workspaceID, callerID)
	if err != nil {
		respondWorkspaceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// parseIDParam reads a numeric path parameter, responding 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}

// respondWorkspaceErr maps workspace-scoped service errors to status codes.
func respondWorkspaceErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkspaceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
	case errors.Is(err, services.ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this workspace"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
