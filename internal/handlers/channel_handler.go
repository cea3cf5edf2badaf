package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huddlehq/huddle/internal/services"
	"github.com/huddlehq/huddle/pkg/middlewares"
)

type ChannelHandler struct {
	ChannelService *services.ChannelService
}

func NewChannelHandler(channelService *services.ChannelService) *ChannelHandler {
	return &ChannelHandler{
		ChannelService: channelService,
	}
}

// Create POST /api/v0/workspaces/:id/channels
func (h *ChannelHandler) Create(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	req := services.CreateChannelRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	if _, err := h.ChannelService.Create(workspaceID, callerID, &req); err != nil {
		respondWorkspaceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Channel created successfully"})
}

// List GET /api/v0/workspaces/:id/channels
func (h *ChannelHandler) List(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.ChannelService.List(workspaceID, callerID)
	if err != nil {
		respondWorkspaceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}
