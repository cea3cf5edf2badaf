package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huddlehq/huddle/internal/services"
	"github.com/huddlehq/huddle/pkg/middlewares"
)

type MessageHandler struct {
	MessageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		MessageService: messageService,
	}
}

// List GET /api/v0/channels/:channelId/messages
func (h *MessageHandler) List(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	channelID, ok := parseIDParam(c, "channelId")
	if !ok {
		return
	}

	rows, err := h.MessageService.List(channelID, callerID)
	if err != nil {
		respondChannelErr(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// Post POST /api/v0/channels/:channelId/messages
func (h *MessageHandler) Post(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	channelID, ok := parseIDParam(c, "channelId")
	if !ok {
		return
	}

	req := services.SendMessageRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	msg, err := h.MessageService.Post(channelID, callerID, &req)
	if err != nil {
		respondChannelErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

func respondChannelErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrChannelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Channel not found"})
	case errors.Is(err, services.ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this workspace"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
