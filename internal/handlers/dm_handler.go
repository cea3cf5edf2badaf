package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/huddlehq/huddle/internal/services"
	"github.com/huddlehq/huddle/pkg/middlewares"
)

type DMHandler struct {
	DMService *services.DMService
}

func NewDMHandler(dmService *services.DMService) *DMHandler {
	return &DMHandler{
		DMService: dmService,
	}
}

// List GET /api/v0/dm/:userId/messages
func (h *DMHandler) List(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	otherID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	rows, err := h.DMService.List(callerID, otherID)
	if err != nil {
		respondDMErr(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// Post POST /api/v0/dm/:userId/messages
func (h *DMHandler) Post(c *gin.Context) {
	callerID, ok := middlewares.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	receiverID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	req := services.SendMessageRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	dm, err := h.DMService.Send(callerID, receiverID, &req)
	if err != nil {
		respondDMErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, dm)
}

func respondDMErr(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
