package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardano2vn/group-signup/internal/roster"
)

// GroupHandler serves the per-group occupancy projection the front end
// polls to render its capacity bars.
type GroupHandler struct {
	Roster *roster.Reader
}

func NewGroupHandler(r *roster.Reader) *GroupHandler {
	return &GroupHandler{Roster: r}
}

func (h *GroupHandler) ListGroupsHandler(c *gin.Context) {
	statuses, err := h.Roster.GroupStatuses(c.Request.Context())
	if err != nil {
		slog.Error("Failed to compute group occupancy", "error", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "groups": statuses})
}
