package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/action-agent/api/v1"
	"github.com/kubev2v/action-agent/internal/models"
)

// ListSessionResources returns the live resources of a session
// (GET /sessions/{id}/resources)
func (h *Handler) ListSessionResources(c *gin.Context) {
	sessionID := models.SessionOrDefault(c.Param("id"))
	c.JSON(http.StatusOK, v1.NewResourceList(sessionID, h.actionSrv.ListResources(sessionID)))
}

// DeleteSessionResources drops every resource of a session
// (DELETE /sessions/{id}/resources)
func (h *Handler) DeleteSessionResources(c *gin.Context) {
	sessionID := models.SessionOrDefault(c.Param("id"))
	removed := h.actionSrv.DeinitializeSession(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, v1.SessionCleanup{
		SessionId:   sessionID,
		ResourceIds: v1.NewResourceIds(removed),
	})
}
