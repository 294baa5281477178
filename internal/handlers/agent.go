package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/action-agent/api/v1"
	"github.com/kubev2v/action-agent/internal/models"
)

// GetAgentStatus returns the current agent status
// (GET /agent)
func (h *Handler) GetAgentStatus(c *gin.Context) {
	var resp v1.AgentStatus
	resp.FromModel(models.AgentStatus{
		ID:            h.agent.ID,
		Version:       h.agent.Version,
		StartedAt:     h.agent.StartedAt,
		LiveResources: h.actionSrv.LiveResources(),
		LifeCycle:     h.eventSrv.State().LifeCycle,
	})

	c.JSON(http.StatusOK, resp)
}

// Health reports liveness
// (GET /health)
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterRoutes wires every handler on the /api/v1 group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)
	router.GET("/agent", h.GetAgentStatus)

	router.PUT("/actions", h.InitializeAction)
	router.POST("/actions/execute", h.ExecuteAction)
	router.DELETE("/actions", h.DeleteAction)
	router.GET("/components", h.ListComponents)

	router.GET("/sessions/:id/resources", h.ListSessionResources)
	router.DELETE("/sessions/:id/resources", h.DeleteSessionResources)

	router.PUT("/testcases", h.JoinTestcase)
	router.DELETE("/testcases", h.LeaveTestcase)
	router.POST("/events", h.ProcessEvent)
	router.GET("/events/state", h.GetEventState)

	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id", h.GetRun)
	router.GET("/runs/:id/report", h.GetRunReport)
}
