package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	v1 "github.com/kubev2v/action-agent/api/v1"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

// ProcessEvent gates and applies a logging event
// (POST /events)
func (h *Handler) ProcessEvent(c *gin.Context) {
	var req v1.EventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := req.ToModel()
	if err != nil {
		respondError(c, err)
		return
	}

	state, err := h.eventSrv.Process(c.Request.Context(), event)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.NewProcessorState(state))
}

// GetEventState returns the processor state
// (GET /events/state)
func (h *Handler) GetEventState(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewProcessorState(h.eventSrv.State()))
}

// JoinTestcase attaches the agent to a running testcase
// (PUT /testcases)
func (h *Handler) JoinTestcase(c *gin.Context) {
	var req v1.JoinTestcaseRequest
	if !bindJSON(c, &req) {
		return
	}

	sessionID := v1.SessionOrDefault(req.SessionId)
	state, err := h.eventSrv.JoinTestcase(c.Request.Context(), sessionID, req.RunId, req.TestcaseId)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.TestcaseResponse{
		SessionId:         sessionID,
		ReleasedResources: []uint64{},
		State:             v1.NewProcessorState(state),
	})
}

// LeaveTestcase detaches the agent and releases the session's resources
// (DELETE /testcases)
func (h *Handler) LeaveTestcase(c *gin.Context) {
	var params v1.LeaveTestcaseParams
	if err := runtime.BindQueryParameter("form", true, false, "sessionId", c.Request.URL.Query(), &params.SessionId); err != nil {
		respondError(c, srvErrors.NewInvalidArgumentError("invalid format for parameter sessionId: %v", err))
		return
	}

	sessionID := v1.SessionOrDefault(params.SessionId)
	released, state, err := h.eventSrv.LeaveTestcase(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, v1.TestcaseResponse{
		SessionId:         sessionID,
		ReleasedResources: v1.NewResourceIds(released),
		State:             v1.NewProcessorState(state),
	})
}
